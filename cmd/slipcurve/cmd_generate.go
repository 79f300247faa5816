package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tyrelab/slipcurve/internal/curve"
	"github.com/tyrelab/slipcurve/internal/logging"
	"github.com/tyrelab/slipcurve/internal/lut"
	"github.com/tyrelab/slipcurve/internal/store"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize a plateau slip curve and write it as a LUT",
		Long: `Synthesize a four-region slip curve (linear rise, smooth transition,
grip plateau, progressive falloff) and write it atomically as an
engine-format lookup table.

The falloff decay rate is solved so the curve passes through the
retention checkpoints; generation fails if no rate fits them all.

Examples:
  slipcurve generate --out dy_curve.lut
  slipcurve generate --out dy_curve.lut --peak-angle 6 --plateau-end 9
  slipcurve generate --out dy_curve.lut --checkpoints 10:0.83,12:0.71,15:0.61
  slipcurve generate --out chatter.lut --chatter --chatter-intensity 0.08`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			outPath, _ := cmd.Flags().GetString("out")
			if outPath == "" {
				return fmt.Errorf("--out is required")
			}

			cfg, root, err := loadToolConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyCurveFlags(cmd, &cfg.Curve); err != nil {
				return err
			}

			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
			trace := logging.NewTraceLogger(filepath.Join(root, ".slipcurve"), cfg.Logging.Level)
			defer trace.Close()

			c, err := curve.New(cfg.Curve, trace)
			if err != nil {
				return err
			}
			table, err := c.Table()
			if err != nil {
				return err
			}

			withChatter, _ := cmd.Flags().GetBool("chatter")
			if withChatter {
				if err := applyChatterFlags(cmd, &cfg.Chatter); err != nil {
					return err
				}
				table, err = curve.ApplyChatter(table, cfg.Curve, cfg.Chatter)
				if err != nil {
					return err
				}
			}

			if err := lut.WriteFile(outPath, table); err != nil {
				return err
			}
			logger.Info("table written",
				"path", outPath,
				"rows", table.Len(),
				"falloff_rate", c.FalloffRate(),
				"max_residual", c.MaxResidual(),
				"chatter", withChatter)

			if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
				if err := recordRun(root, outPath, table, c, withChatter); err != nil {
					// History is bookkeeping; the table itself is already
					// safely on disk.
					logger.Warn("recording run history failed", "error", err)
				}
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"output":       outPath,
					"rows":         table.Len(),
					"falloff_rate": c.FalloffRate(),
					"max_residual": c.MaxResidual(),
					"chatter":      withChatter,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s (falloff rate %.4f, residual %.4f)\n",
				table.Len(), outPath, c.FalloffRate(), c.MaxResidual())
			return nil
		},
	}

	cmd.Flags().String("out", "", "Output LUT path (required)")
	cmd.Flags().Bool("no-history", false, "Skip recording the run in .slipcurve/history.db")
	addCurveFlags(cmd)
	cmd.Flags().Bool("chatter", false, "Overlay deterministic post-breakaway chatter")
	cmd.Flags().Float64("chatter-start", 0, "Chatter start angle, degrees")
	cmd.Flags().Float64("chatter-intensity", 0, "Chatter amplitude fraction")
	cmd.Flags().Float64("chatter-frequency", 0, "Chatter frequency scale")
	return cmd
}

// addCurveFlags registers the synthesizer shape flags shared by generate
// and compare.
func addCurveFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("linear-end", 0, "End of the linear region, degrees")
	cmd.Flags().Float64("peak-angle", 0, "Plateau start / peak grip angle, degrees")
	cmd.Flags().Float64("plateau-end", 0, "Plateau end angle, degrees")
	cmd.Flags().Float64("max-angle", 0, "Table domain end, degrees")
	cmd.Flags().Float64("resolution", 0, "Sampling step, degrees")
	cmd.Flags().String("checkpoints", "", "Retention checkpoints as angle:ratio,angle:ratio,...")
}

// applyCurveFlags overlays explicitly-set flags onto the configured curve.
func applyCurveFlags(cmd *cobra.Command, cfg *curve.Config) error {
	set := func(name string, dst *float64) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetFloat64(name)
		}
	}
	set("linear-end", &cfg.LinearEnd)
	set("peak-angle", &cfg.PeakAngle)
	set("plateau-end", &cfg.PlateauEnd)
	set("max-angle", &cfg.MaxAngle)
	set("resolution", &cfg.Resolution)

	if cmd.Flags().Changed("checkpoints") {
		raw, _ := cmd.Flags().GetString("checkpoints")
		cps, err := parseCheckpoints(raw)
		if err != nil {
			return err
		}
		cfg.Checkpoints = cps
	}
	return nil
}

func applyChatterFlags(cmd *cobra.Command, cfg *curve.ChatterConfig) error {
	set := func(name string, dst *float64) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetFloat64(name)
		}
	}
	set("chatter-start", &cfg.StartAngle)
	set("chatter-intensity", &cfg.Intensity)
	set("chatter-frequency", &cfg.Frequency)
	return nil
}

// parseCheckpoints parses "angle:ratio,angle:ratio,..." flag syntax.
func parseCheckpoints(raw string) ([]curve.Checkpoint, error) {
	var cps []curve.Checkpoint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		angleStr, ratioStr, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("checkpoint %q: expected angle:ratio", part)
		}
		angle, err := strconv.ParseFloat(angleStr, 64)
		if err != nil {
			return nil, fmt.Errorf("checkpoint %q: bad angle: %w", part, err)
		}
		ratio, err := strconv.ParseFloat(ratioStr, 64)
		if err != nil {
			return nil, fmt.Errorf("checkpoint %q: bad ratio: %w", part, err)
		}
		cps = append(cps, curve.Checkpoint{AngleDeg: angle, ForceRatio: ratio})
	}
	if len(cps) == 0 {
		return nil, fmt.Errorf("no checkpoints in %q", raw)
	}
	return cps, nil
}

// recordRun writes one row of run history for a generated table.
func recordRun(root, outPath string, table *lut.Table, c *curve.Curve, chatter bool) error {
	s, err := store.Open(root)
	if err != nil {
		return err
	}
	defer s.Close()

	abs := outPath
	if a, err := filepath.Abs(outPath); err == nil {
		abs = a
	}
	_, err = s.Record(context.Background(), store.Run{
		OutputPath:  abs,
		Rows:        table.Len(),
		FalloffRate: c.FalloffRate(),
		MaxResidual: c.MaxResidual(),
		Chatter:     chatter,
		Checksum:    store.Checksum(lut.Serialize(table)),
	})
	return err
}
