package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tyrelab/slipcurve/internal/curve"
	"github.com/tyrelab/slipcurve/internal/logging"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the synthesized curve against the default model",
		Long: `Sample both the synthesized plateau curve and the engine's default
brush-model curve across the table domain and report their divergence.

This is the regression check to run before replacing a tyre's curve:
a large maximum delta in the plateau region is expected (that is the
point of the replacement), but the linear region should track closely.

Example:
  slipcurve compare --params tyre.ini`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			p, err := loadTireParams(cmd)
			if err != nil {
				return err
			}

			cfg, root, err := loadToolConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyCurveFlags(cmd, &cfg.Curve); err != nil {
				return err
			}

			trace := logging.NewTraceLogger(filepath.Join(root, ".slipcurve"), cfg.Logging.Level)
			defer trace.Close()

			c, err := curve.New(cfg.Curve, trace)
			if err != nil {
				return err
			}
			d, err := c.CompareBaseline(p)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"max_delta":       d.MaxDelta,
					"max_delta_angle": d.MaxDeltaAngle,
					"mean_delta":      d.MeanDelta,
					"samples":         d.Samples,
					"falloff_rate":    c.FalloffRate(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "samples:    %d\n", d.Samples)
			fmt.Fprintf(cmd.OutOrStdout(), "max delta:  %.4f at %.2f°\n", d.MaxDelta, d.MaxDeltaAngle)
			fmt.Fprintf(cmd.OutOrStdout(), "mean delta: %.4f\n", d.MeanDelta)
			return nil
		},
	}

	cmd.Flags().String("params", "", "Engine tyre parameter file (required)")
	addCurveFlags(cmd)
	return cmd
}
