package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tyrelab/slipcurve/internal/tire"
)

func newLoadScaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loadscale",
		Short: "Compute load-sensitivity scaling factors",
		Long: `Compute the grip scaling factor (load / FZ0) ^ LS_EXP for one or more
vertical loads. The factor is exactly 1.0 at the reference load FZ0.

Examples:
  slipcurve loadscale --params tyre.ini --loads 2494
  slipcurve loadscale --params tyre.ini --loads 2000,2494,3000,3500,4000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			p, err := loadTireParams(cmd)
			if err != nil {
				return err
			}

			raw, _ := cmd.Flags().GetString("loads")
			loads, err := parseLoads(raw)
			if err != nil {
				return err
			}

			type sample struct {
				Load  float64 `json:"load"`
				Scale float64 `json:"scale"`
			}
			samples := make([]sample, 0, len(loads))
			for _, load := range loads {
				scale, err := tire.LoadScale(load, p)
				if err != nil {
					return err
				}
				samples = append(samples, sample{Load: load, Scale: scale})
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(samples)
			}
			for _, s := range samples {
				fmt.Fprintf(cmd.OutOrStdout(), "%8.0fN  %.6f\n", s.Load, s.Scale)
			}
			return nil
		},
	}

	cmd.Flags().String("params", "", "Engine tyre parameter file (required)")
	cmd.Flags().String("loads", "", "Comma-separated vertical loads in newtons (required)")
	cmd.MarkFlagRequired("loads")
	return cmd
}

// parseLoads parses a comma-separated list of loads.
func parseLoads(raw string) ([]float64, error) {
	var loads []float64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad load %q: %w", part, err)
		}
		loads = append(loads, v)
	}
	if len(loads) == 0 {
		return nil, fmt.Errorf("no loads in %q", raw)
	}
	return loads, nil
}
