package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tyrelab/slipcurve/internal/tire"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the engine's default brush-model curve",
		Long: `Evaluate the engine's default brush-model force curve at a slip angle.

With --load, also reports the load-sensitivity scaling factor and the
absolute lateral force coefficient at that vertical load.

Examples:
  slipcurve eval --params tyre.ini --angle 10
  slipcurve eval --params tyre.ini --angle 8.5 --load 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			p, err := loadTireParams(cmd)
			if err != nil {
				return err
			}
			angle, _ := cmd.Flags().GetFloat64("angle")

			ratio, err := tire.Evaluate(angle, p)
			if err != nil {
				return err
			}

			result := map[string]any{
				"angle":       angle,
				"force_ratio": ratio,
			}
			if cmd.Flags().Changed("load") {
				load, _ := cmd.Flags().GetFloat64("load")
				scale, err := tire.LoadScale(load, p)
				if err != nil {
					return err
				}
				force, err := tire.LateralForce(angle, load, p)
				if err != nil {
					return err
				}
				result["load"] = load
				result["load_scale"] = scale
				result["lateral_force"] = force
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "force ratio at %g°: %.6f\n", angle, ratio)
			if scale, ok := result["load_scale"]; ok {
				fmt.Fprintf(cmd.OutOrStdout(), "load scale at %gN: %.6f\n", result["load"], scale)
				fmt.Fprintf(cmd.OutOrStdout(), "lateral force coefficient: %.6f\n", result["lateral_force"])
			}
			return nil
		},
	}

	cmd.Flags().String("params", "", "Engine tyre parameter file (required)")
	cmd.Flags().Float64("angle", 0, "Slip angle in degrees")
	cmd.Flags().Float64("load", 0, "Vertical load in newtons")
	cmd.MarkFlagRequired("angle")
	return cmd
}
