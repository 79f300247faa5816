package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tyrelab/slipcurve/internal/lut"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <lut-file>",
		Short: "Parse and sanity-check an existing LUT file",
		Long: `Parse an existing lookup table and check the invariants the consuming
engine relies on: strictly ascending angles, at least two rows, a
(0, 0) first row, and ratios within [0, 1].

Both the space-separated form and the engine's "angle|ratio" dialect
are accepted.

Example:
  slipcurve check dy_curve.lut`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			table, err := lut.ReadFile(args[0])
			if err != nil {
				return err
			}

			var warnings []string
			points := table.Points()
			if points[0].SlipAngleDeg != 0 || points[0].ForceRatio != 0 {
				warnings = append(warnings, fmt.Sprintf("first row is (%g, %g), engine expects (0, 0)",
					points[0].SlipAngleDeg, points[0].ForceRatio))
			}
			for _, p := range points {
				if p.ForceRatio < 0 || p.ForceRatio > 1 {
					warnings = append(warnings, fmt.Sprintf("ratio %g at %g° outside [0, 1]",
						p.ForceRatio, p.SlipAngleDeg))
				}
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"path":      args[0],
					"rows":      table.Len(),
					"max_angle": table.MaxAngle(),
					"warnings":  warnings,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, 0-%g°\n", args[0], table.Len(), table.MaxAngle())
			for _, w := range warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			return nil
		},
	}
}
