// Command slipcurve generates and inspects slip-angle lookup tables for
// the simulation engine's tyre model: it reproduces the engine's default
// brush-model curve, synthesizes replacement tables with a grip plateau,
// and keeps a history of generated tables.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tyrelab/slipcurve/internal/config"
	"github.com/tyrelab/slipcurve/internal/tire"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slipcurve",
		Short: "Slip-angle curve toolkit for tyre tuning",
		Long: `slipcurve builds and analyzes slip-angle lookup tables for a
simulation engine's tyre model.

It evaluates the engine's default brush-model curve, synthesizes
replacement tables with a realistic grip plateau and progressive
falloff, and writes them in the engine's LUT format.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newEvalCmd(),
		newLoadScaleCmd(),
		newCompareCmd(),
		newCheckCmd(),
		newHistoryCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "slipcurve version %s\n", version)
			}
		},
	}
}

// loadToolConfig loads the project configuration for the command's --root.
func loadToolConfig(cmd *cobra.Command) (*config.Config, string, error) {
	root, _ := cmd.Flags().GetString("root")
	cfg, err := config.Load(root)
	if err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}

// loadTireParams reads the engine parameter file named by --params and
// builds the force-model parameters from it.
func loadTireParams(cmd *cobra.Command) (tire.ForceParameters, error) {
	path, _ := cmd.Flags().GetString("params")
	if path == "" {
		return tire.ForceParameters{}, fmt.Errorf("--params is required")
	}
	values, err := config.ParseParamsFile(path)
	if err != nil {
		return tire.ForceParameters{}, err
	}
	p, err := tire.FromMap(values)
	if err != nil {
		return tire.ForceParameters{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
