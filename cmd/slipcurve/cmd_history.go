package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/tyrelab/slipcurve/internal/store"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generation runs",
		Long: `List the generation runs recorded in .slipcurve/history.db, newest
first: output path, row count, solved falloff rate, and the checksum of
the written table.

Example:
  slipcurve history --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			root, _ := cmd.Flags().GetString("root")
			limit, _ := cmd.Flags().GetInt("limit")

			if _, err := os.Stat(filepath.Join(root, ".slipcurve", "history.db")); os.IsNotExist(err) {
				return fmt.Errorf("no history recorded yet under %s", root)
			}

			s, err := store.Open(root)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.List(context.Background(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(runs)
			}
			for _, r := range runs {
				marker := ""
				if r.Chatter {
					marker = " [chatter]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "#%-4d %s  %s  %d rows  rate %.4f%s\n",
					r.ID, r.CreatedAt.Local().Format(time.DateTime), r.OutputPath, r.Rows, r.FalloffRate, marker)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum runs to list (0 for all)")
	return cmd
}
