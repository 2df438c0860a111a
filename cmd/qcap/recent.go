package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/donghojung/qcap/internal/service"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent captures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, _, cleanup, err := setupApp("recent")
		if err != nil {
			return err
		}
		defer cleanup()

		entries, err := service.NewRecentService(application.StateDir).Load()
		if err != nil {
			return fmt.Errorf("failed to load recent captures: %w", err)
		}
		printRecent(cmd.OutOrStdout(), entries, recentLimit)
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 10, "Number of entries to show (0 for all)")
}

func printRecent(w io.Writer, entries []service.RecentEntry, limit int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No captures yet.")
		return
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-8s  %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Action, e.Path)
		if e.Preview != "" {
			fmt.Fprintf(w, "                    %s\n", e.Preview)
		}
	}
}
