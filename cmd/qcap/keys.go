package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donghojung/qcap/internal/embed"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show keyboard shortcuts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		help, err := embed.GetHelp()
		if err != nil {
			return fmt.Errorf("failed to load help: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), help)
		return nil
	},
}
