package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/logging"
	"github.com/donghojung/qcap/internal/tui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Edit the documents folder and scratchpad path",
	Long:  "Open the settings screen. Use the subcommands to read or write preferences without the screen.",
	RunE:  runSettingsScreen,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current preferences",
	Args:  cobra.NoArgs,
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <documents-path> <scratchpad-path>",
	Short: "Set both path preferences",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the preference file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, _, cleanup, err := setupApp("settings")
		if err != nil {
			return err
		}
		defer cleanup()
		fmt.Fprintln(cmd.OutOrStdout(), application.GetPrefsPath())
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
}

func runSettingsScreen(cmd *cobra.Command, args []string) error {
	application, logger, cleanup, err := setupApp("settings")
	if err != nil {
		return err
	}
	defer cleanup()

	logging.SetQuiet(logger, true)
	result, err := tui.RunSettingsUI(application, application.Prefs, application.DocumentsRoot)
	logging.SetQuiet(logger, false)
	if err != nil {
		return fmt.Errorf("settings screen failed: %w", err)
	}

	if result.Saved {
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	application, _, cleanup, err := setupApp("settings")
	if err != nil {
		return err
	}
	defer cleanup()

	p := application.Prefs
	l := application.Layout
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "documents_path:  %s\n", p.DocumentsPath)
	fmt.Fprintf(out, "scratchpad_path: %s\n", p.ScratchpadPath)
	fmt.Fprintf(out, "on_collision:    %s\n", p.OnCollision)
	fmt.Fprintf(out, "theme:           %s\n", p.Theme)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "documents root:  %s\n", l.DocumentsRoot)
	fmt.Fprintf(out, "new notes:       %s\n", l.BaseDir)
	fmt.Fprintf(out, "scratchpad:      %s\n", l.ScratchpadFile)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	application, _, cleanup, err := setupApp("settings")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := application.SavePaths(args[0], args[1]); err != nil {
		return settingsError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), constants.MsgSettingsSaved)
	return nil
}

// settingsError maps validation errors to the messages shown on the settings screen.
func settingsError(err error) error {
	switch {
	case errors.Is(err, config.ErrEmptyDocumentsPath):
		return errors.New(constants.MsgEmptyDocuments)
	case errors.Is(err, config.ErrEmptyScratchpadPath):
		return errors.New(constants.MsgEmptyScratchpad)
	}
	return err
}
