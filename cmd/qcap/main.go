// Package main provides the entry point for the qcap CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/donghojung/qcap/internal/app"
	"github.com/donghojung/qcap/internal/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qcap [text...]",
	Short: "qcap - quick capture into your markdown vault",
	Long: `qcap captures a thought into a synced markdown vault.

Without a subcommand it opens the capture screen. Text given as arguments or
piped on stdin prefills the input.`,
	Args:         cobra.ArbitraryArgs,
	RunE:         runCaptureScreen,
	SilenceUsage: true,
}

var (
	showVersion       bool
	documentsRootFlag string
	configDirFlag     string
	stateDirFlag      string
)

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Print version information")
	rootCmd.PersistentFlags().StringVar(&documentsRootFlag, "documents-root", "", "Documents directory the vault lives under (default: XDG documents dir)")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Directory holding preferences.yaml (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&stateDirFlag, "state-dir", "", "Directory for the log, scratchpad locks and recent captures (default: XDG state dir)")
}

// setupApp builds the app context, opens the log file and loads preferences.
// The returned cleanup closes the logger.
func setupApp(command string) (*app.App, logging.Logger, func(), error) {
	application, err := app.New(app.Options{
		ConfigDir:     configDirFlag,
		StateDir:      stateDirFlag,
		DocumentsRoot: documentsRootFlag,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create app: %w", err)
	}

	if err := application.Initialize(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize: %w", err)
	}

	logger, err := logging.New(application.GetLogPath(), application.Debug)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	logger.SetCommand(command)
	logging.SetGlobal(logger)
	cleanup := func() { _ = logger.Close() }

	if err := application.LoadPreferences(); err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	logging.Debug("documents root: %s", application.DocumentsRoot)
	return application, logger, cleanup, nil
}
