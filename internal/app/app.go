// Package app provides the main application context and dependency injection.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/donghojung/qcap/internal/capture"
	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/logging"
	"github.com/donghojung/qcap/internal/vault"
)

// App represents the main application context with all dependencies.
type App struct {
	// Paths
	ConfigDir     string // Preference file directory
	StateDir      string // Log file and scratchpad lock directory
	DocumentsRoot string // Public documents directory the vault lives under

	// State
	Prefs  *config.Preferences // Loaded preferences
	Layout vault.Layout        // Capture paths resolved from Prefs

	// Runtime
	Debug bool // Debug mode enabled
}

// Options overrides the default locations. Empty fields use the XDG defaults.
type Options struct {
	ConfigDir     string
	StateDir      string
	DocumentsRoot string
}

// New creates a new App instance. Preferences are not read until LoadPreferences.
func New(opts Options) (*App, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = config.ConfigDir()
	}
	stateDir := opts.StateDir
	if stateDir == "" {
		stateDir = config.StateDir()
	}
	documentsRoot := opts.DocumentsRoot
	if documentsRoot == "" {
		documentsRoot = config.DocumentsRoot()
	}

	absRoot, err := filepath.Abs(documentsRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve documents root: %w", err)
	}

	return &App{
		ConfigDir:     configDir,
		StateDir:      stateDir,
		DocumentsRoot: absRoot,
		Debug:         os.Getenv(constants.DebugEnvVar) == "1",
	}, nil
}

// Initialize creates the state directory used for logs and locks.
func (a *App) Initialize() error {
	if err := os.MkdirAll(a.StateDir, constants.DirPerm); err != nil { //nolint:gosec // G301: standard directory permissions
		return fmt.Errorf("failed to create directory %s: %w", a.StateDir, err)
	}
	return nil
}

// LoadPreferences reads the preference file and resolves the vault layout.
func (a *App) LoadPreferences() error {
	prefs, err := config.Load(a.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	for _, warning := range prefs.Normalize() {
		logging.Warn("preferences: %s", warning)
	}
	a.setPrefs(prefs)
	return nil
}

func (a *App) setPrefs(prefs *config.Preferences) {
	a.Prefs = prefs
	a.Layout = vault.NewLayout(a.DocumentsRoot, prefs)
	logging.Debug("layout: base=%s scratchpad=%s on_collision=%s", a.Layout.BaseDir, a.Layout.ScratchpadFile, a.Layout.OnCollision)
}

// SavePaths validates and persists the two path preferences.
// On a validation error nothing is written and the current preferences stay as they are.
func (a *App) SavePaths(documentsPath, scratchpadPath string) error {
	current, err := config.Load(a.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	if err := current.SetPaths(documentsPath, scratchpadPath); err != nil {
		return err
	}

	if err := current.Save(a.ConfigDir); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	logging.Info("preferences saved: documents_path=%q scratchpad_path=%q", current.DocumentsPath, current.ScratchpadPath)
	a.setPrefs(current)
	return nil
}

// HasPreferences checks if a preference file exists.
func (a *App) HasPreferences() bool {
	return config.Exists(a.ConfigDir)
}

// CaptureService returns a capture service bound to the current layout.
func (a *App) CaptureService() *capture.Service {
	return capture.NewService(a.Layout, a.StateDir)
}

// Notifications returns the configured reminder channels, or nil.
func (a *App) Notifications() *config.NotificationsConfig {
	if a.Prefs == nil {
		return nil
	}
	return a.Prefs.Notifications
}

// GetLogPath returns the path to the log file.
func (a *App) GetLogPath() string {
	return filepath.Join(a.StateDir, constants.LogFileName)
}

// GetPrefsPath returns the path to the preference file.
func (a *App) GetPrefsPath() string {
	return config.PrefsPath(a.ConfigDir)
}
