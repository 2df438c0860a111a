package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/donghojung/qcap/internal/constants"
)

// ConfigDir returns the XDG config directory for qcap.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, constants.AppName)
}

// StateDir returns the XDG state directory for qcap (log file lives here).
func StateDir() string {
	return filepath.Join(xdg.StateHome, constants.AppName)
}

// PrefsPath returns the preference file path inside configDir.
func PrefsPath(configDir string) string {
	return filepath.Join(configDir, constants.PrefsFileName)
}

// LogPath returns the default path to the log file.
func LogPath() string {
	return filepath.Join(StateDir(), constants.LogFileName)
}

// DocumentsRoot returns the public documents directory captures are written under.
// QCAP_DOCUMENTS_DIR wins over the XDG user documents directory.
func DocumentsRoot() string {
	if dir := os.Getenv(constants.DocumentsRootEnvVar); dir != "" {
		return dir
	}
	if xdg.UserDirs.Documents != "" {
		return xdg.UserDirs.Documents
	}
	return filepath.Join(xdg.Home, "Documents")
}
