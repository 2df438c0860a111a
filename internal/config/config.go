// Package config handles qcap preference loading and persistence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/embed"
)

// OnCollision defines what Create New File does when the timestamped name already exists.
type OnCollision string

const (
	OnCollisionOverwrite OnCollision = "overwrite" // Replace the existing file
	OnCollisionSuffix    OnCollision = "suffix"    // Write "<ts> 2.md", "<ts> 3.md", ...
	OnCollisionFail      OnCollision = "fail"      // Abort with an error, keep the input
)

// Theme controls the TUI color scheme.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Validation errors returned by SetPaths.
var (
	ErrEmptyDocumentsPath  = errors.New("documents path cannot be empty")
	ErrEmptyScratchpadPath = errors.New("scratchpad path cannot be empty")
)

// SlackConfig holds Slack notification settings.
type SlackConfig struct {
	Webhook string `yaml:"webhook"` // Slack incoming webhook URL
}

// NtfyConfig holds ntfy.sh notification settings.
type NtfyConfig struct {
	Topic  string `yaml:"topic"`            // ntfy topic name
	Server string `yaml:"server,omitempty"` // ntfy server URL (default: https://ntfy.sh)
}

// NotificationsConfig holds the channels the sync reminder is pushed to.
type NotificationsConfig struct {
	Desktop bool         `yaml:"desktop,omitempty"`
	Slack   *SlackConfig `yaml:"slack,omitempty"`
	Ntfy    *NtfyConfig  `yaml:"ntfy,omitempty"`
}

// Preferences is the persisted preference set.
type Preferences struct {
	DocumentsPath  string               `yaml:"documents_path"`
	ScratchpadPath string               `yaml:"scratchpad_path"`
	OnCollision    OnCollision          `yaml:"on_collision,omitempty"`
	Theme          Theme                `yaml:"theme,omitempty"`
	Notifications  *NotificationsConfig `yaml:"notifications,omitempty"`
}

// DefaultPreferences returns the compiled-in defaults.
func DefaultPreferences() *Preferences {
	return &Preferences{
		DocumentsPath:  constants.DefaultDocumentsPath,
		ScratchpadPath: constants.DefaultScratchpadPath,
		OnCollision:    OnCollisionOverwrite,
		Theme:          ThemeAuto,
	}
}

// Load reads the preferences from the given config directory.
// A missing file yields the defaults; missing keys fall back to their default.
func Load(configDir string) (*Preferences, error) {
	path := PrefsPath(configDir)

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is built from the config dir
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPreferences(), nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	return parsePreferences(data)
}

func parsePreferences(data []byte) (*Preferences, error) {
	prefs := DefaultPreferences()
	if err := yaml.Unmarshal(data, prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}

	// Keys present but blank read as defaults, same as a missing key.
	if strings.TrimSpace(prefs.DocumentsPath) == "" {
		prefs.DocumentsPath = constants.DefaultDocumentsPath
	}
	if strings.TrimSpace(prefs.ScratchpadPath) == "" {
		prefs.ScratchpadPath = constants.DefaultScratchpadPath
	}
	return prefs, nil
}

// Normalize resets unknown enum values to their defaults and reports what changed.
func (p *Preferences) Normalize() []string {
	var warnings []string

	switch {
	case p.OnCollision == "":
		p.OnCollision = OnCollisionOverwrite
	case !slices.Contains(ValidOnCollisions(), p.OnCollision):
		warnings = append(warnings, fmt.Sprintf("unknown on_collision %q (valid: %s), using %q",
			p.OnCollision, joinValues(ValidOnCollisions()), OnCollisionOverwrite))
		p.OnCollision = OnCollisionOverwrite
	}

	switch {
	case p.Theme == "":
		p.Theme = ThemeAuto
	case !slices.Contains(ValidThemes(), p.Theme):
		warnings = append(warnings, fmt.Sprintf("unknown theme %q (valid: %s), using %q",
			p.Theme, joinValues(ValidThemes()), ThemeAuto))
		p.Theme = ThemeAuto
	}

	return warnings
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// SetPaths trims and stores both path preferences.
// Either value being empty rejects the whole update and leaves p unchanged.
func (p *Preferences) SetPaths(documentsPath, scratchpadPath string) error {
	documentsPath = strings.TrimSpace(documentsPath)
	scratchpadPath = strings.TrimSpace(scratchpadPath)

	if documentsPath == "" {
		return ErrEmptyDocumentsPath
	}
	if scratchpadPath == "" {
		return ErrEmptyScratchpadPath
	}

	p.DocumentsPath = documentsPath
	p.ScratchpadPath = scratchpadPath
	return nil
}

// Save writes the preferences to the given config directory.
func (p *Preferences) Save(configDir string) error {
	if err := os.MkdirAll(configDir, constants.DirPerm); err != nil { //nolint:gosec // G301: standard directory permissions
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	header, err := embed.GetPreferencesHeader(constants.PrefsName)
	if err != nil {
		return fmt.Errorf("failed to read preferences header: %w", err)
	}
	content := header + string(body)

	return writeFileAtomic(PrefsPath(configDir), []byte(content), constants.FilePerm)
}

// Exists checks if a preference file exists in the given config directory.
func Exists(configDir string) bool {
	_, err := os.Stat(PrefsPath(configDir))
	return err == nil
}

// ValidOnCollisions returns all valid on_collision values.
func ValidOnCollisions() []OnCollision {
	return []OnCollision{OnCollisionOverwrite, OnCollisionSuffix, OnCollisionFail}
}

// ValidThemes returns all valid theme values.
func ValidThemes() []Theme {
	return []Theme{ThemeAuto, ThemeLight, ThemeDark}
}

// writeFileAtomic writes data to a temp file in the same directory and renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+constants.AppName+"-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
