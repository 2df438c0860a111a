// Package embed provides embedded assets for qcap.
package embed

import (
	"embed"
	"strings"
)

//go:embed assets/*

// Assets contains all embedded files for qcap.
var Assets embed.FS

// GetHelp returns the keyboard reference for the capture and settings screens.
func GetHelp() (string, error) {
	data, err := Assets.ReadFile("assets/HELP.md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetPreferencesHeader returns the comment block written above saved preferences.
// {{PREFS_NAME}} is replaced with prefsName.
func GetPreferencesHeader(prefsName string) (string, error) {
	data, err := Assets.ReadFile("assets/preferences-header.yaml")
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "{{PREFS_NAME}}", prefsName), nil
}
