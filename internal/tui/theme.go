// Package tui provides the terminal screens of qcap.
package tui

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"github.com/donghojung/qcap/internal/config"
)

const (
	darkModeUnknown int32 = iota
	darkModeLight
	darkModeDark
)

var cachedDarkMode atomic.Int32

// ThemeColors is the palette shared by all screens.
type ThemeColors struct {
	Accent        lipgloss.Color
	Text          lipgloss.Color
	TextDim       lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	ButtonBg      lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
}

// NewThemeColors returns the palette for a dark or light terminal.
func NewThemeColors(isDark bool) ThemeColors {
	if isDark {
		return ThemeColors{
			Accent:        lipgloss.Color("39"),
			Text:          lipgloss.Color("252"),
			TextDim:       lipgloss.Color("244"),
			Border:        lipgloss.Color("238"),
			BorderFocused: lipgloss.Color("39"),
			ButtonBg:      lipgloss.Color("236"),
			Error:         lipgloss.Color("203"),
			Success:       lipgloss.Color("78"),
		}
	}
	return ThemeColors{
		Accent:        lipgloss.Color("25"),
		Text:          lipgloss.Color("236"),
		TextDim:       lipgloss.Color("245"),
		Border:        lipgloss.Color("250"),
		BorderFocused: lipgloss.Color("25"),
		ButtonBg:      lipgloss.Color("254"),
		Error:         lipgloss.Color("160"),
		Success:       lipgloss.Color("28"),
	}
}

// DetectDarkMode returns whether the terminal is in dark mode.
//   - "light": always returns false
//   - "dark": always returns true
//   - "auto" or empty: uses lipgloss.HasDarkBackground() to auto-detect
//
// This function should be called BEFORE bubbletea starts, as
// lipgloss.HasDarkBackground() queries the terminal.
func DetectDarkMode(theme config.Theme) bool {
	switch theme {
	case config.ThemeLight:
		return false
	case config.ThemeDark:
		return true
	default:
		if isDark, ok := cachedDarkModeValue(); ok {
			return isDark
		}
		isDark := lipgloss.HasDarkBackground()
		setCachedDarkMode(isDark)
		return isDark
	}
}

func cachedDarkModeValue() (bool, bool) {
	switch cachedDarkMode.Load() {
	case darkModeDark:
		return true, true
	case darkModeLight:
		return false, true
	default:
		return false, false
	}
}

func setCachedDarkMode(isDark bool) {
	if isDark {
		cachedDarkMode.Store(darkModeDark)
		return
	}
	cachedDarkMode.Store(darkModeLight)
}
