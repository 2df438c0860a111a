package tui

import "github.com/charmbracelet/bubbles/key"

// captureKeyMap holds the Capture screen bindings. Ctrl+S and Ctrl+O are not
// used by the textarea, so they never shadow an editing key.
type captureKeyMap struct {
	NewFile key.Binding
	Append  key.Binding
	Cancel  key.Binding
}

func newCaptureKeyMap() captureKeyMap {
	return captureKeyMap{
		NewFile: key.NewBinding(
			key.WithKeys("ctrl+s", "alt+n"),
			key.WithHelp("⌃S", "new file"),
		),
		Append: key.NewBinding(
			key.WithKeys("ctrl+o", "alt+a"),
			key.WithHelp("⌃O", "append"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k captureKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewFile, k.Append, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k captureKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type settingsKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Confirm  key.Binding
	Save     key.Binding
	CopyPath key.Binding
	Cancel   key.Binding
}

func newSettingsKeyMap() settingsKeyMap {
	return settingsKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("⇧tab", "prev field"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next / save"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("⌃S", "save"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("⌃Y", "copy documents path"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k settingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Save, k.CopyPath, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k settingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Confirm}, {k.Save, k.CopyPath, k.Cancel}}
}
