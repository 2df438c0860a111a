package tui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/logging"
	"github.com/donghojung/qcap/internal/vault"
)

// SettingsField represents the field being edited.
type SettingsField int

const (
	SettingsFieldDocuments SettingsField = iota
	SettingsFieldScratchpad
)

const settingsFieldCount = 2

// Saver persists the two path preferences.
type Saver interface {
	SavePaths(documentsPath, scratchpadPath string) error
}

// Clipboard receives the copied example path.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SettingsResult contains the result of the settings UI.
type SettingsResult struct {
	DocumentsPath  string
	ScratchpadPath string
	Saved          bool
	Cancelled      bool
	Message        string
}

// SettingsUI edits the documents folder and the scratchpad path.
type SettingsUI struct {
	saver         Saver
	clipboard     Clipboard
	documentsRoot string
	onCollision   config.OnCollision

	inputs []textinput.Model
	field  SettingsField
	help   help.Model
	keys   settingsKeyMap
	colors ThemeColors

	width int

	status     string
	statusKind statusKind

	saved     bool
	cancelled bool
}

// NewSettingsUI creates the settings screen, loaded from prefs.
func NewSettingsUI(saver Saver, prefs *config.Preferences, documentsRoot string, isDark bool) *SettingsUI {
	logging.Debug("-> NewSettingsUI(documentsRoot=%s)", documentsRoot)
	defer logging.Debug("<- NewSettingsUI")

	if prefs == nil {
		prefs = config.DefaultPreferences()
	}
	colors := NewThemeColors(isDark)

	docs := newPathInput(prefs.DocumentsPath, constants.DefaultDocumentsPath, colors)
	scratch := newPathInput(prefs.ScratchpadPath, constants.DefaultScratchpadPath, colors)
	docs.Focus()

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(colors.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(colors.TextDim)

	return &SettingsUI{
		saver:         saver,
		clipboard:     systemClipboard{},
		documentsRoot: documentsRoot,
		onCollision:   prefs.OnCollision,
		inputs:        []textinput.Model{docs, scratch},
		field:         SettingsFieldDocuments,
		help:          h,
		keys:          newSettingsKeyMap(),
		colors:        colors,
		width:         defaultWidth,
	}
}

func newPathInput(value, placeholder string, colors ThemeColors) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = defaultWidth - 24
	ti.TextStyle = lipgloss.NewStyle().Foreground(colors.Text)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colors.TextDim)
	ti.SetValue(value)
	ti.CursorEnd()
	return ti
}

// SetClipboard replaces the system clipboard.
func (m *SettingsUI) SetClipboard(c Clipboard) {
	m.clipboard = c
}

// Init initializes the settings UI.
func (m *SettingsUI) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m *SettingsUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		for i := range m.inputs {
			w := msg.Width - 24
			if w < 20 {
				w = 20
			}
			m.inputs[i].Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Save):
			return m.save()

		case key.Matches(msg, m.keys.Confirm):
			if m.field == settingsFieldCount-1 {
				return m.save()
			}
			return m, m.focus(m.field + 1)

		case key.Matches(msg, m.keys.Next):
			return m, m.focus((m.field + 1) % settingsFieldCount)

		case key.Matches(msg, m.keys.Prev):
			return m, m.focus((m.field - 1 + settingsFieldCount) % settingsFieldCount)

		case key.Matches(msg, m.keys.CopyPath):
			m.copyExamplePath()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	return m, cmd
}

func (m *SettingsUI) focus(field SettingsField) tea.Cmd {
	m.inputs[m.field].Blur()
	m.field = field
	return m.inputs[m.field].Focus()
}

// save validates and persists both fields. A rejected save keeps the screen open.
func (m *SettingsUI) save() (tea.Model, tea.Cmd) {
	docs := m.inputs[SettingsFieldDocuments].Value()
	scratch := m.inputs[SettingsFieldScratchpad].Value()

	if err := m.saver.SavePaths(docs, scratch); err != nil {
		m.statusKind = statusError
		switch {
		case errors.Is(err, config.ErrEmptyDocumentsPath):
			m.status = constants.MsgEmptyDocuments
			m.focus(SettingsFieldDocuments)
		case errors.Is(err, config.ErrEmptyScratchpadPath):
			m.status = constants.MsgEmptyScratchpad
			m.focus(SettingsFieldScratchpad)
		default:
			logging.Warn("failed to save settings: %v", err)
			m.status = "Failed to save settings: " + err.Error()
		}
		return m, nil
	}

	logging.Debug("settings screen: saved")
	m.saved = true
	m.status = constants.MsgSettingsSaved
	m.statusKind = statusSuccess
	return m, tea.Quit
}

// copyExamplePath puts the absolute documents root on the clipboard.
func (m *SettingsUI) copyExamplePath() {
	if err := m.clipboard.WriteAll(m.documentsRoot); err != nil {
		logging.Warn("clipboard write failed: %v", err)
		m.status = "Could not copy to clipboard: " + err.Error()
		m.statusKind = statusError
		return
	}
	m.status = "Copied to clipboard: " + m.documentsRoot
	m.statusKind = statusSuccess
}

// preview resolves the layout the current field values would produce.
func (m *SettingsUI) preview() vault.Layout {
	prefs := &config.Preferences{
		DocumentsPath:  strings.TrimSpace(m.inputs[SettingsFieldDocuments].Value()),
		ScratchpadPath: strings.TrimSpace(m.inputs[SettingsFieldScratchpad].Value()),
		OnCollision:    m.onCollision,
	}
	return vault.NewLayout(m.documentsRoot, prefs)
}

// View renders the settings screen.
func (m *SettingsUI) View() string {
	c := m.colors

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(c.Accent)
	labelStyle := lipgloss.NewStyle().Width(20).Foreground(c.TextDim)
	selectedLabelStyle := lipgloss.NewStyle().Width(20).Foreground(c.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(c.TextDim)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Settings"))
	sb.WriteString("\n\n")

	labels := []string{"Documents folder:", "Scratchpad file:"}
	for i, in := range m.inputs {
		label := labelStyle.Render(labels[i])
		if SettingsField(i) == m.field {
			label = selectedLabelStyle.Render(labels[i])
		}
		sb.WriteString(label + in.View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	// Example paths are only shown when both fields resolve to something.
	if m.inputs[SettingsFieldDocuments].Value() != "" && m.inputs[SettingsFieldScratchpad].Value() != "" {
		l := m.preview()
		sb.WriteString(dimStyle.Render("New files:  " + l.FilePath("yyyy-MM-dd HHmm"+constants.MarkdownExt)))
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("Scratchpad: " + l.ScratchpadFile))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render("Documents:  " + m.documentsRoot))
	sb.WriteString("\n\n")

	switch m.statusKind {
	case statusError:
		sb.WriteString(lipgloss.NewStyle().Foreground(c.Error).Render(m.status))
	case statusSuccess:
		sb.WriteString(lipgloss.NewStyle().Foreground(c.Success).Render("✓ " + m.status))
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

// Status returns the visible status message.
func (m *SettingsUI) Status() string {
	return m.status
}

// Result returns the settings result.
func (m *SettingsUI) Result() SettingsResult {
	res := SettingsResult{
		DocumentsPath:  strings.TrimSpace(m.inputs[SettingsFieldDocuments].Value()),
		ScratchpadPath: strings.TrimSpace(m.inputs[SettingsFieldScratchpad].Value()),
		Saved:          m.saved,
		Cancelled:      m.cancelled,
	}
	if m.saved {
		res.Message = constants.MsgSettingsSaved
	}
	return res
}

// RunSettingsUI runs the settings UI and returns the result.
func RunSettingsUI(saver Saver, prefs *config.Preferences, documentsRoot string) (*SettingsResult, error) {
	logging.Debug("-> RunSettingsUI")
	defer logging.Debug("<- RunSettingsUI")

	theme := config.ThemeAuto
	if prefs != nil {
		theme = prefs.Theme
	}
	// Detect dark mode BEFORE bubbletea starts
	isDark := DetectDarkMode(theme)

	m := NewSettingsUI(saver, prefs, documentsRoot, isDark)
	logging.Debug("RunSettingsUI: starting tea.Program")
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		logging.Debug("RunSettingsUI: tea.Program.Run failed: %v", err)
		return nil, err
	}

	ui := finalModel.(*SettingsUI)
	result := ui.Result()
	logging.Debug("RunSettingsUI: completed, saved=%v cancelled=%v", result.Saved, result.Cancelled)
	return &result, nil
}
