package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/donghojung/qcap/internal/capture"
	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/logging"
)

// Button zone IDs.
const (
	zoneCancel  = "capture-cancel"
	zoneNewFile = "capture-new"
	zoneAppend  = "capture-append"
)

const (
	minTextareaHeight = 3
	maxTextareaHeight = 20
	defaultWidth      = 80
)

// Capturer performs the two capture actions.
type Capturer interface {
	CreateNewFile(ctx context.Context, text string) (*capture.Result, error)
	AppendToScratchpad(ctx context.Context, text string) (*capture.Result, error)
}

type statusKind int

const (
	statusNone statusKind = iota
	statusSuccess
	statusError
)

// syncReminderMsg fires once, SyncReminderDelay after a successful capture.
type syncReminderMsg struct{}

// CaptureResult is what the capture screen produced.
type CaptureResult struct {
	Cancelled bool
	Capture   *capture.Result
	Text      string
	Reminder  string
}

// CaptureUI is the quick capture screen: one text area and three buttons.
type CaptureUI struct {
	svc        Capturer
	textarea   textarea.Model
	help       help.Model
	keys       captureKeyMap
	zones      *zone.Manager
	colors     ThemeColors
	targetHint string

	// prefill is the share payload as received. seeded is what the text
	// area holds right after loading it; the two differ when the text area
	// rewrites tabs or line endings.
	prefill string
	seeded  string

	width  int
	height int

	status     string
	statusKind statusKind
	reminder   string

	result    *capture.Result
	submitted string
	closing   bool
	cancelled bool
}

// NewCaptureUI creates the capture screen. prefill seeds the text area with a
// share payload.
func NewCaptureUI(svc Capturer, prefill string, isDark bool, targetHint string) *CaptureUI {
	logging.Debug("-> NewCaptureUI(prefill=%d bytes)", len(prefill))
	defer logging.Debug("<- NewCaptureUI")

	colors := NewThemeColors(isDark)

	ta := textarea.New()
	ta.Placeholder = "Type something to capture..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetWidth(defaultWidth - 4)
	ta.SetHeight(minTextareaHeight + 3)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colors.TextDim)
	ta.BlurredStyle.Text = lipgloss.NewStyle().Foreground(colors.TextDim)
	if prefill != "" {
		ta.SetValue(prefill)
	}
	ta.Focus()

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(colors.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(colors.TextDim)

	return &CaptureUI{
		svc:        svc,
		textarea:   ta,
		help:       h,
		keys:       newCaptureKeyMap(),
		zones:      zone.New(),
		colors:     colors,
		targetHint: targetHint,
		prefill:    prefill,
		seeded:     ta.Value(),
		width:      defaultWidth,
	}
}

// Init initializes the capture screen.
func (m *CaptureUI) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model.
func (m *CaptureUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case syncReminderMsg:
		m.reminder = constants.MsgSyncReminder
		return m, tea.Quit

	case tea.MouseMsg:
		if m.closing {
			return m, nil
		}
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			break
		}
		switch {
		case m.clicked(zoneCancel, msg):
			return m.cancel()
		case m.clicked(zoneNewFile, msg):
			return m.submit(capture.ActionNewFile)
		case m.clicked(zoneAppend, msg):
			return m.submit(capture.ActionAppend)
		}
		return m, nil

	case tea.KeyMsg:
		if m.closing {
			// Ctrl+C still leaves at once; the capture is already on disk.
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m.cancel()
		case key.Matches(msg, m.keys.NewFile):
			return m.submit(capture.ActionNewFile)
		case key.Matches(msg, m.keys.Append):
			return m.submit(capture.ActionAppend)
		}
		if m.statusKind == statusError {
			m.clearStatus()
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *CaptureUI) clicked(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

func (m *CaptureUI) cancel() (tea.Model, tea.Cmd) {
	logging.Debug("capture cancelled")
	m.cancelled = true
	return m, tea.Quit
}

// submit runs action synchronously. On failure the screen stays open with the
// input intact; on success it closes after the sync reminder.
func (m *CaptureUI) submit(action capture.Action) (tea.Model, tea.Cmd) {
	text := m.input()
	ctx := context.Background()

	var (
		res *capture.Result
		err error
	)
	switch action {
	case capture.ActionAppend:
		res, err = m.svc.AppendToScratchpad(ctx, text)
	default:
		res, err = m.svc.CreateNewFile(ctx, text)
	}

	if err != nil {
		if errors.Is(err, capture.ErrEmptyInput) {
			logging.Debug("%s: empty input", action)
		} else {
			logging.Warn("%s failed: %v", action, err)
		}
		m.status = capture.UserMessage(action, err)
		m.statusKind = statusError
		return m, nil
	}

	m.result = res
	m.submitted = text
	m.closing = true
	m.status = res.Message
	m.statusKind = statusSuccess
	m.textarea.Blur()

	return m, tea.Tick(constants.SyncReminderDelay, func(time.Time) tea.Msg {
		return syncReminderMsg{}
	})
}

// input returns the text to capture. An untouched prefill is returned as
// received so the file content matches the shared text byte for byte.
func (m *CaptureUI) input() string {
	text := m.textarea.Value()
	if m.prefill != "" && text == m.seeded {
		return m.prefill
	}
	return text
}

func (m *CaptureUI) clearStatus() {
	m.status = ""
	m.statusKind = statusNone
}

func (m *CaptureUI) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.textarea.SetWidth(w)
	m.help.Width = m.width

	// title, hint, buttons, border, status, help
	h := m.height - 9
	if h < minTextareaHeight {
		h = minTextareaHeight
	}
	if h > maxTextareaHeight {
		h = maxTextareaHeight
	}
	m.textarea.SetHeight(h)
}

// View renders the capture screen.
func (m *CaptureUI) View() string {
	c := m.colors

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(c.Accent)
	dimStyle := lipgloss.NewStyle().Foreground(c.TextDim)
	buttonStyle := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(c.Text).
		Background(c.ButtonBg)
	primaryStyle := buttonStyle.Foreground(c.Accent).Bold(true)

	borderColor := c.BorderFocused
	if m.closing {
		borderColor = c.Border
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Quick Capture"))
	if m.targetHint != "" {
		sb.WriteString("  " + dimStyle.Render(m.targetHint))
	}
	sb.WriteString("\n\n")

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.zones.Mark(zoneCancel, buttonStyle.Render("Cancel")),
		"  ",
		m.zones.Mark(zoneNewFile, primaryStyle.Render("New File")),
		"  ",
		m.zones.Mark(zoneAppend, primaryStyle.Render("Append")),
	)
	sb.WriteString(buttons)
	sb.WriteString("\n")

	sb.WriteString(boxStyle.Render(m.textarea.View()))
	sb.WriteString("\n")

	sb.WriteString(m.renderStatus())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return m.zones.Scan(sb.String())
}

func (m *CaptureUI) renderStatus() string {
	var lines []string
	switch m.statusKind {
	case statusError:
		lines = append(lines, lipgloss.NewStyle().Foreground(m.colors.Error).Render(m.status))
	case statusSuccess:
		lines = append(lines, lipgloss.NewStyle().Foreground(m.colors.Success).Render("✓ "+m.status))
	}
	if m.reminder != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.colors.Accent).Render(m.reminder))
	}
	return strings.Join(lines, "\n")
}

// Value returns the current input.
func (m *CaptureUI) Value() string {
	return m.textarea.Value()
}

// Status returns the visible status message.
func (m *CaptureUI) Status() string {
	return m.status
}

// Result returns the capture result.
func (m *CaptureUI) Result() CaptureResult {
	res := CaptureResult{
		Cancelled: m.cancelled,
		Capture:   m.result,
		Reminder:  m.reminder,
	}
	if m.result != nil {
		res.Text = m.submitted
	}
	return res
}

// Close releases the zone manager.
func (m *CaptureUI) Close() {
	m.zones.Close()
}

// RunCaptureUI runs the capture screen and returns the result.
func RunCaptureUI(svc Capturer, prefill string, theme config.Theme, targetHint string) (*CaptureResult, error) {
	logging.Debug("-> RunCaptureUI")
	defer logging.Debug("<- RunCaptureUI")

	// Detect dark mode BEFORE bubbletea starts
	isDark := DetectDarkMode(theme)

	m := NewCaptureUI(svc, prefill, isDark, targetHint)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		logging.Debug("RunCaptureUI: tea.Program.Run failed: %v", err)
		return nil, err
	}

	ui := finalModel.(*CaptureUI)
	result := ui.Result()
	logging.Debug("RunCaptureUI: completed, cancelled=%v", result.Cancelled)
	return &result, nil
}
