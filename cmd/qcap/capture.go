package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/donghojung/qcap/internal/app"
	"github.com/donghojung/qcap/internal/capture"
	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/logging"
	"github.com/donghojung/qcap/internal/notify"
	"github.com/donghojung/qcap/internal/service"
	"github.com/donghojung/qcap/internal/tui"
)

// maxSharePayload caps how much piped input is accepted.
const maxSharePayload = 4 << 20

var noReminder bool

// Share payload source. Replaced in tests.
var (
	shareInput   io.Reader = os.Stdin
	isStdinPiped           = stdinIsPiped
)

var newCmd = &cobra.Command{
	Use:   "new [text...]",
	Short: "Save text as a new timestamped note",
	Long: `Save text as <yyyy-MM-dd HHmm>.md in the documents folder.

Text is taken from the arguments, or from stdin when it is piped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHeadless(cmd, capture.ActionNewFile, args)
	},
}

var appendCmd = &cobra.Command{
	Use:   "append [text...]",
	Short: "Append text to the scratchpad",
	Long: `Append text to the scratchpad file, separated from earlier entries by a
blank line.

Text is taken from the arguments, or from stdin when it is piped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHeadless(cmd, capture.ActionAppend, args)
	},
}

func init() {
	for _, c := range []*cobra.Command{newCmd, appendCmd} {
		c.Flags().BoolVar(&noReminder, "no-reminder", false, "Skip the sync reminder")
	}
}

// stdinIsPiped reports whether stdin carries a share payload.
func stdinIsPiped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// readSharePayload joins args with spaces and appends piped stdin, if any.
// CRLF line endings become LF and a single trailing newline is dropped.
// Input over maxSharePayload is rejected rather than cut short.
func readSharePayload(args []string, stdin io.Reader, piped bool) (string, error) {
	parts := make([]string, 0, 2)
	if len(args) > 0 {
		parts = append(parts, strings.Join(args, " "))
	}

	if piped && stdin != nil {
		data, err := io.ReadAll(io.LimitReader(stdin, maxSharePayload+1))
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(data) > maxSharePayload {
			return "", fmt.Errorf("share payload exceeds %d MiB", maxSharePayload>>20)
		}
		text := strings.ReplaceAll(string(data), "\r\n", "\n")
		text = strings.TrimSuffix(text, "\n")
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n"), nil
}

// runHeadless performs a capture without the TUI.
func runHeadless(cmd *cobra.Command, action capture.Action, args []string) error {
	application, _, cleanup, err := setupApp(cmd.Name())
	if err != nil {
		return err
	}
	defer cleanup()

	text, err := readSharePayload(args, shareInput, isStdinPiped())
	if err != nil {
		return err
	}

	svc := application.CaptureService()
	var res *capture.Result
	switch action {
	case capture.ActionAppend:
		res, err = svc.AppendToScratchpad(cmd.Context(), text)
	default:
		res, err = svc.CreateNewFile(cmd.Context(), text)
	}
	if err != nil {
		logging.Debug("%s failed: %v", action, err)
		return errors.New(capture.UserMessage(action, err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	recordCapture(application, res, text)
	if noReminder {
		return nil
	}

	time.Sleep(constants.SyncReminderDelay)
	fmt.Fprintln(cmd.OutOrStdout(), constants.MsgSyncReminder)
	pushReminder(application, res)
	return nil
}

// runCaptureScreen opens the capture TUI, prefilled with any share payload.
func runCaptureScreen(cmd *cobra.Command, args []string) error {
	if checkVersionFlag() {
		return nil
	}

	application, logger, cleanup, err := setupApp("capture")
	if err != nil {
		return err
	}
	defer cleanup()

	piped := isStdinPiped()
	prefill, err := readSharePayload(args, shareInput, piped)
	if err != nil {
		return err
	}
	if piped {
		// The payload consumed stdin; bubbletea needs a terminal for keys.
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("capture screen needs a terminal, use 'qcap new' or 'qcap append' with piped input: %w", err)
		}
		defer func() { _ = tty.Close() }()
		os.Stdin = tty
	}

	logging.SetQuiet(logger, true)
	result, err := tui.RunCaptureUI(application.CaptureService(), prefill, application.Prefs.Theme, targetHint(application))
	logging.SetQuiet(logger, false)
	if err != nil {
		return fmt.Errorf("capture screen failed: %w", err)
	}

	if result.Cancelled || result.Capture == nil {
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Capture.Message)
	recordCapture(application, result.Capture, result.Text)
	if result.Reminder != "" {
		fmt.Fprintln(cmd.OutOrStdout(), result.Reminder)
	}
	pushReminder(application, result.Capture)
	return nil
}

// pushReminder sends the sync reminder to the configured notification channels.
func pushReminder(application *app.App, res *capture.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.NotifyTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- notify.SendSyncReminder(application.Notifications(), res)
	}()

	select {
	case err := <-done:
		if err != nil {
			logging.Warn("sync reminder not delivered: %v", err)
		}
	case <-ctx.Done():
		logging.Warn("sync reminder timed out")
	}
}

// recordCapture adds res to the recent captures list. Failures are only logged.
func recordCapture(application *app.App, res *capture.Result, text string) {
	if err := service.NewRecentService(application.StateDir).Record(res, text); err != nil {
		logging.Warn("failed to record recent capture: %v", err)
	}
}

// targetHint is shown next to the capture screen title.
func targetHint(application *app.App) string {
	return "→ " + application.Layout.BaseDir
}

// checkVersionFlag checks if -v flag was passed and prints version if so
func checkVersionFlag() bool {
	if showVersion {
		printVersion()
		return true
	}
	return false
}
