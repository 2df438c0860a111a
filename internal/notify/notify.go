// Package notify delivers the post-capture sync reminder.
package notify

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/donghojung/qcap/internal/capture"
	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/logging"
)

// Send shows a desktop notification when supported.
// Uses osascript on macOS and notify-send elsewhere; missing tools are not an error.
func Send(title, message string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		cmd := appleScriptCommand("-e", script)
		if err := cmd.Run(); err != nil {
			fallbackErr := exec.Command("osascript", "-e", script).Run()
			if fallbackErr == nil {
				return nil
			}
			return err
		}
		return nil
	case "linux", "freebsd", "openbsd", "netbsd":
		if _, err := exec.LookPath("notify-send"); err != nil {
			return nil
		}
		return exec.Command("notify-send", "--app-name="+constants.AppName, title, message).Run()
	default:
		return nil
	}
}

func appleScriptCommand(args ...string) *exec.Cmd {
	uid := os.Getuid()
	if uid > 0 {
		cmdArgs := append([]string{"asuser", fmt.Sprintf("%d", uid), "osascript"}, args...)
		return exec.Command("launchctl", cmdArgs...)
	}
	return exec.Command("osascript", args...)
}

// SendSyncReminder pushes the sync reminder for res to every configured
// channel. Failures are joined; one channel failing does not stop the others.
func SendSyncReminder(cfg *config.NotificationsConfig, res *capture.Result) error {
	if cfg == nil {
		return nil
	}

	logging.Debug("-> SendSyncReminder")
	defer logging.Debug("<- SendSyncReminder")

	var errs []error
	if cfg.Desktop {
		if err := Send(constants.MsgSyncReminderTitle, reminderText(res)); err != nil {
			errs = append(errs, fmt.Errorf("desktop: %w", err))
		}
	}
	if err := SendNtfy(cfg.Ntfy, res); err != nil {
		errs = append(errs, err)
	}
	if err := SendSlack(cfg.Slack, res); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
