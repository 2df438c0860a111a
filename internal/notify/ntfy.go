package notify

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/donghojung/qcap/internal/capture"
	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/logging"
)

// NtfyDefaultServer is the default ntfy server URL.
const NtfyDefaultServer = "https://ntfy.sh"

// reminderText is the plain-text reminder: the capture message, then the nudge.
func reminderText(res *capture.Result) string {
	if res == nil || res.Message == "" {
		return constants.MsgSyncReminder
	}
	return res.Message + "\n" + constants.MsgSyncReminder
}

// ntfyTags picks the emoji tag ntfy shows next to the title.
func ntfyTags(res *capture.Result) string {
	tag := "memo"
	if res != nil && res.Action == capture.ActionAppend {
		tag = "pushpin"
	}
	return tag + "," + constants.AppName
}

// SendNtfy posts the sync reminder for res to an ntfy topic.
// Returns nil if ntfy is not configured.
func SendNtfy(cfg *config.NtfyConfig, res *capture.Result) error {
	if cfg == nil || cfg.Topic == "" {
		return nil
	}

	logging.Debug("-> SendNtfy(topic=%q)", cfg.Topic)
	defer logging.Debug("<- SendNtfy")

	server := cfg.Server
	if server == "" {
		server = NtfyDefaultServer
	}
	url := strings.TrimSuffix(server, "/") + "/" + cfg.Topic

	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(reminderText(res)))
	if err != nil {
		return fmt.Errorf("failed to create ntfy request: %w", err)
	}
	req.Header.Set("Title", constants.MsgSyncReminderTitle)
	req.Header.Set("Tags", ntfyTags(res))

	client := &http.Client{Timeout: constants.NotifyTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send ntfy reminder: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ntfy server returned status %d", resp.StatusCode)
	}

	logging.Debug("SendNtfy: reminder sent to %s", url)
	return nil
}
