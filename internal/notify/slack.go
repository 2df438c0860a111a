package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/donghojung/qcap/internal/capture"
	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/logging"
)

// Attachment bar colors, one per capture action.
const (
	slackColorNewFile = "#2eb67d"
	slackColorAppend  = "#7c3aed"
)

type slackMessage struct {
	Text        string            `json:"text,omitempty"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

type slackAttachment struct {
	Color  string `json:"color,omitempty"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// slackReminder builds the webhook payload. The top-level text is what
// Slack shows in the push notification; the attachment names the capture.
func slackReminder(res *capture.Result) slackMessage {
	att := slackAttachment{
		Color:  slackColorNewFile,
		Title:  constants.MsgSyncReminderTitle,
		Footer: constants.AppName,
	}
	if res != nil {
		if res.Message != "" {
			att.Title = res.Message
		}
		if res.Action == capture.ActionAppend {
			att.Color = slackColorAppend
		}
		if res.Path != "" {
			att.Footer = constants.AppName + " · " + res.Path
		}
	}
	att.Text = constants.MsgSyncReminder

	return slackMessage{
		Text:        constants.MsgSyncReminderTitle,
		Attachments: []slackAttachment{att},
	}
}

// SendSlack posts the sync reminder for res to a Slack webhook.
// Returns nil if Slack is not configured.
func SendSlack(cfg *config.SlackConfig, res *capture.Result) error {
	if cfg == nil || cfg.Webhook == "" {
		return nil
	}

	logging.Debug("-> SendSlack")
	defer logging.Debug("<- SendSlack")

	body, err := json.Marshal(slackReminder(res))
	if err != nil {
		return fmt.Errorf("failed to marshal Slack message: %w", err)
	}

	client := &http.Client{Timeout: constants.NotifyTimeout}
	resp, err := client.Post(cfg.Webhook, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send Slack webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	logging.Debug("SendSlack: reminder sent")
	return nil
}
