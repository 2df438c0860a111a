package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/donghojung/qcap/internal/capture"
	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
)

func TestSlackReminder(t *testing.T) {
	tests := []struct {
		name       string
		res        *capture.Result
		wantTitle  string
		wantColor  string
		wantFooter string
	}{
		{
			name:       "nil result",
			wantTitle:  constants.MsgSyncReminderTitle,
			wantColor:  slackColorNewFile,
			wantFooter: "qcap",
		},
		{
			name: "new file",
			res: &capture.Result{
				Action:  capture.ActionNewFile,
				Path:    "/docs/Robsidian/2024-03-09 1405.md",
				Message: "File saved: 2024-03-09 1405.md",
			},
			wantTitle:  "File saved: 2024-03-09 1405.md",
			wantColor:  slackColorNewFile,
			wantFooter: "qcap · /docs/Robsidian/2024-03-09 1405.md",
		},
		{
			name: "append",
			res: &capture.Result{
				Action:  capture.ActionAppend,
				Message: "Text appended to Scratchpad.md",
			},
			wantTitle:  "Text appended to Scratchpad.md",
			wantColor:  slackColorAppend,
			wantFooter: "qcap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := slackReminder(tt.res)
			if msg.Text != constants.MsgSyncReminderTitle {
				t.Errorf("Text = %q", msg.Text)
			}
			if len(msg.Attachments) != 1 {
				t.Fatalf("attachments = %d, want 1", len(msg.Attachments))
			}
			att := msg.Attachments[0]
			if att.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", att.Title, tt.wantTitle)
			}
			if att.Text != constants.MsgSyncReminder {
				t.Errorf("attachment Text = %q", att.Text)
			}
			if att.Color != tt.wantColor {
				t.Errorf("Color = %q, want %q", att.Color, tt.wantColor)
			}
			if att.Footer != tt.wantFooter {
				t.Errorf("Footer = %q, want %q", att.Footer, tt.wantFooter)
			}
		})
	}
}

func TestSendSlack_NotConfigured(t *testing.T) {
	for _, cfg := range []*config.SlackConfig{nil, {}} {
		if err := SendSlack(cfg, &capture.Result{}); err != nil {
			t.Errorf("SendSlack(%+v) = %v, want nil", cfg, err)
		}
	}
}

func TestSendSlack_PostsReminder(t *testing.T) {
	var got slackMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	res := &capture.Result{Action: capture.ActionAppend, Message: "Text appended to Scratchpad.md"}
	if err := SendSlack(&config.SlackConfig{Webhook: server.URL}, res); err != nil {
		t.Fatalf("SendSlack() error = %v", err)
	}

	if len(got.Attachments) != 1 || got.Attachments[0].Title != res.Message {
		t.Errorf("payload = %+v", got)
	}
}

func TestSendSlack_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	if err := SendSlack(&config.SlackConfig{Webhook: server.URL}, nil); err == nil {
		t.Error("SendSlack should return an error on a 400")
	}
}
