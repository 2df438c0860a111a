package notify

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/donghojung/qcap/internal/capture"
	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
)

func TestSendSyncReminder_NilConfig(t *testing.T) {
	if err := SendSyncReminder(nil, &capture.Result{Message: "File saved: x.md"}); err != nil {
		t.Errorf("SendSyncReminder(nil) = %v, want nil", err)
	}
}

func TestSendSyncReminder_NoChannels(t *testing.T) {
	if err := SendSyncReminder(&config.NotificationsConfig{}, &capture.Result{Message: "File saved: x.md"}); err != nil {
		t.Errorf("SendSyncReminder with no channels = %v, want nil", err)
	}
}

func TestSendSyncReminder_FansOut(t *testing.T) {
	var ntfyBody string
	var slackCalled bool

	ntfy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ntfyBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ntfy.Close()

	slack := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slackCalled = true
		w.WriteHeader(http.StatusOK)
	}))
	defer slack.Close()

	cfg := &config.NotificationsConfig{
		Ntfy:  &config.NtfyConfig{Topic: "vault", Server: ntfy.URL},
		Slack: &config.SlackConfig{Webhook: slack.URL},
	}

	if err := SendSyncReminder(cfg, &capture.Result{Action: capture.ActionAppend, Message: "Text appended to Scratchpad.md"}); err != nil {
		t.Fatalf("SendSyncReminder() error = %v", err)
	}

	if !strings.HasPrefix(ntfyBody, "Text appended to Scratchpad.md\n") {
		t.Errorf("ntfy body should start with the detail, got %q", ntfyBody)
	}
	if !strings.Contains(ntfyBody, constants.MsgSyncReminder) {
		t.Errorf("ntfy body should carry the reminder, got %q", ntfyBody)
	}
	if !slackCalled {
		t.Error("Slack webhook was not called")
	}
}

func TestSendSyncReminder_OneChannelFailingDoesNotStopOthers(t *testing.T) {
	ntfy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ntfy.Close()

	var slackCalled bool
	slack := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slackCalled = true
		w.WriteHeader(http.StatusOK)
	}))
	defer slack.Close()

	cfg := &config.NotificationsConfig{
		Ntfy:  &config.NtfyConfig{Topic: "vault", Server: ntfy.URL},
		Slack: &config.SlackConfig{Webhook: slack.URL},
	}

	err := SendSyncReminder(cfg, nil)
	if err == nil {
		t.Fatal("expected an error from the failing ntfy server")
	}
	if !strings.Contains(err.Error(), "ntfy") {
		t.Errorf("error should name ntfy, got %v", err)
	}
	if !slackCalled {
		t.Error("Slack should still be called after ntfy fails")
	}
}
