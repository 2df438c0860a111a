package notify

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/donghojung/qcap/internal/capture"
	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
)

func TestReminderText(t *testing.T) {
	tests := []struct {
		name string
		res  *capture.Result
		want string
	}{
		{"nil result", nil, constants.MsgSyncReminder},
		{"no message", &capture.Result{Action: capture.ActionNewFile}, constants.MsgSyncReminder},
		{"new file", &capture.Result{Message: "File saved: 2024-03-09 1405.md"}, "File saved: 2024-03-09 1405.md\n" + constants.MsgSyncReminder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reminderText(tt.res); got != tt.want {
				t.Errorf("reminderText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSendNtfy_NotConfigured(t *testing.T) {
	for _, cfg := range []*config.NtfyConfig{nil, {Topic: ""}} {
		if err := SendNtfy(cfg, &capture.Result{}); err != nil {
			t.Errorf("SendNtfy(%+v) = %v, want nil", cfg, err)
		}
	}
}

func TestSendNtfy_Reminder(t *testing.T) {
	tests := []struct {
		name     string
		res      *capture.Result
		wantTags string
		wantBody string
	}{
		{
			name:     "new file",
			res:      &capture.Result{Action: capture.ActionNewFile, Message: "File saved: 2024-03-09 1405.md"},
			wantTags: "memo,qcap",
			wantBody: "File saved: 2024-03-09 1405.md\n" + constants.MsgSyncReminder,
		},
		{
			name:     "append",
			res:      &capture.Result{Action: capture.ActionAppend, Message: "Text appended to Scratchpad.md"},
			wantTags: "pushpin,qcap",
			wantBody: "Text appended to Scratchpad.md\n" + constants.MsgSyncReminder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var title, tags, path, body string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				title = r.Header.Get("Title")
				tags = r.Header.Get("Tags")
				path = r.URL.Path
				data, _ := io.ReadAll(r.Body)
				body = string(data)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := &config.NtfyConfig{Topic: "vault", Server: server.URL + "/"}
			if err := SendNtfy(cfg, tt.res); err != nil {
				t.Fatalf("SendNtfy() error = %v", err)
			}

			if title != constants.MsgSyncReminderTitle {
				t.Errorf("Title = %q, want %q", title, constants.MsgSyncReminderTitle)
			}
			if tags != tt.wantTags {
				t.Errorf("Tags = %q, want %q", tags, tt.wantTags)
			}
			if path != "/vault" {
				t.Errorf("path = %q, want /vault", path)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestSendNtfy_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &config.NtfyConfig{Topic: "vault", Server: server.URL}
	if err := SendNtfy(cfg, nil); err == nil {
		t.Error("SendNtfy should return an error on a 500")
	}
}
