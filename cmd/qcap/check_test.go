package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckDir(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		dir     string
		wantOK  bool
		wantMsg string
	}{
		{"existing", root, true, root},
		{"missing under writable parent", filepath.Join(root, "a", "b"), true, "created on first capture"},
		{"path is a file", file, false, "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := checkDir("notes folder", tt.dir, true)
			if r.ok != tt.wantOK {
				t.Errorf("ok = %v, want %v (%s)", r.ok, tt.wantOK, r.message)
			}
			if !strings.Contains(r.message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", r.message, tt.wantMsg)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(root, "a")); !os.IsNotExist(err) {
		t.Error("checkDir must not create directories")
	}
}

func TestCheckScratchpad(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "Scratchpad.md")
	if err := os.WriteFile(existing, []byte("Buy milk"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantOK  bool
		wantMsg string
	}{
		{"existing", existing, true, "(8 bytes)"},
		{"missing", filepath.Join(root, "Transient", "Scratchpad.md"), true, "created on first append"},
		{"directory", root, false, "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := checkScratchpad(tt.path)
			if r.ok != tt.wantOK {
				t.Errorf("ok = %v, want %v (%s)", r.ok, tt.wantOK, r.message)
			}
			if !strings.Contains(r.message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", r.message, tt.wantMsg)
			}
		})
	}
}

func TestNearestExisting(t *testing.T) {
	root := t.TempDir()
	if got := nearestExisting(filepath.Join(root, "x", "y", "z")); got != root {
		t.Errorf("nearestExisting() = %q, want %q", got, root)
	}
}

func TestProbeWritableLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	if err := probeWritable(dir); err != nil {
		t.Fatalf("probeWritable() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("probe left %d entries behind", len(entries))
	}
}

func TestPrintResult(t *testing.T) {
	tests := []struct {
		r    checkResult
		want string
	}{
		{checkResult{name: "notes folder", ok: true, message: "/v"}, "✅ notes folder: /v\n"},
		{checkResult{name: "scratchpad", required: true, message: "bad"}, "❌ scratchpad: bad\n"},
		{checkResult{name: "desktop notifications", message: "notify-send not found"}, "⚠️  desktop notifications: notify-send not found (optional)\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		printResult(&buf, tt.r)
		if buf.String() != tt.want {
			t.Errorf("printResult() = %q, want %q", buf.String(), tt.want)
		}
	}
}
