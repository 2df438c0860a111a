package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/donghojung/qcap/internal/capture"
)

func newTestRecentService(t *testing.T) *RecentService {
	t.Helper()
	svc := NewRecentService(t.TempDir())
	base := time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return svc
}

func TestRecentService_RecordAndLoad(t *testing.T) {
	svc := newTestRecentService(t)

	first := &capture.Result{Action: capture.ActionNewFile, Path: "/v/Robsidian/2024-03-09 1405.md"}
	second := &capture.Result{Action: capture.ActionAppend, Path: "/v/Robsidian/Transient/Scratchpad.md"}

	if err := svc.Record(first, "Buy milk"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := svc.Record(second, "Call Bob"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := svc.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	// Most recent should be first
	if entries[0].Preview != "Call Bob" || entries[0].Action != capture.ActionAppend.String() {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Path != first.Path {
		t.Errorf("entries[1].Path = %q, want %q", entries[1].Path, first.Path)
	}
}

func TestRecentService_NilResult(t *testing.T) {
	svc := newTestRecentService(t)
	if err := svc.Record(nil, "x"); err != nil {
		t.Fatalf("Record(nil) error = %v", err)
	}
	if _, err := os.Stat(svc.path()); !os.IsNotExist(err) {
		t.Error("Record(nil) must not create the file")
	}
}

func TestRecentService_MaxEntries(t *testing.T) {
	svc := newTestRecentService(t)

	for i := 0; i < MaxRecentEntries+10; i++ {
		res := &capture.Result{Action: capture.ActionAppend, Path: "/v/s.md"}
		if err := svc.Record(res, "entry"); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := svc.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != MaxRecentEntries {
		t.Errorf("Expected %d entries, got %d", MaxRecentEntries, len(entries))
	}
}

func TestRecentService_EmptyFile(t *testing.T) {
	svc := newTestRecentService(t)

	entries, err := svc.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(entries))
	}
}

func TestRecentService_CorruptFile(t *testing.T) {
	svc := newTestRecentService(t)
	if err := os.WriteFile(svc.path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := svc.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(entries))
	}
	if _, err := os.Stat(svc.path() + ".corrupt"); err != nil {
		t.Errorf("expected corrupt file to be moved aside: %v", err)
	}

	// Recording still works afterwards.
	if err := svc.Record(&capture.Result{Action: capture.ActionNewFile, Path: "/v/a.md"}, "a"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	entries, _ = svc.Load()
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry after recovery, got %d", len(entries))
	}
}

func TestRecentService_NoTempFileLeft(t *testing.T) {
	svc := newTestRecentService(t)
	if err := svc.Record(&capture.Result{Action: capture.ActionNewFile, Path: "/v/a.md"}, "a"); err != nil {
		t.Fatal(err)
	}
	matches, _ := filepath.Glob(filepath.Join(svc.stateDir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("x", 80)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single line", "Buy milk", "Buy milk"},
		{"first non-blank line", "\n\n  Title  \nbody", "Title"},
		{"blank", "  \n\t", ""},
		{"long line", long, strings.Repeat("x", 59) + "…"},
		{"multibyte", strings.Repeat("é", 61), strings.Repeat("é", 59) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.in); got != tt.want {
				t.Errorf("Preview(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
