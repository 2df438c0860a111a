// Package constants defines shared constants used throughout qcap.
package constants

import (
	"fmt"
	"time"
)

// AppName is used for XDG directories, notification tags and the log context.
const AppName = "qcap"

// Default preference values
const (
	DefaultDocumentsPath  = "Robsidian"
	DefaultScratchpadPath = "Transient/Scratchpad.md"
)

// Preference set and file names
const (
	PrefsName           = "ObsQuickCapPrefs"
	PrefsFileName       = "preferences.yaml"
	LogFileName         = "qcap.log"
	LockFileSuffix      = ".lock"
	MarkdownExt         = ".md"
	DocumentsRootEnvVar = "QCAP_DOCUMENTS_DIR"
	DebugEnvVar         = "QCAP_DEBUG"
)

// TimestampLayout names new capture files (yyyy-MM-dd HHmm, 24-hour).
const TimestampLayout = "2006-01-02 1504"

// ScratchpadSeparator goes between existing scratchpad content and a new entry.
const ScratchpadSeparator = "\n\n"

// Timing
const (
	SyncReminderDelay     = 1 * time.Second
	ScratchpadLockTimeout = 5 * time.Second
	ScratchpadLockRetry   = 100 * time.Millisecond
	NotifyTimeout         = 10 * time.Second
)

// File modes
const (
	DirPerm  = 0o755
	FilePerm = 0o644
)

// User-facing messages
const (
	MsgEmptyInput        = "Please enter some text first"
	MsgEmptyDocuments    = "Documents path cannot be empty"
	MsgEmptyScratchpad   = "Scratchpad path cannot be empty"
	MsgSettingsSaved     = "Settings saved successfully"
	MsgSyncReminder      = "Remember to sync your vault so the note shows up in Obsidian"
	MsgSyncReminderTitle = "qcap: sync reminder"
)

// NewFileName returns the capture file name for t.
func NewFileName(t time.Time) string {
	return t.Format(TimestampLayout) + MarkdownExt
}

// SuffixedFileName returns the n-th alternative for a colliding capture file name.
// n < 2 returns the plain name.
func SuffixedFileName(t time.Time, n int) string {
	if n < 2 {
		return NewFileName(t)
	}
	return fmt.Sprintf("%s %d%s", t.Format(TimestampLayout), n, MarkdownExt)
}
