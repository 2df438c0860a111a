// Package service provides the services qcap runs around a capture.
package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/donghojung/qcap/internal/capture"
	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/logging"
)

const (
	// RecentFile is the name of the recent captures file in the state dir.
	RecentFile = "recent.json"
	// MaxRecentEntries is the maximum number of entries to keep.
	MaxRecentEntries = 50
	// previewLen is the rune length of the stored first-line preview.
	previewLen = 60
)

// RecentEntry represents one successful capture.
type RecentEntry struct {
	Action    string    `json:"action"`
	Path      string    `json:"path"`
	Preview   string    `json:"preview"`
	Timestamp time.Time `json:"timestamp"`
}

// RecentService records where recent captures went.
type RecentService struct {
	stateDir string
	now      func() time.Time
}

// NewRecentService creates a new recent captures service.
func NewRecentService(stateDir string) *RecentService {
	return &RecentService{
		stateDir: stateDir,
		now:      time.Now,
	}
}

func (s *RecentService) path() string {
	return filepath.Join(s.stateDir, RecentFile)
}

// Record adds a capture result to the front of the list.
func (s *RecentService) Record(res *capture.Result, text string) error {
	if res == nil {
		return nil
	}

	entries, err := s.Load()
	if err != nil {
		// If the list can't be loaded, start fresh.
		entries = nil
	}

	entry := RecentEntry{
		Action:    res.Action.String(),
		Path:      res.Path,
		Preview:   Preview(text),
		Timestamp: s.now(),
	}
	entries = append([]RecentEntry{entry}, entries...)

	if len(entries) > MaxRecentEntries {
		entries = entries[:MaxRecentEntries]
	}

	return s.save(entries)
}

// Load returns the recorded captures, most recent first.
// A corrupt file is moved aside and reads as empty.
func (s *RecentService) Load() ([]RecentEntry, error) {
	path := s.path()

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is built from the state dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []RecentEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		backup := path + ".corrupt"
		logging.Warn("recent captures file is corrupt, moving to %s: %v", backup, err)
		_ = os.Rename(path, backup)
		return nil, nil //nolint:nilerr // Intentional: return empty list on corrupt file
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries, nil
}

func (s *RecentService) save(entries []RecentEntry) error {
	if err := os.MkdirAll(s.stateDir, constants.DirPerm); err != nil { //nolint:gosec // G301: standard directory permissions
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, constants.FilePerm); err != nil { //nolint:gosec // G306: state file needs to be readable
		return err
	}
	return os.Rename(tmp, s.path())
}

// Preview returns the first non-blank line of text, shortened to previewLen runes.
func Preview(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > previewLen {
			runes := []rune(line)
			return string(runes[:previewLen-1]) + "…"
		}
		return line
	}
	return ""
}
