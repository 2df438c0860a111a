// Package capture writes captured text into the vault: new timestamped files and
// appends to the scratchpad.
package capture

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
	"github.com/donghojung/qcap/internal/logging"
	"github.com/donghojung/qcap/internal/vault"
)

// maxSuffix bounds the search for a free name under the "suffix" policy.
const maxSuffix = 999

// Clock is an interface for time operations, allowing for testing.
type Clock interface {
	Now() time.Time
}

// RealClock is the default clock implementation using local wall time.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Result describes a successful capture.
type Result struct {
	Action  Action
	Path    string // absolute path written
	Name    string // file name shown to the user
	Message string // confirmation text
}

// Service performs capture writes against a vault layout.
type Service struct {
	layout      vault.Layout
	clock       Clock
	lockDir     string
	lockTimeout time.Duration
}

// NewService creates a capture service. Scratchpad lock files go to lockDir.
func NewService(layout vault.Layout, lockDir string) *Service {
	return NewServiceWithClock(layout, lockDir, RealClock{})
}

// NewServiceWithClock creates a capture service with a custom clock.
func NewServiceWithClock(layout vault.Layout, lockDir string, clock Clock) *Service {
	return &Service{
		layout:      layout,
		clock:       clock,
		lockDir:     lockDir,
		lockTimeout: constants.ScratchpadLockTimeout,
	}
}

// IsBlank reports whether text is empty after trimming.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// CreateNewFile writes text verbatim as the entire content of <base>/<yyyy-MM-dd HHmm>.md.
func (s *Service) CreateNewFile(ctx context.Context, text string) (*Result, error) {
	if IsBlank(text) {
		return nil, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timer := logging.StartTimer("create new file")

	if err := ensureDir(s.layout.BaseDir, s.layout.BaseName()); err != nil {
		timer.StopWithResult(false, err.Error())
		return nil, err
	}

	now := s.clock.Now()
	path, err := s.writeNewFile(now, text)
	if err != nil {
		timer.StopWithResult(false, err.Error())
		return nil, err
	}

	name := filepath.Base(path)
	timer.StopWithResult(true, name)
	logging.Info("created %s (%d bytes)", path, len(text))

	return &Result{
		Action:  ActionNewFile,
		Path:    path,
		Name:    name,
		Message: "File saved: " + name,
	}, nil
}

// writeNewFile applies the layout's collision policy and returns the path written.
func (s *Service) writeNewFile(now time.Time, text string) (string, error) {
	switch s.layout.OnCollision {
	case config.OnCollisionFail:
		path := s.layout.FilePath(constants.NewFileName(now))
		if err := writeExclusive(path, text); err != nil {
			if errors.Is(err, os.ErrExist) {
				return "", fmt.Errorf("%w: %s", ErrFileExists, filepath.Base(path))
			}
			return "", err
		}
		return path, nil

	case config.OnCollisionSuffix:
		for n := 1; n <= maxSuffix; n++ {
			path := s.layout.FilePath(constants.SuffixedFileName(now, n))
			err := writeExclusive(path, text)
			if err == nil {
				if n > 1 {
					logging.Debug("name collision, used suffix %d", n)
				}
				return path, nil
			}
			if !errors.Is(err, os.ErrExist) {
				return "", err
			}
		}
		return "", fmt.Errorf("%w: no free name after %d attempts", ErrFileExists, maxSuffix)

	default:
		path := s.layout.FilePath(constants.NewFileName(now))
		if _, err := os.Stat(path); err == nil {
			logging.Warn("overwriting existing capture %s", filepath.Base(path))
		}
		if err := os.WriteFile(path, []byte(text), constants.FilePerm); err != nil { //nolint:gosec // G306: notes are meant to be readable by the sync app
			return "", fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
		}
		return path, nil
	}
}

// AppendToScratchpad appends text to the scratchpad, separated from existing
// content by a blank line. The file and its directory are created if absent.
func (s *Service) AppendToScratchpad(ctx context.Context, text string) (*Result, error) {
	if IsBlank(text) {
		return nil, ErrEmptyInput
	}

	timer := logging.StartTimer("append to scratchpad")

	if err := ensureDir(s.layout.ScratchpadDir(), s.layout.ScratchpadDirName()); err != nil {
		timer.StopWithResult(false, err.Error())
		return nil, err
	}

	unlock := s.lockScratchpad(ctx)
	defer unlock()

	if err := ctx.Err(); err != nil {
		timer.StopWithResult(false, err.Error())
		return nil, err
	}

	if err := appendEntry(s.layout.ScratchpadFile, text); err != nil {
		timer.StopWithResult(false, err.Error())
		return nil, err
	}

	name := s.layout.ScratchpadName()
	timer.StopWithResult(true, name)
	logging.Info("appended %d bytes to %s", len(text), s.layout.ScratchpadFile)

	return &Result{
		Action:  ActionAppend,
		Path:    s.layout.ScratchpadFile,
		Name:    name,
		Message: "Text appended to " + name,
	}, nil
}

// lockScratchpad takes an advisory lock shared by qcap processes.
// On timeout it proceeds without the lock.
func (s *Service) lockScratchpad(ctx context.Context) func() {
	if s.lockDir == "" {
		return func() {}
	}
	if err := os.MkdirAll(s.lockDir, constants.DirPerm); err != nil { //nolint:gosec // G301: standard directory permissions
		logging.Warn("scratchpad lock dir unavailable, proceeding without lock: %v", err)
		return func() {}
	}

	fileLock := flock.New(s.lockPath())

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, constants.ScratchpadLockRetry)
	if err != nil || !locked {
		logging.Warn("scratchpad lock timeout, proceeding without lock: %v", err)
		return func() {}
	}

	return func() {
		_ = fileLock.Unlock()
	}
}

// lockPath keeps lock files out of the synced vault.
func (s *Service) lockPath() string {
	sum := sha1.Sum([]byte(s.layout.ScratchpadFile)) //nolint:gosec // G401: naming only
	return filepath.Join(s.lockDir, "scratchpad-"+hex.EncodeToString(sum[:])[:12]+constants.LockFileSuffix)
}

// ensureDir creates dir (recursively) if it does not exist.
func ensureDir(dir, name string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return &DirError{Dir: dir, Name: name, Err: fmt.Errorf("%s is not a directory", dir)}
	}

	if err := os.MkdirAll(dir, constants.DirPerm); err != nil { //nolint:gosec // G301: standard directory permissions
		return &DirError{Dir: dir, Name: name, Err: err}
	}
	logging.Debug("created directory %s", dir)
	return nil
}

// writeExclusive creates path and writes text, failing with os.ErrExist if it exists.
func writeExclusive(path, text string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.FilePerm) //nolint:gosec // G304: path is built from the vault layout
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// appendEntry appends text to path, preceded by the separator if the file has content.
func appendEntry(path, text string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, constants.FilePerm) //nolint:gosec // G304: path is built from the vault layout
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}

	entry := text
	if info.Size() > 0 {
		entry = constants.ScratchpadSeparator + text
	}

	if _, err := f.WriteString(entry); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
