package capture

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/donghojung/qcap/internal/constants"
)

var (
	// ErrEmptyInput is returned for empty or whitespace-only input. Nothing is written.
	ErrEmptyInput = errors.New("capture input is empty")

	// ErrFileExists is returned by CreateNewFile under the "fail" collision policy.
	ErrFileExists = errors.New("capture file already exists")
)

// Action identifies a capture operation.
type Action int

// Capture actions.
const (
	ActionNewFile Action = iota
	ActionAppend
)

func (a Action) String() string {
	switch a {
	case ActionNewFile:
		return "new file"
	case ActionAppend:
		return "append"
	default:
		return "unknown"
	}
}

// DirError reports a failure to create a capture directory.
// It aborts the action; the input stays available for a retry.
type DirError struct {
	Dir  string // absolute path that could not be created
	Name string // display name ("Robsidian", "Transient")
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("failed to create %s directory %s: %v", e.Name, e.Dir, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}

// UserMessage converts a capture error into the message shown to the user.
func UserMessage(action Action, err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrEmptyInput) {
		return constants.MsgEmptyInput
	}

	var dirErr *DirError
	if errors.As(err, &dirErr) {
		return fmt.Sprintf("Failed to create %s directory", dirErr.Name)
	}

	detail := detailOf(err)
	if action == ActionAppend {
		return "Failed to append to scratchpad: " + detail
	}
	return "Failed to create file: " + detail
}

// detailOf prefers the OS path error text, which names the file and the cause.
func detailOf(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Error()
	}
	return err.Error()
}
