package capture

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestUserMessage(t *testing.T) {
	pathErr := &fs.PathError{Op: "open", Path: "/docs/Robsidian/x.md", Err: fs.ErrPermission}

	tests := []struct {
		name   string
		action Action
		err    error
		want   string
	}{
		{"nil", ActionNewFile, nil, ""},
		{"empty input", ActionNewFile, ErrEmptyInput, "Please enter some text first"},
		{"empty input append", ActionAppend, ErrEmptyInput, "Please enter some text first"},
		{
			"dir error",
			ActionNewFile,
			&DirError{Dir: "/docs/Robsidian", Name: "Robsidian", Err: fs.ErrPermission},
			"Failed to create Robsidian directory",
		},
		{
			"wrapped path error on create",
			ActionNewFile,
			fmt.Errorf("failed to write x.md: %w", pathErr),
			"Failed to create file: open /docs/Robsidian/x.md: permission denied",
		},
		{
			"path error on append",
			ActionAppend,
			pathErr,
			"Failed to append to scratchpad: open /docs/Robsidian/x.md: permission denied",
		},
		{
			"plain error",
			ActionAppend,
			errors.New("disk full"),
			"Failed to append to scratchpad: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.action, tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDirErrorUnwrap(t *testing.T) {
	err := &DirError{Dir: "/x", Name: "x", Err: fs.ErrPermission}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("DirError should unwrap to its cause")
	}
}

func TestActionString(t *testing.T) {
	if ActionNewFile.String() != "new file" || ActionAppend.String() != "append" || Action(9).String() != "unknown" {
		t.Error("unexpected Action.String() values")
	}
}
