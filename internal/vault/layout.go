// Package vault resolves where captures land inside the synced markdown vault.
package vault

import (
	"path/filepath"

	"github.com/donghojung/qcap/internal/config"
)

// Layout is the single source of capture paths, built once from the preferences.
type Layout struct {
	DocumentsRoot  string // Public documents directory (XDG user documents)
	BaseDir        string // <root>/<documents_path>, holds timestamped captures
	ScratchpadFile string // <base>/<scratchpad_path>
	OnCollision    config.OnCollision
}

// NewLayout resolves the capture paths for prefs under documentsRoot.
// Absolute preference values are used as-is.
func NewLayout(documentsRoot string, prefs *config.Preferences) Layout {
	if prefs == nil {
		prefs = config.DefaultPreferences()
	}

	base := prefs.DocumentsPath
	if !filepath.IsAbs(base) {
		base = filepath.Join(documentsRoot, base)
	}

	scratchpad := prefs.ScratchpadPath
	if !filepath.IsAbs(scratchpad) {
		scratchpad = filepath.Join(base, scratchpad)
	}

	onCollision := prefs.OnCollision
	if onCollision == "" {
		onCollision = config.OnCollisionOverwrite
	}

	return Layout{
		DocumentsRoot:  documentsRoot,
		BaseDir:        filepath.Clean(base),
		ScratchpadFile: filepath.Clean(scratchpad),
		OnCollision:    onCollision,
	}
}

// FilePath returns the absolute path of a capture file named name.
func (l Layout) FilePath(name string) string {
	return filepath.Join(l.BaseDir, name)
}

// BaseName is the display name of the capture directory ("Robsidian").
func (l Layout) BaseName() string {
	return filepath.Base(l.BaseDir)
}

// ScratchpadDir is the directory holding the scratchpad ("Transient").
func (l Layout) ScratchpadDir() string {
	return filepath.Dir(l.ScratchpadFile)
}

// ScratchpadDirName is the display name of ScratchpadDir.
func (l Layout) ScratchpadDirName() string {
	return filepath.Base(l.ScratchpadDir())
}

// ScratchpadName is the display name of the scratchpad file ("Scratchpad.md").
func (l Layout) ScratchpadName() string {
	return filepath.Base(l.ScratchpadFile)
}
