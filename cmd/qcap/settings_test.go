package main

import (
	"errors"
	"testing"

	"github.com/donghojung/qcap/internal/config"
	"github.com/donghojung/qcap/internal/constants"
)

func TestSettingsError(t *testing.T) {
	other := errors.New("disk full")

	tests := []struct {
		in   error
		want string
	}{
		{config.ErrEmptyDocumentsPath, constants.MsgEmptyDocuments},
		{config.ErrEmptyScratchpadPath, constants.MsgEmptyScratchpad},
		{other, "disk full"},
	}

	for _, tt := range tests {
		if got := settingsError(tt.in).Error(); got != tt.want {
			t.Errorf("settingsError(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
