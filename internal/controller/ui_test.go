package controller

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUI(t *testing.T) {
	tests := []struct {
		name    string
		isTTY   bool
		format  string
		want    any
		wantErr bool
	}{
		{name: "default pipe", format: "", want: &SimpleUI{}},
		{name: "text pipe", format: FormatText, want: &SimpleUI{}},
		{name: "text tty", isTTY: true, format: FormatText, want: &TUI{}},
		{name: "json", isTTY: true, format: FormatJSON, want: &EncodedUI{}},
		{name: "yaml", format: FormatYAML, want: &EncodedUI{}},
		{name: "unknown", format: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, err := NewUI(&cobra.Command{}, tt.isTTY, tt.format)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.want, ui)
		})
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
