// Package controller provides output adapters for displaying scan results.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	m "exportscan.dev/pkg/exportscan/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Output formats accepted by NewUI.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for an output format NewUI does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// UI defines how scan results reach the user.
// Implementations can use different output methods (simple text, TUI, encoded documents).
type UI interface {
	DisplayNames(ctx context.Context, reports []m.NamesReport) error
	DisplayCallables(ctx context.Context, reports []m.CallablesReport) error
	DisplayAnalysis(ctx context.Context, reports []m.AnalysisReport) error
	DisplayDiff(ctx context.Context, report m.DiffReport) error
}

// NewUI selects the UI for format. Text output is paged through the TUI
// when writing to a terminal.
func NewUI(cmd *cobra.Command, isTTY bool, format string) (UI, error) {
	switch format {
	case "", FormatText:
		if isTTY {
			return NewTUI(cmd.OutOrStdout()), nil
		}

		return NewSimpleUI(cmd), nil
	case FormatJSON, FormatYAML:
		return NewEncodedUI(cmd.OutOrStdout(), format), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
