package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	m "exportscan.dev/pkg/exportscan/internal/model"
	"gopkg.in/yaml.v3"
)

// EncodedUI writes results as JSON or YAML documents for other tools to consume.
type EncodedUI struct {
	output io.Writer
	format string
}

// NewEncodedUI creates an EncodedUI using format (FormatJSON or FormatYAML).
func NewEncodedUI(output io.Writer, format string) *EncodedUI {
	return &EncodedUI{output: output, format: format}
}

// DisplayNames encodes the name reports.
func (e *EncodedUI) DisplayNames(ctx context.Context, reports []m.NamesReport) error {
	return e.encode(ctx, reports)
}

// DisplayCallables encodes the callable reports.
func (e *EncodedUI) DisplayCallables(ctx context.Context, reports []m.CallablesReport) error {
	return e.encode(ctx, reports)
}

// DisplayAnalysis encodes the analysis reports.
func (e *EncodedUI) DisplayAnalysis(ctx context.Context, reports []m.AnalysisReport) error {
	return e.encode(ctx, reports)
}

// DisplayDiff encodes the diff report.
func (e *EncodedUI) DisplayDiff(ctx context.Context, report m.DiffReport) error {
	return e.encode(ctx, report)
}

func (e *EncodedUI) encode(ctx context.Context, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch e.format {
	case FormatJSON:
		encoder := json.NewEncoder(e.output)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(e.output)
		encoder.SetIndent(2)

		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		if err := encoder.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, e.format)
	}

	return nil
}
