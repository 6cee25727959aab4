package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	m "exportscan.dev/pkg/exportscan/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI with plain tables written to the command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayNames prints one table of names per source.
func (s *SimpleUI) DisplayNames(ctx context.Context, reports []m.NamesReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderNames(reports))

	return nil
}

// DisplayCallables prints path, kind and signature of each callable.
func (s *SimpleUI) DisplayCallables(ctx context.Context, reports []m.CallablesReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderCallables(reports))

	return nil
}

// DisplayAnalysis prints the summary of each source followed by its exports.
func (s *SimpleUI) DisplayAnalysis(ctx context.Context, reports []m.AnalysisReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderAnalysis(reports))

	return nil
}

// DisplayDiff prints the unified diff, or a note when nothing changed.
func (s *SimpleUI) DisplayDiff(ctx context.Context, report m.DiffReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderDiff(report))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderNames(reports []m.NamesReport) string {
	var b strings.Builder

	for _, report := range reports {
		var tableBuffer bytes.Buffer

		table := newTable(&tableBuffer, []string{"#", "Export"})
		for i, name := range report.Names {
			table.Append([]string{strconv.Itoa(i + 1), name})
		}

		table.SetFooter([]string{"Total", strconv.Itoa(len(report.Names))})
		table.Render()

		fmt.Fprintf(&b, "\n%s\n%s", report.Source, tableBuffer.String())
	}

	return b.String()
}

func renderCallables(reports []m.CallablesReport) string {
	var b strings.Builder

	for _, report := range reports {
		var tableBuffer bytes.Buffer

		table := newTable(&tableBuffer, []string{"Path", "Kind", "Signature"})
		for _, callable := range report.Callables {
			table.Append([]string{callable.Path, string(callable.Verdict), callable.Signature})
		}

		table.SetFooter([]string{"Total", strconv.Itoa(len(report.Callables)), ""})
		table.Render()

		fmt.Fprintf(&b, "\n%s\n%s", report.Source, tableBuffer.String())
	}

	return b.String()
}

func renderAnalysis(reports []m.AnalysisReport) string {
	var b strings.Builder

	for _, report := range reports {
		summary := report.Analysis.Summary

		var tableBuffer bytes.Buffer

		table := newTable(&tableBuffer, []string{"Property", "Value"})
		table.AppendBulk([][]string{
			{"functions", strconv.Itoa(summary.FunctionCount)},
			{"total exports", strconv.Itoa(summary.TotalExports)},
			{"has default", strconv.FormatBool(summary.HasDefault)},
			{"is function", strconv.FormatBool(summary.IsCallable)},
			{"is object", strconv.FormatBool(summary.IsObject)},
		})
		table.Render()

		fmt.Fprintf(&b, "\n%s\n%s", report.Source, tableBuffer.String())

		for _, name := range report.Analysis.AllExports {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}

	return b.String()
}

func renderDiff(report m.DiffReport) string {
	if !report.Changed() {
		return fmt.Sprintf("no export changes between %s and %s\n", report.From, report.To)
	}

	return fmt.Sprintf("%s\n%d added, %d removed\n", report.Unified, len(report.Added), len(report.Removed))
}

func newTable(buffer *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}
