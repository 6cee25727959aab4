package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"exportscan.dev/pkg/exportscan/internal/adapter"
	"exportscan.dev/pkg/exportscan/internal/catalog"
	"exportscan.dev/pkg/exportscan/internal/controller"
	m "exportscan.dev/pkg/exportscan/internal/model"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"
)

// defaultDiffContext is the number of unchanged lines shown around each hunk.
const defaultDiffContext = 3

// ErrNoSources is returned when a scan is requested without any source.
var ErrNoSources = errors.New("no sources given")

// ScanArgs contains the arguments shared by the scanning commands.
type ScanArgs struct {
	Sources []m.Path
	Options []Option
	Threads int
}

// DiffArgs contains the arguments for comparing two sources.
type DiffArgs struct {
	From    m.Path
	To      m.Path
	Options []Option
	Context int
}

// Workflow scans sources and hands the results to the UI.
type Workflow interface {
	List(ctx context.Context, args ScanArgs) error
	Callables(ctx context.Context, args ScanArgs) error
	Analyze(ctx context.Context, args ScanArgs) error
	Diff(ctx context.Context, args DiffArgs) error
	Watch(ctx context.Context, args ScanArgs) error
}

type workflow struct {
	adapter.DocumentAdapter
	adapter.SourceWatcher
	controller.UI
}

// NewWorkflow creates a Workflow reading documents through documentAdapter.
func NewWorkflow(
	documentAdapter adapter.DocumentAdapter,
	sourceWatcher adapter.SourceWatcher,
	ui controller.UI,
) Workflow {
	return &workflow{
		DocumentAdapter: documentAdapter,
		SourceWatcher:   sourceWatcher,
		UI:              ui,
	}
}

func (w *workflow) List(ctx context.Context, args ScanArgs) error {
	reports, err := scanSources(ctx, w, args, func(source m.Path, subject any) m.NamesReport {
		return m.NamesReport{Source: source, Names: ListNames(subject, args.Options...)}
	})
	if err != nil {
		return err
	}

	return w.DisplayNames(ctx, reports)
}

func (w *workflow) Callables(ctx context.Context, args ScanArgs) error {
	reports, err := scanSources(ctx, w, args, func(source m.Path, subject any) m.CallablesReport {
		exports := ExtractExports(subject, args.Options...)

		callables := make([]m.Callable, 0, len(exports))
		for _, export := range exports {
			callables = append(callables, m.Callable{
				Path:      export.Path,
				Verdict:   export.Verdict,
				Signature: export.Ref.Type().String(),
			})
		}

		return m.CallablesReport{Source: source, Callables: callables}
	})
	if err != nil {
		return err
	}

	return w.DisplayCallables(ctx, reports)
}

func (w *workflow) Analyze(ctx context.Context, args ScanArgs) error {
	reports, err := scanSources(ctx, w, args, func(source m.Path, subject any) m.AnalysisReport {
		return m.AnalysisReport{Source: source, Analysis: Analyze(subject, args.Options...)}
	})
	if err != nil {
		return err
	}

	return w.DisplayAnalysis(ctx, reports)
}

func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	scan := ScanArgs{Sources: []m.Path{args.From, args.To}, Options: args.Options, Threads: 2}

	surfaces, err := scanSources(ctx, w, scan, func(_ m.Path, subject any) []string {
		return ListNames(subject, append(slices.Clip(args.Options), WithNonFunctions(true))...)
	})
	if err != nil {
		return err
	}

	report, err := diffSurfaces(args, surfaces[0], surfaces[1])
	if err != nil {
		return fmt.Errorf("diff %s %s: %w", args.From, args.To, err)
	}

	return w.DisplayDiff(ctx, report)
}

// Watch lists the sources and lists them again whenever a document source
// changes, until ctx is done. Catalog sources are listed but never change.
func (w *workflow) Watch(ctx context.Context, args ScanArgs) error {
	if err := w.List(ctx, args); err != nil {
		return err
	}

	files := make([]m.Path, 0, len(args.Sources))
	for _, source := range args.Sources {
		if !strings.HasPrefix(string(source), catalog.Prefix) {
			files = append(files, source)
		}
	}

	return w.SourceWatcher.Watch(ctx, files, func(changed []m.Path) {
		slog.Debug("Rescanning after change", "changed", changed)

		if err := w.List(ctx, args); err != nil {
			slog.Error("Failed to rescan sources", "error", err)
		}
	})
}

// load resolves a catalog entry or decodes a document file.
func (w *workflow) load(ctx context.Context, source m.Path) (any, error) {
	subject, ok, err := catalog.Lookup(string(source))
	if ok {
		return subject, err
	}

	return adapter.LoadDocument(ctx, w.DocumentAdapter, source)
}

// scanSources loads every source and applies scan to it, running up to
// args.Threads scans at once. Results keep the order of args.Sources.
func scanSources[T any](ctx context.Context, w *workflow, args ScanArgs, scan func(m.Path, any) T) ([]T, error) {
	if len(args.Sources) == 0 {
		return nil, ErrNoSources
	}

	results := make([]T, len(args.Sources))

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Threads > 0 {
		group.SetLimit(args.Threads)
	}

	for i, source := range args.Sources {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			subject, err := w.load(groupCtx, source)
			if err != nil {
				slog.Error("Failed to load source", "source", source, "error", err)
				return fmt.Errorf("load %s: %w", source, err)
			}

			slog.Debug("Scanning source", "source", source)
			results[i] = scan(source, subject)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func diffSurfaces(args DiffArgs, from, to []string) (m.DiffReport, error) {
	report := m.DiffReport{
		From:    args.From,
		To:      args.To,
		Added:   missingFrom(from, to),
		Removed: missingFrom(to, from),
	}

	if !report.Changed() {
		return report, nil
	}

	contextLines := args.Context
	if contextLines <= 0 {
		contextLines = defaultDiffContext
	}

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        asLines(from),
		B:        asLines(to),
		FromFile: string(args.From),
		ToFile:   string(args.To),
		Context:  contextLines,
	})
	if err != nil {
		return m.DiffReport{}, err
	}

	report.Unified = unified

	return report, nil
}

// missingFrom returns the names of names that base does not contain.
func missingFrom(base, names []string) []string {
	index := make(map[string]struct{}, len(base))
	for _, name := range base {
		index[name] = struct{}{}
	}

	missing := make([]string, 0)

	for _, name := range names {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}

	return missing
}

func asLines(names []string) []string {
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, name+"\n")
	}

	return lines
}
