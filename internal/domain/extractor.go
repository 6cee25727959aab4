package domain

import (
	m "exportscan.dev/pkg/exportscan/internal/model"
)

// ExtractExports returns the callables reachable from subject in discovery
// order, one record per path. Classes are dropped when WithClasses(false) is
// given; members found beneath them are kept.
func ExtractExports(subject any, opts ...Option) []m.Export {
	s := resolve(opts)
	s.config.IncludeNonFunctions = false

	exports := make([]m.Export, 0)
	seen := make(map[string]struct{})

	newWalker(s, func(export m.Export) {
		if !export.Callable() {
			return
		}

		if export.Verdict == m.VerdictClass && !s.config.IncludeClasses {
			return
		}

		if !export.Ref.CanInterface() {
			return
		}

		if _, dup := seen[export.Path]; dup {
			return
		}

		seen[export.Path] = struct{}{}
		exports = append(exports, export)
	}).walk(subject)

	return exports
}

// ExtractCallables maps each discovered path to the live callable found there.
func ExtractCallables(subject any, opts ...Option) map[string]any {
	exports := ExtractExports(subject, opts...)

	callables := make(map[string]any, len(exports))
	for _, export := range exports {
		callables[export.Path] = export.Ref.Interface()
	}

	return callables
}
