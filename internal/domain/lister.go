// Package domain provides the listing and extraction operations over a scanned subject.
package domain

import (
	m "exportscan.dev/pkg/exportscan/internal/model"
)

// ListNames returns the unique dotted paths of the exports reachable from
// subject, in discovery order. Non-function exports are listed as
// "path (kind)" when WithNonFunctions is enabled.
func ListNames(subject any, opts ...Option) []string {
	s := resolve(opts)
	names := make([]string, 0)
	seen := make(map[string]struct{})

	newWalker(s, func(export m.Export) {
		name := export.Name()
		if _, dup := seen[name]; dup {
			return
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}).walk(subject)

	return names
}
