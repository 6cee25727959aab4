// Package exportscan enumerates the callable surface of an in-memory Go value
// graph.
//
// Maps, structs, slices, pointers and Object implementations are walked as
// nodes; funcs are callables. A constructor, either tagged through
// Constructor or following the NewT convention for a struct T with methods,
// is reported as a class and its method set is merged the way a prototype
// would be:
//
//	names := exportscan.ListNames(module, exportscan.WithMaxDepth(4))
//	fns := exportscan.ExtractCallables(module, exportscan.WithClasses(false))
//	report := exportscan.Analyze(module)
//
// Every call owns its traversal state, so concurrent scans of the same
// subject do not interfere. Scans never mutate the subject and never panic.
package exportscan

import (
	"exportscan.dev/pkg/exportscan/internal/domain"
	m "exportscan.dev/pkg/exportscan/internal/model"
)

type (
	// Option configures a single scan call.
	Option = domain.Option
	// Prober answers reflective questions about functions and types.
	Prober = domain.Prober
	// RuntimeProber is the default Prober backed by runtime symbol information.
	RuntimeProber = domain.RuntimeProber
	// Object is a dynamically shaped node listing and reading its own members.
	Object = m.Object
	// Describer describes members of an Object whose read fails.
	Describer = m.Describer
	// Descriptor describes one member without reading it.
	Descriptor = m.Descriptor
	// Constructor tags a func type as a class constructor.
	Constructor = m.Constructor
	// Export is one classified callable found by the extractor.
	Export = m.Export
	// Verdict classifies a visited node.
	Verdict = m.Verdict
	// Analysis is the output of Analyze.
	Analysis = m.Analysis
	// Summary holds the derived facts of an Analysis.
	Summary = m.Summary
)

// Verdicts.
const (
	Function   = m.VerdictFunction
	Class      = m.VerdictClass
	Opaque     = m.VerdictOpaque
	Value      = m.VerdictValue
	Unreadable = m.VerdictUnreadable
)

// DefaultMaxDepth is the recursion ceiling used when none is configured.
const DefaultMaxDepth = domain.DefaultMaxDepth

var (
	WithMaxDepth     = domain.WithMaxDepth
	WithExclude      = domain.WithExclude
	WithPrivate      = domain.WithPrivate
	WithNonFunctions = domain.WithNonFunctions
	WithClasses      = domain.WithClasses
	WithPrototypes   = domain.WithPrototypes
	WithDebug        = domain.WithDebug
	WithLogger       = domain.WithLogger
	WithProber       = domain.WithProber
)

// ListNames returns the unique dotted paths of the exports reachable from subject.
func ListNames(subject any, opts ...Option) []string {
	return domain.ListNames(subject, opts...)
}

// ExtractCallables maps each discovered path to the live callable found there.
func ExtractCallables(subject any, opts ...Option) map[string]any {
	return domain.ExtractCallables(subject, opts...)
}

// ExtractExports returns the classified callables in discovery order.
func ExtractExports(subject any, opts ...Option) []Export {
	return domain.ExtractExports(subject, opts...)
}

// Analyze reports the functions, all exports and a summary of subject.
func Analyze(subject any, opts ...Option) Analysis {
	return domain.Analyze(subject, opts...)
}
