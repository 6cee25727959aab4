// Package model defines the data structures shared by the export scanner.
package model

import "reflect"

// Verdict classifies a visited node.
type Verdict string

const (
	// VerdictFunction marks a plain callable.
	VerdictFunction Verdict = "function"
	// VerdictClass marks a constructor with a real instance surface.
	VerdictClass Verdict = "class"
	// VerdictOpaque marks a builtin node the walker refuses to enter. It only
	// appears in debug traces.
	VerdictOpaque Verdict = "opaque"
	// VerdictValue marks a non-callable data export.
	VerdictValue Verdict = "value"
	// VerdictUnreadable marks a member whose read failed but whose descriptor exposes a getter.
	VerdictUnreadable Verdict = "unreadable"
)

// Value kind annotations used for non-function exports.
const (
	KindString  = "string"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindArray   = "array"
	KindObject  = "object"
)

// RootName is the path reported for a callable subject itself.
const RootName = "main"

// DefaultKey and ModuleFlagKey describe the ES-module interop wrapper shape.
const (
	DefaultKey    = "default"
	ModuleFlagKey = "__esModule"
)

// Export is one contribution produced by the traversal.
type Export struct {
	Path    string
	Verdict Verdict
	Kind    string        // only set for VerdictValue
	Ref     reflect.Value // the discovered value; the getter for VerdictUnreadable
}

// Name renders the export the way the name lister reports it.
func (e Export) Name() string {
	if e.Verdict == VerdictValue {
		return e.Path + " (" + e.Kind + ")"
	}

	return e.Path
}

// Callable reports whether the export denotes something invocable.
func (e Export) Callable() bool {
	return e.Verdict == VerdictFunction || e.Verdict == VerdictClass || e.Verdict == VerdictUnreadable
}
