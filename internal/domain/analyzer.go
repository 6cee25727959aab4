package domain

import (
	"reflect"
	"slices"

	m "exportscan.dev/pkg/exportscan/internal/model"
)

// Analyze lists subject twice, functions only and with plain values, and
// summarizes the shape of subject itself.
func Analyze(subject any, opts ...Option) m.Analysis {
	functions := ListNames(subject, append(slices.Clip(opts), WithNonFunctions(false))...)
	all := ListNames(subject, append(slices.Clip(opts), WithNonFunctions(true))...)

	v := unwrap(reflect.ValueOf(subject))

	return m.Analysis{
		Functions:  functions,
		AllExports: all,
		Summary: m.Summary{
			FunctionCount: len(functions),
			TotalExports:  len(all),
			HasDefault:    hasDefault(resolve(opts).prober, v),
			IsCallable:    callable(v),
			IsObject:      composite(v) && !callable(v),
		},
	}
}

func hasDefault(prober Prober, v reflect.Value) bool {
	if nullish(v) || callable(v) {
		return false
	}

	_, ok := members(prober, v, false)[m.DefaultKey]

	return ok
}
