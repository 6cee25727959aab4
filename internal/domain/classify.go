package domain

import (
	"reflect"
	"regexp"
	"strings"

	m "exportscan.dev/pkg/exportscan/internal/model"
)

// intrinsicKeys are the universal object and function members that are never
// intentional exports.
var intrinsicKeys = []string{
	"hasOwnProperty", "isPrototypeOf", "propertyIsEnumerable",
	"toString", "toLocaleString", "valueOf",
	"apply", "bind", "call",
	"__proto__", "__defineGetter__", "__defineSetter__", "__lookupGetter__", "__lookupSetter__",
	"String", "GoString", "Error", "Format", "Equal",
}

// patternKeys are the accessors and methods of pattern-matching objects.
var patternKeys = []string{
	"exec", "test", "compile",
	"source", "flags", "global", "ignoreCase", "multiline", "sticky", "unicode", "dotAll", "hasIndices",
	"lastIndex",
}

// loaderKeys are module-loader metadata and ambient environment references.
var loaderKeys = []string{
	m.ModuleFlagKey, "exports", "module", "require", "import", "define",
	"__dirname", "__filename", "global", "globalThis", "process",
}

// noiseKeys are generic names that are metadata rather than exports.
var noiseKeys = []string{"length", "size", "version", "VERSION", "__placeholder__"}

var noiseIndex = buildNoiseIndex(intrinsicKeys, patternKeys, loaderKeys, noiseKeys)

var (
	regexpType = reflect.TypeFor[regexp.Regexp]()
	errorType  = reflect.TypeFor[error]()
)

func buildNoiseIndex(lists ...[]string) map[string]struct{} {
	index := make(map[string]struct{})

	for _, list := range lists {
		for _, key := range list {
			index[key] = struct{}{}
		}
	}

	return index
}

// excludedKey reports whether key must be dropped from the candidate set.
func excludedKey(cfg m.Config, key string) bool {
	if cfg.Excluded(key) {
		return true
	}

	if !cfg.IncludePrivate && strings.HasPrefix(key, "_") {
		return true
	}

	_, noise := noiseIndex[key]

	return noise
}

// opaque reports whether the walker must not enter v.
func opaque(prober Prober, v reflect.Value) bool {
	if nullish(v) {
		return true
	}

	t := v.Type()
	if t == regexpType || (t.Kind() == reflect.Pointer && t.Elem() == regexpType) {
		return true
	}

	if v.Kind() == reflect.Func {
		return prober.Native(v)
	}

	return prober.Intrinsic(t)
}

func nullish(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

func callable(v reflect.Value) bool {
	return v.IsValid() && v.Kind() == reflect.Func && !v.IsNil()
}

// composite reports whether v can carry members worth recursing into.
func composite(v reflect.Value) bool {
	if nullish(v) {
		return false
	}

	switch v.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	default:
		return isObject(v)
	}
}

// isObject reports whether v implements model.Object.
func isObject(v reflect.Value) bool {
	_, ok := asObject(v)
	return ok
}

func asObject(v reflect.Value) (m.Object, bool) {
	if nullish(v) || !v.CanInterface() {
		return nil, false
	}

	obj, ok := v.Interface().(m.Object)

	return obj, ok
}

// kindOf annotates a non-callable value.
func kindOf(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return m.KindString
	case reflect.Bool:
		return m.KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return m.KindNumber
	case reflect.Slice, reflect.Array:
		if isObject(v) {
			return m.KindObject
		}

		return m.KindArray
	default:
		return m.KindObject
	}
}

// classify tells a class constructor apart from a plain function.
func classify(prober Prober, fn reflect.Value) m.Verdict {
	if prober.ClassTagged(fn) {
		return m.VerdictClass
	}

	if proto := constructedType(prober, fn); proto != nil && len(declaredMethods(proto)) > 0 {
		return m.VerdictClass
	}

	return m.VerdictFunction
}

// constructedType returns the type whose method set acts as the prototype of
// a constructor: the type named by model.Constructor, or the named struct
// built by a func(...) T or func(...) (T, error) the prober accepts as T's
// constructor. The pointer type is returned so the method set covers both
// receiver kinds.
func constructedType(prober Prober, fn reflect.Value) reflect.Type {
	if !callable(fn) {
		return nil
	}

	ft := fn.Type()

	if ft.Implements(constructorType) {
		if ctor, ok := safeConstructs(fn); ok && ctor != nil {
			return prototypeOf(ctor)
		}
	}

	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return nil
		}
	default:
		return nil
	}

	proto := prototypeOf(ft.Out(0))
	if proto == nil || !prober.ConstructorOf(fn, proto) {
		return nil
	}

	return proto
}

func prototypeOf(t reflect.Type) reflect.Type {
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	if base.Kind() != reflect.Struct || base.Name() == "" {
		return nil
	}

	return reflect.PointerTo(base)
}

func safeConstructs(fn reflect.Value) (t reflect.Type, ok bool) {
	defer func() {
		if recover() != nil {
			t, ok = nil, false
		}
	}()

	if !fn.CanInterface() {
		return nil, false
	}

	ctor, isCtor := fn.Interface().(m.Constructor)
	if !isCtor {
		return nil, false
	}

	return ctor.Constructs(), true
}
