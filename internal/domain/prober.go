package domain

import (
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	m "exportscan.dev/pkg/exportscan/internal/model"
)

// Prober answers the reflective questions the walker cannot settle from a
// value's shape alone.
type Prober interface {
	// Native reports whether fn has no body of the caller's own to look into.
	Native(fn reflect.Value) bool
	// Intrinsic reports whether values of t belong to the runtime rather than the caller.
	Intrinsic(t reflect.Type) bool
	// ClassTagged reports whether fn was declared a class constructor.
	ClassTagged(fn reflect.Value) bool
	// ConstructorOf reports whether fn is the declared constructor of t.
	ConstructorOf(fn reflect.Value, t reflect.Type) bool
}

// RuntimeProber treats the Go standard library as the intrinsic layer.
type RuntimeProber struct{}

var constructorType = reflect.TypeFor[m.Constructor]()

// Native reports functions without symbol information or defined in a standard
// library package. reflect.MakeFunc stubs and reflect-bound method values land
// in package reflect and are native as well.
func (RuntimeProber) Native(fn reflect.Value) bool {
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return true
	}

	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return true
	}

	return isStdPackage(symbolPackage(f.Name()))
}

// Intrinsic reports named types declared in the standard library.
func (RuntimeProber) Intrinsic(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Name() == "" {
		return false
	}

	return isStdPackage(t.PkgPath())
}

// ClassTagged reports funcs whose type implements model.Constructor.
func (RuntimeProber) ClassTagged(fn reflect.Value) bool {
	return fn.Kind() == reflect.Func && fn.Type().Implements(constructorType)
}

// ConstructorOf follows the NewT naming convention: fn must be named New<T> or
// new<T>, or New when it lives in the package that declares T.
func (RuntimeProber) ConstructorOf(fn reflect.Value, t reflect.Type) bool {
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return false
	}

	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return false
	}

	t = indirectType(t)
	pkg := symbolPackage(f.Name())
	name := strings.TrimPrefix(f.Name(), pkg+".")

	switch name {
	case "New" + t.Name(), "new" + t.Name():
		return true
	case "New":
		return pkg == t.PkgPath()
	default:
		return false
	}
}

// symbolPackage extracts the import path from a symbol such as
// "example.com/pkg/sub.(*T).Method-fm".
func symbolPackage(symbol string) string {
	slash := strings.LastIndex(symbol, "/")

	dot := strings.Index(symbol[slash+1:], ".")
	if dot < 0 {
		return symbol
	}

	return symbol[:slash+1+dot]
}

// moduleSet holds the module paths linked into the running binary. Packages
// under one of them are never standard library, whatever their shape.
type moduleSet struct {
	paths []string
}

func newModuleSet(info *debug.BuildInfo, ok bool) moduleSet {
	if !ok || info == nil {
		return moduleSet{}
	}

	set := moduleSet{}
	for _, path := range []string{info.Path, info.Main.Path} {
		if path != "" {
			set.paths = append(set.paths, path)
		}
	}

	for _, dep := range info.Deps {
		set.paths = append(set.paths, dep.Path)
	}

	return set
}

func (s moduleSet) contains(pkgPath string) bool {
	for _, mod := range s.paths {
		if pkgPath == mod || strings.HasPrefix(pkgPath, mod+"/") {
			return true
		}
	}

	return false
}

// std reports whether pkgPath belongs to the standard library. Without build
// information only the shape of the path is left: std paths have no dot in
// their first element.
func (s moduleSet) std(pkgPath string) bool {
	if pkgPath == "" || pkgPath == "main" || s.contains(pkgPath) {
		return false
	}

	first, _, _ := strings.Cut(pkgPath, "/")

	return !strings.Contains(first, ".")
}

var linkedModules = sync.OnceValue(func() moduleSet {
	return newModuleSet(debug.ReadBuildInfo())
})

func isStdPackage(pkgPath string) bool {
	return linkedModules().std(pkgPath)
}
