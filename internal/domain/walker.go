// Package domain contains the export traversal engine and the scan workflow.
package domain

import (
	"log/slog"
	"reflect"
	"slices"

	m "exportscan.dev/pkg/exportscan/internal/model"
)

// identity keys the visited set. It holds an address, never the value itself,
// so visited nodes are not kept alive by the set.
type identity struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// walker holds the state of one traversal call.
type walker struct {
	cfg    m.Config
	prober Prober
	log    *slog.Logger
	seen   map[identity]struct{}
	emit   func(m.Export)
}

func newWalker(s settings, emit func(m.Export)) *walker {
	return &walker{
		cfg:    s.config,
		prober: s.prober,
		log:    s.config.Logger,
		seen:   make(map[identity]struct{}),
		emit:   emit,
	}
}

// walk traverses subject from the root, normalizing default-only wrappers first.
func (w *walker) walk(subject any) {
	root := unwrap(reflect.ValueOf(subject))
	if nullish(root) {
		return
	}

	if w.unwrapDefault(root) {
		return
	}

	w.visit(root, "", 0)
}

// visit contributes v and its descendants found at path.
func (w *walker) visit(v reflect.Value, path string, depth int) {
	if depth > w.cfg.MaxDepth || nullish(v) {
		return
	}

	if opaque(w.prober, v) {
		w.log.Debug("stop", "path", path, "verdict", m.VerdictOpaque, "type", v.Type().String())
		return
	}

	if id, ok := identityOf(v); ok {
		if _, seen := w.seen[id]; seen {
			w.log.Debug("skip visited node", "path", path)
			return
		}

		w.seen[id] = struct{}{}
	}

	w.log.Debug("visit", "path", path, "depth", depth, "type", v.Type().String())

	if callable(v) {
		name := path
		if name == "" {
			name = m.RootName
		}

		w.contributeCallable(name, v)
	} else if w.cfg.IncludeNonFunctions && path != "" {
		w.contributeValue(path, v)
	}

	set := members(w.prober, v, w.cfg.FollowPrototypes)
	for _, key := range w.keys(set) {
		w.visitMember(path, key, set[key], depth)
	}
}

// visitMember reads one member of the node at parent and recurses into it.
func (w *walker) visitMember(parent, key string, mem member, depth int) {
	path := joinPath(parent, key)

	value, err := readMember(mem)
	if err != nil {
		w.log.Debug("member read failed", "path", path, "error", err)

		desc, ok := describeMember(mem)
		if ok && desc.Getter != nil {
			w.emit(m.Export{Path: path, Verdict: m.VerdictUnreadable, Ref: reflect.ValueOf(desc.Getter)})
		}

		return
	}

	if nullish(value) {
		return
	}

	if callable(value) {
		w.contributeCallable(path, value)
	} else if w.cfg.IncludeNonFunctions {
		w.contributeValue(path, value)
	}

	if composite(value) && depth < w.cfg.MaxDepth {
		w.visit(value, path, depth+1)
	}
}

// unwrapDefault scans an ES-module style {default, __esModule} wrapper with the
// contents of default surfacing at the root. It reports whether it handled root.
func (w *walker) unwrapDefault(root reflect.Value) bool {
	if callable(root) {
		return false
	}

	own := members(w.prober, root, false)

	def, ok := own[m.DefaultKey]
	if !ok || !defaultOnly(own) {
		return false
	}

	value, err := readMember(def)
	if err != nil || !(callable(value) || composite(value)) {
		return false
	}

	w.log.Debug("unwrapping default export")

	if id, ok := identityOf(root); ok {
		w.seen[id] = struct{}{}
	}

	if callable(value) {
		w.contributeCallable(m.DefaultKey, value)
	} else {
		w.visit(value, "", 0)
	}

	for _, key := range w.keys(own) {
		if key == m.DefaultKey || key == m.ModuleFlagKey {
			continue
		}

		w.visitMember("", key, own[key], 0)
	}

	return true
}

// defaultOnly matches {default} and {default, __esModule} with at most one
// further key.
func defaultOnly(own memberSet) bool {
	if len(own) == 1 {
		return true
	}

	_, hasFlag := own[m.ModuleFlagKey]

	return hasFlag && len(own) <= 3
}

func (w *walker) contributeCallable(path string, fn reflect.Value) {
	w.emit(m.Export{Path: path, Verdict: classify(w.prober, fn), Ref: fn})
}

func (w *walker) contributeValue(path string, v reflect.Value) {
	w.emit(m.Export{Path: path, Verdict: m.VerdictValue, Kind: kindOf(v), Ref: v})
}

// keys returns the surviving member keys in lexicographic order.
func (w *walker) keys(set memberSet) []string {
	keys := make([]string, 0, len(set))

	for key := range set {
		if excludedKey(w.cfg, key) {
			continue
		}

		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

func identityOf(v reflect.Value) (identity, bool) {
	switch v.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.UnsafePointer:
		return identity{typ: v.Type(), ptr: v.Pointer()}, true
	case reflect.Slice:
		return identity{typ: v.Type(), ptr: v.Pointer(), len: v.Len()}, true
	default:
		return identity{}, false
	}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + "." + key
}
