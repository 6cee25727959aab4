package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	m "exportscan.dev/pkg/exportscan/internal/model"
)

// exportTag renames or hides struct fields, mirroring encoding/json tags.
const exportTag = "export"

var errNoMember = errors.New("member not found")

// member is one candidate key of a node together with the means to read it.
type member struct {
	read     func() (reflect.Value, error)
	describe func() (m.Descriptor, bool)
}

// memberSet keeps the first member registered under each key.
type memberSet map[string]member

func (s memberSet) add(key string, mem member) {
	if _, ok := s[key]; ok {
		return
	}

	s[key] = mem
}

// members gathers the own keys of v and, when follow is set, the keys of its
// prototype. Own keys win over prototype keys of the same name.
func members(prober Prober, v reflect.Value, follow bool) memberSet {
	set := make(memberSet)
	if nullish(v) {
		return set
	}

	if obj, ok := asObject(v); ok {
		objectMembers(set, obj)
		return set
	}

	ownMembers(set, v)

	if follow {
		prototypeMembers(prober, set, v)
	}

	return set
}

func ownMembers(set memberSet, v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		elem := v.Elem()
		if elem.Kind() == reflect.Struct || elem.Kind() == reflect.Map || elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array {
			ownMembers(set, elem)
		}
	case reflect.Map:
		mapMembers(set, v)
	case reflect.Struct:
		structMembers(set, v)
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			set.add(strconv.Itoa(i), member{read: valueReader(v.Index(i))})
		}
	case reflect.Func:
		// Methods declared on a named func type hang off the function itself.
		methodMembers(set, v)
	}
}

func mapMembers(set memberSet, v reflect.Value) {
	iter := v.MapRange()
	for iter.Next() {
		key := iter.Key()
		set.add(mapKeyName(key), member{read: valueReader(iter.Value())})
	}
}

func mapKeyName(key reflect.Value) string {
	for key.Kind() == reflect.Interface && !key.IsNil() {
		key = key.Elem()
	}

	if key.Kind() == reflect.String {
		return key.String()
	}

	if key.CanInterface() {
		return fmt.Sprint(key.Interface())
	}

	return key.String()
}

func structMembers(set memberSet, v reflect.Value) {
	for _, field := range reflect.VisibleFields(v.Type()) {
		if !field.IsExported() {
			continue
		}

		if field.Anonymous && indirectType(field.Type).Kind() == reflect.Struct {
			continue
		}

		name := field.Name
		if tag, ok := field.Tag.Lookup(exportTag); ok {
			if tag == "-" {
				continue
			}

			if tag != "" {
				name = tag
			}
		}

		index := field.Index
		set.add(name, member{read: func() (reflect.Value, error) {
			return v.FieldByIndexErr(index)
		}})
	}
}

func methodMembers(set memberSet, v reflect.Value) {
	t := v.Type()
	tagged := t.Implements(constructorType)

	for _, method := range declaredMethods(t) {
		if tagged && method.Name == "Constructs" {
			continue
		}

		index := method.Index
		set.add(method.Name, member{read: func() (reflect.Value, error) {
			return v.Method(index), nil
		}})
	}
}

// declaredMethods lists the methods of t that are not promoted from an
// embedded field.
func declaredMethods(t reflect.Type) []reflect.Method {
	var embedded []reflect.Type

	if base := indirectType(t); base.Kind() == reflect.Struct {
		for i := range base.NumField() {
			if field := base.Field(i); field.Anonymous {
				embedded = append(embedded, field.Type)
			}
		}
	}

	methods := make([]reflect.Method, 0, t.NumMethod())

	for i := range t.NumMethod() {
		method := t.Method(i)
		if promotedFrom(embedded, method.Name) {
			continue
		}

		methods = append(methods, method)
	}

	return methods
}

func promotedFrom(embedded []reflect.Type, name string) bool {
	for _, t := range embedded {
		if _, ok := t.MethodByName(name); ok {
			return true
		}

		if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
			if _, ok := reflect.PointerTo(t).MethodByName(name); ok {
				return true
			}
		}
	}

	return false
}

// prototypeMembers merges the inherited surface of v. Instances contribute
// their bound methods; class constructors contribute the method expressions of
// the type they build.
func prototypeMembers(prober Prober, set memberSet, v reflect.Value) {
	if v.Kind() != reflect.Func {
		methodMembers(set, v)
		return
	}

	proto := constructedType(prober, v)
	if proto == nil || proto == v.Type() {
		return
	}

	for _, method := range declaredMethods(proto) {
		set.add(method.Name, member{read: valueReader(method.Func)})
	}
}

func objectMembers(set memberSet, obj m.Object) {
	keys, err := safeKeys(obj)
	if err != nil {
		return
	}

	describer, _ := obj.(m.Describer)

	for _, key := range keys {
		k := key
		mem := member{read: func() (reflect.Value, error) {
			value, err := obj.Get(k)
			if err != nil {
				return reflect.Value{}, err
			}

			return reflect.ValueOf(value), nil
		}}

		if describer != nil {
			mem.describe = func() (m.Descriptor, bool) {
				return describer.Describe(k)
			}
		}

		set.add(k, mem)
	}
}

func safeKeys(obj m.Object) (keys []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			keys, err = nil, fmt.Errorf("keys: %v", r)
		}
	}()

	return obj.Keys(), nil
}

func valueReader(v reflect.Value) func() (reflect.Value, error) {
	return func() (reflect.Value, error) {
		return v, nil
	}
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

// readMember invokes the reader, turning panics into errors and unwrapping
// interface values.
func readMember(mem member) (v reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = reflect.Value{}, fmt.Errorf("read: %v", r)
		}
	}()

	if mem.read == nil {
		return reflect.Value{}, errNoMember
	}

	v, err = mem.read()
	if err != nil {
		return reflect.Value{}, err
	}

	return unwrap(v), nil
}

// describeMember looks up the member descriptor without invoking it.
func describeMember(mem member) (desc m.Descriptor, ok bool) {
	defer func() {
		if recover() != nil {
			desc, ok = m.Descriptor{}, false
		}
	}()

	if mem.describe == nil {
		return m.Descriptor{}, false
	}

	return mem.describe()
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}
