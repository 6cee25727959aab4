package model

import "reflect"

// Object is a dynamically shaped node. The walker lists its members with Keys
// and reads them with Get instead of reflecting over its Go type.
type Object interface {
	Keys() []string
	Get(key string) (any, error)
}

// Descriptor describes a member without reading it.
type Descriptor struct {
	// Getter is the accessor behind the member, nil for plain data members.
	Getter func() (any, error)
}

// Describer is implemented by objects that can describe members whose read fails.
type Describer interface {
	Describe(key string) (Descriptor, bool)
}

// Constructor tags a func type as a class constructor and names the type it builds.
type Constructor interface {
	Constructs() reflect.Type
}
