package domain

import (
	"errors"
	"reflect"
	"time"

	m "exportscan.dev/pkg/exportscan/internal/model"
)

func greet() string    { return "hi" }
func farewell() string { return "bye" }

// Counter is built by newCounter, a class with one static and one instance method.
type Counter struct{ n int }

func (c *Counter) Increment() int {
	c.n++
	return c.n
}

type counterClass func() *Counter

func (counterClass) Zero() *Counter { return &Counter{} }

func NewCounter() *Counter { return &Counter{} }

var newCounter counterClass = NewCounter

// toolFunc is a callable subject with a helper attached.
type toolFunc func() string

func (toolFunc) Helper() string { return "help" }

var tool toolFunc = func() string { return "run" }

// Greeter exposes a field and an instance method.
type Greeter struct {
	Prefix string
}

func (g *Greeter) Greet(name string) string { return g.Prefix + name }

// Widget is constructed by widgetCtor, which tags itself as a class.
type Widget struct{ label string }

func (w *Widget) Render() string { return "<" + w.label + ">" }

type widgetCtor func(label string) any

func (widgetCtor) Constructs() reflect.Type { return reflect.TypeFor[Widget]() }

var newWidget widgetCtor = func(label string) any { return &Widget{label: label} }

// Stamp wraps time.Time and adds one method of its own.
type Stamp struct {
	time.Time
}

func (Stamp) Label() string { return "stamp" }

type mathModule struct {
	Add      func(a, b int) int
	Sub      func(a, b int) int `export:"subtract"`
	Internal func()             `export:"-"`
	Pi       float64
	hidden   func()
}

type Base struct {
	Ping func() string
}

type service struct {
	*Base
}

var errBroken = errors.New("broken member")

func brokenGetter() (any, error) { return nil, errBroken }

// lazyModule is a dynamic object whose members fail in different ways.
type lazyModule struct{}

func (lazyModule) Keys() []string { return []string{"ready", "broken", "plain"} }

func (lazyModule) Get(key string) (any, error) {
	switch key {
	case "ready":
		return greet, nil
	case "broken":
		panic("getter exploded")
	default:
		return nil, errBroken
	}
}

func (lazyModule) Describe(key string) (m.Descriptor, bool) {
	switch key {
	case "broken":
		return m.Descriptor{Getter: brokenGetter}, true
	case "plain":
		return m.Descriptor{}, true
	default:
		return m.Descriptor{}, false
	}
}

func deepSubject() map[string]any {
	return map[string]any{
		"level1": map[string]any{
			"level2": map[string]any{
				"level3": map[string]any{
					"level4": map[string]any{
						"deepFunction": greet,
					},
				},
			},
		},
	}
}
