package catalog

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	m "exportscan.dev/pkg/exportscan/internal/model"
)

func init() {
	Register(Entry{Name: "strings", Description: "utility module wrapping standard library string helpers", Subject: stringsModule})
	Register(Entry{Name: "geometry", Description: "classes with static and instance methods", Subject: geometryModule})
	Register(Entry{Name: "esmodule", Description: "default-only module wrapper", Subject: esModule})
	Register(Entry{Name: "registry", Description: "self-referencing registry with aliased handlers", Subject: registryModule})
	Register(Entry{Name: "lazy", Description: "dynamic object with a failing accessor", Subject: lazyModule})
	Register(Entry{Name: "settings", Description: "value-rich configuration module", Subject: settingsModule})
	Register(Entry{Name: "cli", Description: "callable module with attached helpers", Subject: cliModule})
}

func stringsModule() any {
	return map[string]any{
		"trim":  strings.TrimSpace,
		"split": strings.Split,
		"case": map[string]any{
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"title": Title,
		},
		"convert": map[string]any{
			"itoa": strconv.Itoa,
			"atoi": strconv.Atoi,
		},
		"_internalCache": map[string]string{},
		"version":        "1.2.0",
	}
}

// Title upper-cases the first letter of each word.
func Title(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return strings.Join(words, " ")
}

// Point is a position on the plane.
type Point struct {
	X, Y float64
}

// NewPoint constructs a Point.
func NewPoint(x, y float64) *Point { return &Point{X: x, Y: y} }

// Distance returns the euclidean distance to other.
func (p *Point) Distance(other *Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Translate moves the point by dx, dy.
func (p *Point) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

// PointClass is the constructor type of Point; its methods act as statics.
type PointClass func(x, y float64) *Point

// Origin returns the point at (0, 0).
func (PointClass) Origin() *Point { return &Point{} }

// Circle is built by a tagged constructor.
type Circle struct {
	Center *Point
	Radius float64
}

// Area returns the area of the circle.
func (c *Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

// CircleFactory builds circles and declares itself a class constructor.
type CircleFactory func(center *Point, radius float64) any

// Constructs names the type built by the factory.
func (CircleFactory) Constructs() reflect.Type { return reflect.TypeFor[Circle]() }

var _ m.Constructor = CircleFactory(nil)

func geometryModule() any {
	return map[string]any{
		"Point": PointClass(NewPoint),
		"Circle": CircleFactory(func(center *Point, radius float64) any {
			return &Circle{Center: center, Radius: radius}
		}),
		"distance": func(a, b *Point) float64 { return a.Distance(b) },
		"unit":     NewPoint(1, 0),
	}
}

func esModule() any {
	return map[string]any{
		"default": map[string]any{
			"greet":    func(name string) string { return "hello " + name },
			"farewell": func(name string) string { return "bye " + name },
		},
		"__esModule": true,
		"meta":       func() string { return "esmodule" },
	}
}

func registryModule() any {
	handler := func(event string) error { return nil }

	registry := map[string]any{
		"onCreate": handler,
		"hooks": map[string]any{
			"onCreate": handler,
		},
	}
	registry["self"] = registry

	return registry
}

var errUnavailable = errors.New("member unavailable")

// Lazy is a dynamic object resolving members on demand.
type Lazy struct {
	loaded map[string]any
}

// Keys lists the member names.
func (l *Lazy) Keys() []string { return []string{"connect", "status", "timeout"} }

// Get resolves one member; status always fails.
func (l *Lazy) Get(key string) (any, error) {
	if key == "status" {
		return nil, errUnavailable
	}

	value, ok := l.loaded[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnavailable, key)
	}

	return value, nil
}

// Describe exposes the accessor behind status.
func (l *Lazy) Describe(key string) (m.Descriptor, bool) {
	if key != "status" {
		return m.Descriptor{}, false
	}

	return m.Descriptor{Getter: func() (any, error) { return nil, errUnavailable }}, true
}

func lazyModule() any {
	return &Lazy{loaded: map[string]any{
		"connect": func(addr string) error { return nil },
		"timeout": 30 * time.Second,
	}}
}

// Settings is a struct-shaped configuration module.
type Settings struct {
	Name     string         `export:"name"`
	Port     int            `export:"port"`
	Tags     []string       `export:"tags"`
	Limits   map[string]int `export:"limits"`
	Reload   func() error   `export:"reload"`
	Secret   string         `export:"-"`
	Started  time.Time      `export:"started"`
	Validate func(any) error
}

func settingsModule() any {
	return &Settings{
		Name:     "exportscan",
		Port:     8080,
		Tags:     []string{"scan", "reflect"},
		Limits:   map[string]int{"depth": 3},
		Reload:   func() error { return nil },
		Secret:   "hidden",
		Started:  time.Unix(0, 0).UTC(),
		Validate: func(any) error { return nil },
	}
}

// Command is a callable module: invoking it runs the command.
type Command func(args []string) error

// Usage returns the help text.
func (Command) Usage() string { return "usage: cli [args]" }

// Flags lists the accepted flags.
func (Command) Flags() []string { return []string{"--verbose"} }

func cliModule() any {
	return Command(func(args []string) error { return nil })
}
