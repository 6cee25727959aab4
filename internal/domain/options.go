package domain

import (
	"log/slog"
	"os"

	m "exportscan.dev/pkg/exportscan/internal/model"
)

// DefaultMaxDepth is the recursion ceiling used when none is configured.
const DefaultMaxDepth = 3

// DefaultExclude lists the keys dropped when the caller supplies no exclusion list.
var DefaultExclude = []string{"constructor", "prototype", "caller", "arguments", "name", "length"}

// Option configures a single scan call.
type Option func(*settings)

type settings struct {
	config  m.Config
	prober  Prober
	exclude []string
	logger  *slog.Logger
}

// WithMaxDepth sets the hard ceiling on recursion depth from the root.
func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		s.config.MaxDepth = depth
	}
}

// WithExclude replaces the default excluded key list.
func WithExclude(keys ...string) Option {
	return func(s *settings) {
		s.exclude = append([]string{}, keys...)
	}
}

// WithPrivate keeps underscore-prefixed keys.
func WithPrivate(include bool) Option {
	return func(s *settings) {
		s.config.IncludePrivate = include
	}
}

// WithNonFunctions reports plain-value exports annotated with their kind.
func WithNonFunctions(include bool) Option {
	return func(s *settings) {
		s.config.IncludeNonFunctions = include
	}
}

// WithClasses controls whether class constructors appear in extracted callables.
func WithClasses(include bool) Option {
	return func(s *settings) {
		s.config.IncludeClasses = include
	}
}

// WithPrototypes controls whether method sets are merged into traversal.
func WithPrototypes(follow bool) Option {
	return func(s *settings) {
		s.config.FollowPrototypes = follow
	}
}

// WithDebug enables trace output to the diagnostic sink.
func WithDebug(debug bool) Option {
	return func(s *settings) {
		s.config.Debug = debug
	}
}

// WithLogger sets the diagnostic sink used when debug is enabled.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithProber replaces the capability probe used by the classification layer.
func WithProber(prober Prober) Option {
	return func(s *settings) {
		s.prober = prober
	}
}

func resolve(opts []Option) settings {
	s := settings{
		config: m.Config{
			MaxDepth:         DefaultMaxDepth,
			IncludeClasses:   true,
			FollowPrototypes: true,
		},
		exclude: DefaultExclude,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	if s.config.MaxDepth < 0 {
		s.config.MaxDepth = 0
	}

	if s.prober == nil {
		s.prober = RuntimeProber{}
	}

	s.config.Exclude = append([]string{}, s.exclude...)
	s.config.Logger = diagnosticLogger(s.config.Debug, s.logger)

	return s
}

func diagnosticLogger(debug bool, logger *slog.Logger) *slog.Logger {
	if !debug {
		return slog.New(slog.DiscardHandler)
	}

	if logger != nil {
		return logger
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
