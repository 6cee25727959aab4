package model

import "log/slog"

// Config is the fully resolved configuration of a single scan call.
type Config struct {
	MaxDepth            int
	Exclude             []string
	IncludePrivate      bool
	IncludeNonFunctions bool
	IncludeClasses      bool
	FollowPrototypes    bool
	Debug               bool
	Logger              *slog.Logger
}

// Excluded reports whether key is on the caller-supplied exclusion list.
func (c Config) Excluded(key string) bool {
	for _, k := range c.Exclude {
		if k == key {
			return true
		}
	}

	return false
}
