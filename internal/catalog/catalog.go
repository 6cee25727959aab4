// Package catalog registers built-in Go subjects that the CLI can scan by name.
package catalog

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Prefix marks a scan source as a catalog entry rather than a file.
const Prefix = "catalog:"

// Entry is a named subject with a short description.
type Entry struct {
	Name        string
	Description string
	Subject     func() any
}

var (
	mu      sync.RWMutex
	entries = make(map[string]Entry)
)

// Register adds an entry, replacing any entry of the same name.
func Register(entry Entry) {
	mu.Lock()
	defer mu.Unlock()

	entries[entry.Name] = entry
}

// Get returns the entry registered under name.
func Get(name string) (Entry, error) {
	mu.RLock()
	defer mu.RUnlock()

	entry, ok := entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("no catalog entry named %q (available: %s)", name, strings.Join(namesLocked(), ", "))
	}

	return entry, nil
}

// Entries returns all entries sorted by name.
func Entries() []Entry {
	mu.RLock()
	defer mu.RUnlock()

	list := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		list = append(list, entry)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})

	return list
}

// Lookup resolves a "catalog:<name>" source. ok is false for any other source.
func Lookup(source string) (subject any, ok bool, err error) {
	name, found := strings.CutPrefix(source, Prefix)
	if !found {
		return nil, false, nil
	}

	entry, err := Get(name)
	if err != nil {
		return nil, true, err
	}

	return entry.Subject(), true, nil
}

func namesLocked() []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
