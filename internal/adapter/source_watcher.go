package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	m "exportscan.dev/pkg/exportscan/internal/model"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more events before reporting.
const DefaultDebounce = 200 * time.Millisecond

// ErrNothingToWatch is returned when no watchable file source is given.
var ErrNothingToWatch = errors.New("no file sources to watch")

// SourceWatcher reports changes to document sources.
type SourceWatcher interface {
	// Watch blocks until ctx is done, calling onChange with the changed sources
	// after each burst of file system events.
	Watch(ctx context.Context, sources []m.Path, onChange func([]m.Path)) error
}

// FSSourceWatcher implements SourceWatcher with fsnotify.
type FSSourceWatcher struct {
	debounce time.Duration
}

// NewFSSourceWatcher creates a watcher coalescing events within debounce.
func NewFSSourceWatcher(debounce time.Duration) *FSSourceWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &FSSourceWatcher{debounce: debounce}
}

// Watch observes the parent directories of sources so that files replaced by
// rename are still seen.
func (w *FSSourceWatcher) Watch(ctx context.Context, sources []m.Path, onChange func([]m.Path)) error {
	if len(sources) == 0 {
		return ErrNothingToWatch
	}

	watched := make(map[string]m.Path, len(sources))
	dirs := make([]string, 0, len(sources))

	for _, source := range sources {
		abs, err := filepath.Abs(string(source))
		if err != nil {
			return fmt.Errorf("resolve %s: %w", source, err)
		}

		watched[abs] = source

		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w.loop(ctx, fsw.Events, fsw.Errors, watched, onChange)
}

// loop dispatches events until ctx is done. onChange runs on the loop
// goroutine, so calls never overlap and none happen after loop returns.
func (w *FSSourceWatcher) loop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	watched map[string]m.Path,
	onChange func([]m.Path),
) error {
	batch := newChangeBatch(w.debounce)
	defer batch.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-batch.due:
			if changed := batch.take(); len(changed) > 0 && ctx.Err() == nil {
				onChange(changed)
			}
		case event, ok := <-events:
			if !ok {
				return nil
			}

			source, ok := watched[filepath.Clean(event.Name)]
			if !ok || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}

			slog.Debug("Source changed", "source", source, "op", event.Op.String())
			batch.add(source)
		case err, ok := <-errs:
			if !ok {
				return nil
			}

			slog.Error("Watcher error", "error", err)
		}
	}
}

// changeBatch collects changed sources and signals due once events stop
// arriving for the debounce interval.
type changeBatch struct {
	mu       sync.Mutex
	debounce time.Duration
	pending  []m.Path
	timer    *time.Timer
	due      chan struct{}
}

func newChangeBatch(debounce time.Duration) *changeBatch {
	return &changeBatch{debounce: debounce, due: make(chan struct{}, 1)}
}

func (b *changeBatch) add(source m.Path) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !slices.Contains(b.pending, source) {
		b.pending = append(b.pending, source)
	}

	if b.timer != nil {
		b.timer.Stop()
	}

	b.timer = time.AfterFunc(b.debounce, b.signal)
}

func (b *changeBatch) signal() {
	select {
	case b.due <- struct{}{}:
	default:
	}
}

// take returns and clears the pending sources.
func (b *changeBatch) take() []m.Path {
	b.mu.Lock()
	defer b.mu.Unlock()

	changed := b.pending
	b.pending = nil

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}

	return changed
}

func (b *changeBatch) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
