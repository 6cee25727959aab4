package adapter

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	m "exportscan.dev/pkg/exportscan/internal/model"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSSourceWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	watchedPath := filepath.Join(dir, "module.yaml")
	otherPath := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(watchedPath, []byte("a: 1\n"), 0o600))

	var (
		mu      sync.Mutex
		batches [][]m.Path
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	watcher := NewFSSourceWatcher(20 * time.Millisecond)
	go func() {
		done <- watcher.Watch(ctx, []m.Path{m.Path(watchedPath)}, func(changed []m.Path) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, changed)
		})
	}()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(otherPath, []byte("b: 2\n"), 0o600)
		_ = os.WriteFile(watchedPath, []byte("a: 2\n"), 0o600)

		mu.Lock()
		defer mu.Unlock()

		return len(batches) > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()

	for _, batch := range batches {
		assert.Equal(t, []m.Path{m.Path(watchedPath)}, batch)
	}
}

func TestFSSourceWatcher_Errors(t *testing.T) {
	watcher := NewFSSourceWatcher(0)
	assert.Equal(t, DefaultDebounce, watcher.debounce)

	err := watcher.Watch(context.Background(), nil, func([]m.Path) {})
	require.ErrorIs(t, err, ErrNothingToWatch)

	missing := filepath.Join(t.TempDir(), "missing", "module.yaml")
	err = watcher.Watch(context.Background(), []m.Path{m.Path(missing)}, func([]m.Path) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch ")
}

func TestChangeBatch_Coalesces(t *testing.T) {
	batch := newChangeBatch(10 * time.Millisecond)
	defer batch.stop()

	batch.add("a.yaml")
	batch.add("b.yaml")
	batch.add("a.yaml")

	select {
	case <-batch.due:
	case <-time.After(5 * time.Second):
		t.Fatal("batch never became due")
	}

	assert.Equal(t, []m.Path{"a.yaml", "b.yaml"}, batch.take())
	assert.Empty(t, batch.take())
}

func TestFSSourceWatcher_SerializesCallbacks(t *testing.T) {
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	watched := map[string]m.Path{"/src/a.yaml": "a.yaml", "/src/b.yaml": "b.yaml"}

	var (
		active  atomic.Int32
		overlap atomic.Bool
		calls   = make(chan []m.Path, 4)
		release = make(chan struct{})
	)

	onChange := func(changed []m.Path) {
		if active.Add(1) > 1 {
			overlap.Store(true)
		}
		defer active.Add(-1)

		calls <- changed
		<-release
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	watcher := NewFSSourceWatcher(5 * time.Millisecond)
	go func() { done <- watcher.loop(ctx, events, errs, watched, onChange) }()

	events <- fsnotify.Event{Name: "/src/a.yaml", Op: fsnotify.Write}
	assert.Equal(t, []m.Path{"a.yaml"}, <-calls)

	// The loop is busy in the first callback, so this event waits.
	sent := make(chan struct{})
	go func() {
		events <- fsnotify.Event{Name: "/src/b.yaml", Op: fsnotify.Write}
		close(sent)
	}()

	select {
	case changed := <-calls:
		t.Fatalf("second callback ran during the first: %v", changed)
	case <-time.After(50 * time.Millisecond):
	}

	release <- struct{}{}
	<-sent
	assert.Equal(t, []m.Path{"b.yaml"}, <-calls)
	release <- struct{}{}

	events <- fsnotify.Event{Name: "/src/a.yaml", Op: fsnotify.Chmod}
	events <- fsnotify.Event{Name: "/src/other.yaml", Op: fsnotify.Write}

	cancel()
	require.NoError(t, <-done)

	assert.False(t, overlap.Load())
	assert.Empty(t, calls)
}
