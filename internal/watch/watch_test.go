package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/herb/internal/testutil"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) handle(_ context.Context, paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, paths)
}

func (r *recorder) all() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.batches...)
}

func start(t *testing.T, w *Watcher, rec *recorder) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, rec.handle) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)
}

func TestWatcher_DebouncesBatch(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	start(t, &Watcher{
		Roots:    []string{dir},
		Match:    func(p string) bool { return strings.HasSuffix(p, ".erb") },
		Debounce: 150 * time.Millisecond,
		Logger:   testutil.NewTestLogger(t),
	}, rec)

	a := filepath.Join(dir, "a.html.erb")
	b := filepath.Join(dir, "b.html.erb")
	for range 3 {
		require.NoError(t, os.WriteFile(a, []byte("<p></p>\n"), 0o644))
		require.NoError(t, os.WriteFile(b, []byte("<p></p>\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	}

	require.Eventually(t, func() bool { return len(rec.all()) > 0 }, 3*time.Second, 20*time.Millisecond)
	batches := rec.all()
	assert.Equal(t, []string{a, b}, batches[0])
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	start(t, &Watcher{Roots: []string{dir}, Debounce: 50 * time.Millisecond}, rec)

	sub := filepath.Join(dir, "views")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(100 * time.Millisecond)

	file := filepath.Join(sub, "index.html.erb")
	require.NoError(t, os.WriteFile(file, []byte("<p></p>\n"), 0o644))

	require.Eventually(t, func() bool {
		for _, b := range rec.all() {
			for _, p := range b {
				if p == file {
					return true
				}
			}
		}
		return false
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := &Watcher{Roots: []string{filepath.Join(t.TempDir(), "missing")}}
	err := w.Run(context.Background(), func(context.Context, []string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
