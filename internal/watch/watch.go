// Package watch re-runs a callback when template files change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more events before
// firing.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the changed files of one debounced batch, sorted.
type Handler func(ctx context.Context, paths []string)

// Watcher watches directory trees for file writes.
type Watcher struct {
	Roots    []string
	Match    func(path string) bool // nil accepts every file
	Debounce time.Duration
	Logger   *slog.Logger
}

// Run watches until ctx is cancelled. Events are batched: a burst of writes
// produces one call to h once the tree has been quiet for Debounce. A fixed
// file rewritten by h fires one more batch, which then finds nothing to fix.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range w.Roots {
		if err := watchDir(watcher, root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}
	logger.Debug("watching", slog.Any("roots", w.Roots))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDir(watcher, event.Name); err != nil {
						logger.Warn("failed to watch new directory", slog.String("path", event.Name), slog.String("error", err.Error()))
					}
					continue
				}
			}
			if w.Match != nil && !w.Match(event.Name) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true
			timer.Reset(debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			logger.Debug("change detected", slog.Int("files", len(paths)))
			h(ctx, paths)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

// watchDir adds dir and its subdirectories, skipping hidden directories
// and node_modules.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && (name == "node_modules" || (len(name) > 0 && name[0] == '.')) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
