// Package watch re-runs a callback whenever one of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Func is called after a change settles. It returns the files to watch
// from then on; a nil slice keeps the current set.
type Func func(ctx context.Context) ([]string, error)

// Options configures a watch loop.
type Options struct {
	Debounce     time.Duration // Quiet period before Func runs
	PollInterval time.Duration // Backup stat polling in case events are missed
	Logger       *slog.Logger
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Debounce:     200 * time.Millisecond,
		PollInterval: 2 * time.Second,
	}
}

type fileState struct {
	modTime time.Time
	size    int64
	exists  bool
}

func stat(path string) fileState {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}
	}
	return fileState{modTime: info.ModTime(), size: info.Size(), exists: true}
}

type watcher struct {
	fs     *fsnotify.Watcher
	dirs   map[string]bool
	files  map[string]fileState
	logger *slog.Logger
}

// Run watches files until ctx is cancelled. Parent directories are watched
// rather than the files themselves so editors that save by renaming a new
// file into place are still seen.
func Run(ctx context.Context, files []string, fn Func, options Options) error {
	defaults := DefaultOptions()
	if options.Debounce <= 0 {
		options.Debounce = defaults.Debounce
	}
	if options.PollInterval <= 0 {
		options.PollInterval = defaults.PollInterval
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := fsw.Close(); closeErr != nil {
			options.Logger.Debug("Failed to close file watcher", "error", closeErr)
		}
	}()

	w := &watcher{
		fs:     fsw,
		dirs:   make(map[string]bool),
		files:  make(map[string]fileState),
		logger: options.Logger,
	}
	if err := w.track(files); err != nil {
		return err
	}

	ticker := time.NewTicker(options.PollInterval)
	defer ticker.Stop()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if _, tracked := w.files[filepath.Clean(event.Name)]; !tracked {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.logger.Debug("File changed", "path", event.Name, "op", event.Op.String())
				fire = time.After(options.Debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", "error", err)
		case <-ticker.C:
			if w.changed() {
				fire = time.After(options.Debounce)
			}
		case <-fire:
			fire = nil
			next, err := fn(ctx)
			if err != nil {
				w.logger.Warn("Watch callback failed", "error", err)
			}
			if next == nil {
				next = w.paths()
			}
			if err := w.track(next); err != nil {
				w.logger.Warn("Failed to update watched files", "error", err)
			}
		}
	}
}

// track replaces the watched file set and snapshots its state.
func (w *watcher) track(files []string) error {
	w.files = make(map[string]fileState, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		abs = filepath.Clean(abs)
		w.files[abs] = stat(abs)

		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	return nil
}

// changed polls every file and reports whether any differs from its
// snapshot.
func (w *watcher) changed() bool {
	dirty := false
	for path, old := range w.files {
		cur := stat(path)
		if cur != old {
			w.files[path] = cur
			dirty = true
		}
	}
	return dirty
}

func (w *watcher) paths() []string {
	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	return out
}
