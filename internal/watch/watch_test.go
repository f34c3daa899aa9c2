package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testOptions() Options {
	return Options{
		Debounce:     20 * time.Millisecond,
		PollInterval: 50 * time.Millisecond,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("callback was not called")
	}
}

func TestRun_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "deck.txt")
	writeFile(t, deck, "1 Card\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, []string{deck}, func(context.Context) ([]string, error) {
			calls <- struct{}{}
			return nil, nil
		}, testOptions())
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, deck, "2 Card\n")
	waitCall(t, calls)

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRun_IgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "deck.txt")
	writeFile(t, deck, "1 Card\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 10)
	go func() {
		_ = Run(ctx, []string{deck}, func(context.Context) ([]string, error) {
			calls <- struct{}{}
			return nil, nil
		}, testOptions())
	}()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated\n")

	select {
	case <-calls:
		t.Fatal("callback called for an untracked file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRun_TracksReturnedFiles(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "deck.txt")
	writeFile(t, deck, "1 Card\n")
	sub := filepath.Join(dir, "parts")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	include := filepath.Join(sub, "core.txt")
	writeFile(t, include, "1 Other\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 10)
	go func() {
		_ = Run(ctx, []string{deck}, func(context.Context) ([]string, error) {
			calls <- struct{}{}
			return []string{deck, include}, nil
		}, testOptions())
	}()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, deck, "1 Card\n[include:parts/core]\n")
	waitCall(t, calls)

	time.Sleep(100 * time.Millisecond)
	writeFile(t, include, "2 Other\n")
	waitCall(t, calls)
}

func TestWatcher_Changed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.txt")
	writeFile(t, path, "1 Card\n")

	w := &watcher{files: map[string]fileState{path: stat(path)}}
	if w.changed() {
		t.Error("changed() = true before any change")
	}

	writeFile(t, path, "1 Card plus more\n")
	if !w.changed() {
		t.Error("changed() = false after a size change")
	}
	if w.changed() {
		t.Error("changed() should update the snapshot")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if !w.changed() {
		t.Error("changed() = false after removal")
	}
}
