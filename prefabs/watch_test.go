package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	level := filepath.Join(dir, "level.txt")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(level, []byte("&@"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(level)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(level, []byte("&.@"), 0o644); err != nil {
		t.Fatal(err)
	}

	want, err := filepath.Abs(level)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-w.Events:
		if got != want {
			t.Fatalf("expected event for %s, got %s", want, got)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for change event")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "game.yaml"))
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("expected events channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel was not closed")
	}
}

func TestIsSpecFile(t *testing.T) {
	if !IsSpecFile("prefabs/game.yaml") || !IsSpecFile("x.yml") {
		t.Fatalf("expected yaml files to be spec files")
	}
	if IsSpecFile("levels/level.txt") {
		t.Fatalf("level file is not a spec file")
	}
}
