package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_DetectsOverlayChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intro.yaml")
	if err := os.WriteFile(path, []byte("id: intro\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var changes atomic.Int32
	w, err := New(dir,
		WithDebounceDuration(30*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("id: intro\ntitle: Edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 3*time.Second, func() bool { return changes.Load() > 0 }) {
		t.Fatal("change not detected")
	}
}

func TestWatcher_IgnoresNonOverlayFiles(t *testing.T) {
	dir := t.TempDir()

	var changes atomic.Int32
	w, err := New(dir,
		WithDebounceDuration(30*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if n := changes.Load(); n != 0 {
		t.Errorf("expected no change for non-overlay file, got %d", n)
	}
}

func TestWatcher_PollingMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topic.yml")
	if err := os.WriteFile(path, []byte("id: a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var changes atomic.Int32
	w, err := New(dir,
		WithForcePoll(true),
		WithPollInterval(30*time.Millisecond),
		WithDebounceDuration(20*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling mode when forced")
	}

	// Rewrite with different size so the poll comparison fires even on
	// coarse mtime filesystems.
	if err := os.WriteFile(path, []byte("id: a\ntitle: Longer\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 3*time.Second, func() bool { return changes.Load() > 0 }) {
		t.Fatal("polling change not detected")
	}
}

func TestWatcher_ChangedChannel(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, WithDebounceDuration(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "new.yaml"), []byte("id: new\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changed():
	case <-time.After(3 * time.Second):
		t.Fatal("no signal on Changed channel")
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("second Start: got %v, want ErrAlreadyStarted", err)
	}
}

func TestWatcher_MissingDirIsOK(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "does-not-exist-yet"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start on missing dir: %v", err)
	}
	w.Stop()
	if w.IsStarted() {
		t.Error("watcher still reports started after Stop")
	}
}
