package progressdb

import (
	"path/filepath"
	"testing"
)

func TestOpenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "progress.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.SetCompleted("intro", true); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}
	if err := store.SetCompleted("sensors", true); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}
	// Flip one back off via upsert.
	if err := store.SetCompleted("sensors", false); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}

	progress, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !progress["intro"] {
		t.Error("intro not marked completed")
	}
	if progress["sensors"] {
		t.Error("sensors should have been toggled back off")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.SetCompleted("capstone", true); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	progress, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if !progress["capstone"] {
		t.Error("progress lost across reopen")
	}
}

func TestReset(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.SetCompleted("intro", true); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	progress, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if progress.Completed() != 0 {
		t.Errorf("expected empty progress after reset, got %d completed", progress.Completed())
	}
}

func TestNilStoreIsNoOp(t *testing.T) {
	var store *Store

	if err := store.SetCompleted("intro", true); err != nil {
		t.Errorf("nil store SetCompleted: %v", err)
	}
	progress, err := store.Load()
	if err != nil {
		t.Errorf("nil store Load: %v", err)
	}
	if len(progress) != 0 {
		t.Errorf("nil store returned progress: %v", progress)
	}
	if err := store.Close(); err != nil {
		t.Errorf("nil store Close: %v", err)
	}
}
