package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	if err := store.Set("session-1", []byte(`{"messages":[]}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, err := store.Get("session-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != `{"messages":[]}` {
		t.Fatalf("Get = %q", data)
	}
}

func TestLocalStoreMissingKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	data, err := store.Get("never-written")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if data != nil {
		t.Fatalf("Get = %q, want nil", data)
	}
}

func TestLocalStoreOverwriteAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	store.Set("k", []byte("one"))
	store.Set("k", []byte("two"))
	data, _ := store.Get("k")
	if string(data) != "two" {
		t.Fatalf("Get after overwrite = %q, want two", data)
	}

	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if data, _ := store.Get("k"); data != nil {
		t.Fatalf("Get after delete = %q, want nil", data)
	}
	if err := store.Delete("k"); err != nil {
		t.Fatalf("deleting a missing key should be a no-op, got %v", err)
	}

	// No stray temp files left behind.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
