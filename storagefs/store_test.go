package storagefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndPath(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	name, err := store.Save([]byte("payload"), "image/png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("expected .png suffix, got %q", name)
	}

	path, err := store.Path(name)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("stored content mismatch: %q", data)
	}
}

func TestSaveUnknownMimeFallsBackToJpg(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	name, err := store.Save([]byte("x"), "application/octet-stream")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("expected .jpg suffix, got %q", name)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	a, _ := store.Save([]byte("a"), "image/jpeg")
	b, _ := store.Save([]byte("b"), "image/jpeg")
	if a == b {
		t.Errorf("expected unique filenames, got %q twice", a)
	}
}

func TestPathAcceptsBaseDirPrefix(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	name, err := store.Save([]byte("payload"), "image/jpeg")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	bare, err := store.Path(name)
	if err != nil {
		t.Fatalf("Path(%q): %v", name, err)
	}
	prefixed, err := store.Path("uploads/" + name)
	if err != nil {
		t.Fatalf("Path(uploads/%s): %v", name, err)
	}
	if bare != prefixed {
		t.Errorf("prefixed name resolved to %q, bare to %q", prefixed, bare)
	}
	data, err := os.ReadFile(prefixed)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("stored content mismatch: %q", data)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	for _, name := range []string{"../secret", "a/b.jpg", "..", "."} {
		if _, err := store.Path(name); err == nil {
			t.Errorf("Path(%q): expected error", name)
		}
	}
	if _, err := store.Path(filepath.Base("ok.jpg")); err != nil {
		t.Errorf("Path(ok.jpg): %v", err)
	}
}
