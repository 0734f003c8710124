package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileHasher_HashContentIsDeterministic(t *testing.T) {
	h := NewFileHasher()
	a := h.HashContent([]byte("module billing."))
	b := h.HashContent([]byte("module billing."))
	if a != b {
		t.Fatalf("expected identical content to hash identically, got %s vs %s", a, b)
	}
}

func TestFileHasher_HashContentDiffersOnChange(t *testing.T) {
	h := NewFileHasher()
	a := h.HashContent([]byte("module billing."))
	b := h.HashContent([]byte("module invoicing."))
	if a == b {
		t.Fatalf("expected different content to hash differently")
	}
}

func TestFileHasher_HashFileMatchesHashContent(t *testing.T) {
	h := NewFileHasher()
	dir := t.TempDir()
	path := filepath.Join(dir, "billing.cnl")
	content := []byte("module billing.\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	fileHash, err := h.HashFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fileHash != h.HashContent(content) {
		t.Fatalf("expected HashFile to match HashContent")
	}
}
