// Package cache provides incremental-diagnostics caching: content
// hashing, a document/diagnostics cache, import-dependency tracking for
// invalidation fan-out, and a coordinator that re-runs the analysis
// pipeline only for files whose content or dependents actually changed.
package cache

import (
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// FileHasher computes content hashes used as cache keys.
type FileHasher struct{}

// NewFileHasher creates a new file hasher.
func NewFileHasher() *FileHasher {
	return &FileHasher{}
}

// HashFile computes a blake2b-256 hash of the file contents.
func (fh *FileHasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// HashContent computes a blake2b-256 hash of the given content.
func (fh *FileHasher) HashContent(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// HashString computes a blake2b-256 hash of the given string.
func (fh *FileHasher) HashString(content string) string {
	return fh.HashContent([]byte(content))
}
