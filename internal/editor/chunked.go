package editor

import (
	"context"

	"github.com/aster-cloud/cnl/internal/index"
	"github.com/aster-cloud/cnl/internal/scheduler"
)

// ReferencesChunked behaves like References but emits results in batches
// of at most chunkSize, stopping early if ctx is cancelled between
// batches — so a client that abandons a references request over a large
// workspace doesn't pay for the remainder of the scan (§3.15: "references
// (chunked, cancellable)").
func ReferencesChunked(ctx context.Context, idx *index.Index, name string, chunkSize int, emit func([]Location) error) error {
	locs := References(idx, name)
	return scheduler.EmitChunks(ctx, locs, chunkSize, emit)
}

// FileEdit pairs a TextEdit with the file it applies to, the flattened
// shape RenameChunked emits in batches.
type FileEdit struct {
	Path string
	Edit TextEdit
}

// RenameChunked behaves like Rename but flattens the per-file edit map
// into a single ordered slice and emits it in batches of at most
// chunkSize, stopping early if ctx is cancelled.
func RenameChunked(ctx context.Context, idx *index.Index, name, newName string, chunkSize int, emit func([]FileEdit) error) error {
	byFile := Rename(idx, name, newName)
	flat := make([]FileEdit, 0, len(byFile))
	for path, edits := range byFile {
		for _, e := range edits {
			flat = append(flat, FileEdit{Path: path, Edit: e})
		}
	}
	return scheduler.EmitChunks(ctx, flat, chunkSize, emit)
}
