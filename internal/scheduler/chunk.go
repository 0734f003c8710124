package scheduler

import "context"

// DefaultChunkSize is the configurable chunk size used when a caller
// doesn't specify its own, for editor requests (references, rename) whose
// result sets can otherwise grow unbounded across a large workspace.
const DefaultChunkSize = 64

// Chunk splits items into slices of at most size, preserving order. A
// size <= 0 falls back to DefaultChunkSize.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// EmitChunks calls emit once per chunk of items, stopping early if ctx is
// cancelled between chunks so a client that abandons a references/rename
// request doesn't pay for the remainder of a large workspace scan.
func EmitChunks[T any](ctx context.Context, items []T, size int, emit func([]T) error) error {
	for _, chunk := range Chunk(items, size) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := emit(chunk); err != nil {
			return err
		}
	}
	return nil
}
