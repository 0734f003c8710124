package scheduler

import (
	"context"
	"errors"
	"testing"
)

func TestChunk_SplitsIntoBoundedGroupsPreservingOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	chunks := Chunk(items, 3)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 3 || len(chunks[1]) != 3 || len(chunks[2]) != 1 {
		t.Fatalf("unexpected chunk sizes: %+v", chunks)
	}
	if chunks[2][0] != 7 {
		t.Fatalf("expected the final chunk to contain the last item, got %+v", chunks[2])
	}
}

func TestChunk_EmptyInputProducesNoChunks(t *testing.T) {
	if chunks := Chunk[int](nil, 10); chunks != nil {
		t.Fatalf("expected no chunks for empty input, got %+v", chunks)
	}
}

func TestChunk_NonPositiveSizeFallsBackToDefault(t *testing.T) {
	items := make([]int, DefaultChunkSize+1)
	chunks := Chunk(items, 0)
	if len(chunks) != 2 {
		t.Fatalf("expected the default chunk size to produce 2 chunks, got %d", len(chunks))
	}
}

func TestEmitChunks_CallsEmitOncePerChunk(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	var seen [][]int
	err := EmitChunks(context.Background(), items, 2, func(chunk []int) error {
		seen = append(seen, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 emitted chunks, got %d", len(seen))
	}
}

func TestEmitChunks_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []int{1, 2, 3}
	called := 0
	err := EmitChunks(ctx, items, 1, func(chunk []int) error {
		called++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called != 0 {
		t.Fatalf("expected no chunks to be emitted once the context is cancelled, got %d calls", called)
	}
}

func TestEmitChunks_PropagatesEmitError(t *testing.T) {
	items := []int{1, 2, 3}
	sentinel := errors.New("emit failed")
	calls := 0
	err := EmitChunks(context.Background(), items, 1, func(chunk []int) error {
		calls++
		if calls == 2 {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected the sentinel error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected emit to stop after the failing chunk, got %d calls", calls)
	}
}
