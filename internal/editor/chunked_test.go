package editor

import (
	"context"
	"testing"
)

func TestReferencesChunked_EmitsAllResultsInBatches(t *testing.T) {
	idx, _ := indexed(t)

	var all []Location
	err := ReferencesChunked(context.Background(), idx, "Invoice", 1, func(batch []Location) error {
		all = append(all, batch...)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 || all[0].URI != "billing.cnl" {
		t.Fatalf("expected one reference for Invoice, got %+v", all)
	}
}

func TestRenameChunked_EmitsFlattenedEditsInBatches(t *testing.T) {
	idx, _ := indexed(t)

	var all []FileEdit
	err := RenameChunked(context.Background(), idx, "Invoice", "Bill", 1, func(batch []FileEdit) error {
		all = append(all, batch...)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 || all[0].Path != "billing.cnl" || all[0].Edit.NewText != "Bill" {
		t.Fatalf("expected one flattened rename edit, got %+v", all)
	}
}

func TestReferencesChunked_StopsOnCancelledContext(t *testing.T) {
	idx, _ := indexed(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := ReferencesChunked(ctx, idx, "Invoice", 1, func(batch []Location) error {
		calls++
		return nil
	})
	if err == nil {
		t.Fatalf("expected a cancellation error")
	}
	if calls != 0 {
		t.Fatalf("expected no batches to be emitted once cancelled, got %d", calls)
	}
}
