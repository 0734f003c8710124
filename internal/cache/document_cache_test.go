package cache

import (
	"testing"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

func TestDocumentCache_SetThenGetReturnsModule(t *testing.T) {
	dc := NewDocumentCache(nil)
	mod := &core.Module{Name: "billing"}
	dc.Set("billing.cnl", mod, nil, "hash1")

	got, ok := dc.Get("billing.cnl")
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if got.Module.Name != "billing" {
		t.Fatalf("expected the cached module to round-trip, got %+v", got.Module)
	}
}

func TestDocumentCache_GetByHashSurvivesRename(t *testing.T) {
	dc := NewDocumentCache(nil)
	mod := &core.Module{Name: "billing"}
	dc.Set("old/billing.cnl", mod, nil, "hash1")

	got, ok := dc.GetByHash("hash1")
	if !ok || got.Module.Name != "billing" {
		t.Fatalf("expected GetByHash to find the renamed file's entry")
	}
}

func TestDocumentCache_InvalidateAllClearsEverything(t *testing.T) {
	dc := NewDocumentCache(nil)
	dc.Set("a.cnl", &core.Module{Name: "a"}, nil, "h1")
	dc.Set("b.cnl", &core.Module{Name: "b"}, nil, "h2")
	dc.InvalidateAll()
	if dc.Size() != 0 {
		t.Fatalf("expected an empty cache, got size %d", dc.Size())
	}
}
