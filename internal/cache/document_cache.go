package cache

import (
	"time"

	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// CachedDocument is one file's last successful analysis: its lowered
// Core module plus the diagnostics every pass produced for it.
type CachedDocument struct {
	Module      *core.Module
	Diagnostics []diagnostics.Diagnostic
	Hash        string
	Path        string
	CachedAt    time.Time
	LastChecked time.Time
}

// DocumentCache is an in-process cache of per-file analysis results,
// backed by a pluggable Store for persistence across process restarts.
type DocumentCache struct {
	store Store
}

// NewDocumentCache creates a DocumentCache over store. A nil store
// defaults to an in-memory, non-persistent Store.
func NewDocumentCache(store Store) *DocumentCache {
	if store == nil {
		store = NewMemoryStore()
	}
	return &DocumentCache{store: store}
}

// Get retrieves a cached document by file path.
func (dc *DocumentCache) Get(path string) (*CachedDocument, bool) {
	return dc.store.Get(path)
}

// GetByHash retrieves a cached document by content hash, used to serve a
// cache hit when a file was moved or renamed without its content changing.
func (dc *DocumentCache) GetByHash(hash string) (*CachedDocument, bool) {
	return dc.store.GetByHash(hash)
}

// Set stores a document's analysis result in the cache.
func (dc *DocumentCache) Set(path string, mod *core.Module, diags []diagnostics.Diagnostic, hash string) {
	now := time.Now()
	dc.store.Set(path, &CachedDocument{
		Module:      mod,
		Diagnostics: diags,
		Hash:        hash,
		Path:        path,
		CachedAt:    now,
		LastChecked: now,
	})
}

// Invalidate removes an entry from the cache.
func (dc *DocumentCache) Invalidate(path string) {
	dc.store.Invalidate(path)
}

// InvalidateAll clears the entire cache.
func (dc *DocumentCache) InvalidateAll() {
	dc.store.InvalidateAll()
}

// Size returns the number of cached entries.
func (dc *DocumentCache) Size() int {
	return dc.store.Size()
}

// Prune removes entries that haven't been checked in the given duration.
func (dc *DocumentCache) Prune(maxAge time.Duration) int {
	return dc.store.Prune(maxAge)
}
