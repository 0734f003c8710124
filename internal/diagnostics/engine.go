package diagnostics

// Engine is the per-document and workspace-wide diagnostics surface of
// §4.12: push (cache the result of an already-computed analysis and
// hand it back for sending) and pull (serve a cached result, or report
// a miss so the caller knows to recompute), plus workspace aggregation
// gated by a configuration flag.
type Engine struct {
	cache            Cache
	workspaceEnabled bool
}

// NewEngine creates an Engine over cache (nil defaults to an in-memory
// MemoryCache). workspaceEnabled gates WorkspaceDiagnostics per §4.12
// ("Workspace diagnostics ... gated by a configuration flag").
func NewEngine(cache Cache, workspaceEnabled bool) *Engine {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Engine{cache: cache, workspaceEnabled: workspaceEnabled}
}

// Push caches diags as the result for (uri, version) and returns them
// unchanged, for the caller to publish to the editor.
func (e *Engine) Push(uri string, version int, diags []Diagnostic) []Diagnostic {
	e.cache.Set(uri, version, diags)
	return diags
}

// Pull serves a cached diagnostic list for (uri, version). A miss means
// the caller must run the analysis pipeline and call Push.
func (e *Engine) Pull(uri string, version int) ([]Diagnostic, bool) {
	return e.cache.Get(uri, version)
}

// InvalidateDocument drops the cached entry for one document, per a
// document edit.
func (e *Engine) InvalidateDocument(uri string) {
	e.cache.Invalidate(uri)
}

// InvalidateDependents drops the cached entries for every document that
// imports a module whose source just changed.
func (e *Engine) InvalidateDependents(importers []string) {
	for _, uri := range importers {
		e.cache.Invalidate(uri)
	}
}

// InvalidateAll clears the whole cache, per a lexicon or locale change.
func (e *Engine) InvalidateAll() {
	e.cache.InvalidateAll()
}

// WorkspaceDiagnostics aggregates every indexed document's most
// recently cached diagnostics. It returns ok=false when workspace
// diagnostics are disabled, in which case the caller must not publish a
// workspace-wide report.
func (e *Engine) WorkspaceDiagnostics() (map[string][]Diagnostic, bool) {
	if !e.workspaceEnabled {
		return nil, false
	}
	return e.cache.Snapshot(), true
}
