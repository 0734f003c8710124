package index

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// IndexRecord is one file's contribution to the workspace index.
type IndexRecord struct {
	ID         string
	Path       string
	ModuleName string
	Hash       string
	Symbols    []*Symbol
	UpdatedAt  time.Time
}

// ShadowWarning reports two files declaring the same module name, per
// §6 ("shadowing is a warning").
type ShadowWarning struct {
	ModuleName string
	Paths      []string
}

// Index is the in-memory cross-module workspace index. It is safe for
// concurrent use, mirroring the teacher's SymbolIndex mutex discipline.
type Index struct {
	mu        sync.RWMutex
	byPath    map[string]*IndexRecord
	byModule  map[string][]string // module name -> paths declaring it
	byName    map[string][]*Symbol
	pathOfSym map[string]string // symbol ID -> owning path
}

// New creates an empty workspace index.
func New() *Index {
	return &Index{
		byPath:    make(map[string]*IndexRecord),
		byModule:  make(map[string][]string),
		byName:    make(map[string][]*Symbol),
		pathOfSym: make(map[string]string),
	}
}

// Update replaces a file's entry in the index with freshly extracted
// symbols from its Core module, returning the new record and any
// module-name shadowing this update introduces.
func (idx *Index) Update(path string, mod *core.Module, hash string) (*IndexRecord, *ShadowWarning) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.removeLocked(path)

	rec := &IndexRecord{
		ID:         uuid.NewString(),
		Path:       path,
		ModuleName: mod.Name,
		Hash:       hash,
		Symbols:    extractSymbols(mod, uuid.NewString),
		UpdatedAt:  time.Now(),
	}
	idx.byPath[path] = rec

	for _, sym := range rec.Symbols {
		idx.byName[sym.Name] = append(idx.byName[sym.Name], sym)
		idx.pathOfSym[sym.ID] = path
	}

	var warn *ShadowWarning
	if mod.Name != "" {
		idx.byModule[mod.Name] = append(idx.byModule[mod.Name], path)
		if paths := idx.byModule[mod.Name]; len(paths) > 1 {
			warn = &ShadowWarning{ModuleName: mod.Name, Paths: append([]string(nil), paths...)}
		}
	}
	return rec, warn
}

// Remove drops a file's entry from the index.
func (idx *Index) Remove(path string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeLocked(path)
}

func (idx *Index) removeLocked(path string) {
	old, ok := idx.byPath[path]
	if !ok {
		return
	}
	delete(idx.byPath, path)

	if old.ModuleName != "" {
		idx.byModule[old.ModuleName] = removePath(idx.byModule[old.ModuleName], path)
		if len(idx.byModule[old.ModuleName]) == 0 {
			delete(idx.byModule, old.ModuleName)
		}
	}

	for _, sym := range old.Symbols {
		existing := idx.byName[sym.Name]
		filtered := make([]*Symbol, 0, len(existing))
		for _, s := range existing {
			if s.ID != sym.ID {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) > 0 {
			idx.byName[sym.Name] = filtered
		} else {
			delete(idx.byName, sym.Name)
		}
		delete(idx.pathOfSym, sym.ID)
	}
}

func removePath(paths []string, target string) []string {
	out := paths[:0]
	for _, p := range paths {
		if p != target {
			out = append(out, p)
		}
	}
	return out
}

// Record returns the current entry for a file, if any.
func (idx *Index) Record(path string) (*IndexRecord, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	rec, ok := idx.byPath[path]
	return rec, ok
}

// Records returns every current file entry, unordered.
func (idx *Index) Records() []*IndexRecord {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]*IndexRecord, 0, len(idx.byPath))
	for _, rec := range idx.byPath {
		out = append(out, rec)
	}
	return out
}

// ResolveModule resolves a dotted module name to the file declaring it,
// per §6. When more than one file declares the same module name, the
// first indexed file wins; callers should already have surfaced the
// ShadowWarning returned by Update.
func (idx *Index) ResolveModule(name string) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	paths, ok := idx.byModule[name]
	if !ok || len(paths) == 0 {
		return "", false
	}
	return paths[0], true
}

// FindDefinition returns the declaration-site symbol for a name, if a
// Func or Data/Enum declaration exports it; fields and variants are
// preferred only when no top-level declaration matches.
func (idx *Index) FindDefinition(name string) (*Symbol, string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	syms, ok := idx.byName[name]
	if !ok || len(syms) == 0 {
		return nil, "", false
	}
	for _, sym := range syms {
		if sym.Kind == SymbolKindFunc || sym.Kind == SymbolKindData || sym.Kind == SymbolKindEnum {
			return sym, idx.pathOf(sym), true
		}
	}
	return syms[0], idx.pathOf(syms[0]), true
}

// FindReferences returns every indexed declaration site for a name.
// Usage-site references are out of scope: the index only tracks
// declarations, matching the teacher's own FindReferences behavior.
func (idx *Index) FindReferences(name string) []SymbolLocation {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	syms := idx.byName[name]
	out := make([]SymbolLocation, 0, len(syms))
	for _, sym := range syms {
		out = append(out, SymbolLocation{Path: idx.pathOf(sym), Symbol: sym})
	}
	return out
}

// SearchSymbols does a case-insensitive substring search across every
// indexed symbol name.
func (idx *Index) SearchSymbols(query string) []SymbolLocation {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	query = strings.ToLower(query)
	var out []SymbolLocation
	for name, syms := range idx.byName {
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		for _, sym := range syms {
			out = append(out, SymbolLocation{Path: idx.pathOf(sym), Symbol: sym})
		}
	}
	return out
}

// pathOf finds which file owns a symbol. Callers hold idx.mu already.
func (idx *Index) pathOf(sym *Symbol) string {
	return idx.pathOfSym[sym.ID]
}

// SymbolLocation pairs a symbol with the file path it was indexed from.
type SymbolLocation struct {
	Path   string
	Symbol *Symbol
}

// Size returns the number of indexed files.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.byPath)
}
