package editor

import (
	"github.com/aster-cloud/cnl/internal/index"
)

// positionInRange mirrors the teacher's tooling.positionInRange: a
// position is in range if it falls within [Start, End] inclusive on
// both ends (a cursor resting exactly on the closing character of an
// identifier still counts as "on" it).
func positionInRange(pos Position, r Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character > r.End.Character {
		return false
	}
	return true
}

// symbolAtPosition finds the declaration-site symbol in path's index
// record whose range contains pos, if any. This only resolves a
// position sitting directly on a declaration (a parameter name, a data
// field, a function name, ...); it does not resolve a position on a
// reference to that declaration inside a function body, since the
// index records declarations only — the same granularity the teacher's
// own symbol index operates at.
func symbolAtPosition(idx *index.Index, path string, pos Position) (*index.Symbol, bool) {
	rec, ok := idx.Record(path)
	if !ok {
		return nil, false
	}
	for _, sym := range rec.Symbols {
		if positionInRange(pos, FromOrigin(sym.Origin)) {
			return sym, true
		}
	}
	return nil, false
}

// SymbolAt resolves the declaration-site symbol under pos in path, for
// callers (hover, code actions) that need the full index.Symbol rather
// than just a location or a name.
func SymbolAt(idx *index.Index, path string, pos Position) (*index.Symbol, bool) {
	return symbolAtPosition(idx, path, pos)
}

// Definition resolves a position to its declaration: first a local
// declaration directly under the cursor, falling back to a workspace-
// wide lookup by name (the module-index entry) when nothing in this
// file matches, per §4.13 ("or, if unresolvable locally, to a
// module-index entry").
func Definition(idx *index.Index, path string, pos Position, name string) (Location, bool) {
	if sym, ok := symbolAtPosition(idx, path, pos); ok {
		return Location{URI: path, Range: FromOrigin(sym.Origin)}, true
	}
	sym, defPath, ok := idx.FindDefinition(name)
	if !ok {
		return Location{}, false
	}
	return Location{URI: defPath, Range: FromOrigin(sym.Origin)}, true
}

// References returns every declaration site for name across the
// workspace. Usage-site references are out of scope (see index's
// FindReferences doc comment); callers wanting "references" in the
// everyday sense should treat this as the set of places name is
// declared, which for a CNL module is exactly the set of places an
// editor needs to jump between when multiple overloads/shadows exist.
func References(idx *index.Index, name string) []Location {
	locs := idx.FindReferences(name)
	out := make([]Location, 0, len(locs))
	for _, l := range locs {
		out = append(out, Location{URI: l.Path, Range: FromOrigin(l.Symbol.Origin)})
	}
	return out
}

// PrepareRename returns the precise identifier range and a placeholder
// name for a rename starting at pos, or ok=false if pos does not name a
// renameable declaration.
func PrepareRename(idx *index.Index, path string, pos Position) (Range, string, bool) {
	sym, ok := symbolAtPosition(idx, path, pos)
	if !ok {
		return Range{}, "", false
	}
	return FromOrigin(sym.Origin), sym.Name, true
}

// TextEdit is one replacement within a document.
type TextEdit struct {
	Range   Range
	NewText string
}

// Rename produces the edits needed to rename every declaration of name
// to newName. Like References, this only reaches declaration sites.
func Rename(idx *index.Index, name, newName string) map[string][]TextEdit {
	edits := make(map[string][]TextEdit)
	for _, l := range idx.FindReferences(name) {
		edits[l.Path] = append(edits[l.Path], TextEdit{Range: FromOrigin(l.Symbol.Origin), NewText: newName})
	}
	return edits
}
