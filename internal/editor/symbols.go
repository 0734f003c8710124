package editor

import "github.com/aster-cloud/cnl/internal/index"

// WorkspaceSymbol is one fuzzy-search result, qualified by container.
type WorkspaceSymbol struct {
	Name          string
	Kind          index.SymbolKind
	ContainerName string
	Location      Location
}

// WorkspaceSymbols fuzzy-searches the index for query, returning
// qualified names, per §4.13.
func WorkspaceSymbols(idx *index.Index, query string) []WorkspaceSymbol {
	matches := idx.SearchSymbols(query)
	out := make([]WorkspaceSymbol, 0, len(matches))
	for _, m := range matches {
		out = append(out, WorkspaceSymbol{
			Name:          m.Symbol.Name,
			Kind:          m.Symbol.Kind,
			ContainerName: m.Symbol.ContainerName,
			Location:      Location{URI: m.Path, Range: FromOrigin(m.Symbol.Origin)},
		})
	}
	return out
}

// DocumentSymbol is one node of a document's declaration tree.
type DocumentSymbol struct {
	Name     string
	Kind     index.SymbolKind
	Range    Range
	Children []DocumentSymbol
}

// DocumentSymbols builds the declaration tree for path: top-level
// Func/Data/Enum/Import declarations, with Data's fields and Enum's
// variants nested as children, per §4.13 ("declaration tree of the
// current document").
func DocumentSymbols(idx *index.Index, path string) []DocumentSymbol {
	rec, ok := idx.Record(path)
	if !ok {
		return nil
	}

	var top []DocumentSymbol
	indexByName := make(map[string]int)

	for _, sym := range rec.Symbols {
		if sym.ContainerName != "" {
			continue // attached to its container below
		}
		top = append(top, DocumentSymbol{Name: sym.Name, Kind: sym.Kind, Range: FromOrigin(sym.Origin)})
		indexByName[sym.Name] = len(top) - 1
	}
	for _, sym := range rec.Symbols {
		if sym.ContainerName == "" {
			continue
		}
		i, ok := indexByName[sym.ContainerName]
		if !ok {
			continue
		}
		top[i].Children = append(top[i].Children, DocumentSymbol{Name: sym.Name, Kind: sym.Kind, Range: FromOrigin(sym.Origin)})
	}
	return top
}

// DocumentHighlight returns the occurrences of the identifier at pos
// within path. Since the index tracks declaration sites only, a
// position on a declaration highlights that single declaration; a
// position elsewhere highlights nothing.
func DocumentHighlight(idx *index.Index, path string, pos Position) []Range {
	sym, ok := symbolAtPosition(idx, path, pos)
	if !ok {
		return nil
	}
	return []Range{FromOrigin(sym.Origin)}
}
