// Package editor provides the navigation and editor-service request set
// of §4.13 (definition, references, rename, hover, workspace/document
// symbols, document highlight) over the cached parse/typecheck
// artifacts produced by internal/cache and internal/index. It
// generalizes internal/tooling (api.go, hover.go, symbols.go,
// completion.go) from single-document answers to a cross-module,
// index-backed service.
package editor

import "github.com/aster-cloud/cnl/internal/compiler/core"

// Position is a zero-based line/character position, matching LSP
// convention (distinct from core.Origin's 1-based line/column).
type Position struct {
	Line      int
	Character int
}

// Range is a half-open [Start, End) span in a document.
type Range struct {
	Start Position
	End   Position
}

// Location names a file and a range within it.
type Location struct {
	URI   string
	Range Range
}

// FromOrigin converts a 1-based core.Origin into a zero-based Range.
func FromOrigin(orig core.Origin) Range {
	return Range{
		Start: Position{Line: max0(orig.StartLine - 1), Character: max0(orig.StartColumn - 1)},
		End:   Position{Line: max0(orig.EndLine - 1), Character: max0(orig.EndColumn - 1)},
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
