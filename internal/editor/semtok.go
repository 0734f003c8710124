package editor

import (
	"sort"

	"github.com/aster-cloud/cnl/internal/index"
)

// SemanticTokenTypes is the fixed legend advertised at initialize time,
// in the order every encoded token type index refers to (§3.15:
// "semantic tokens (legend fixed at initialize, delta-encoded)").
var SemanticTokenTypes = []string{
	"namespace", // index.SymbolKindImport
	"struct",    // index.SymbolKindData
	"property",  // index.SymbolKindField
	"enum",      // index.SymbolKindEnum
	"enumMember",
	"function",
}

const (
	semanticTypeNamespace = iota
	semanticTypeStruct
	semanticTypeProperty
	semanticTypeEnum
	semanticTypeEnumMember
	semanticTypeFunction
)

func semanticTypeFor(kind index.SymbolKind) (uint32, bool) {
	switch kind {
	case index.SymbolKindImport:
		return semanticTypeNamespace, true
	case index.SymbolKindData:
		return semanticTypeStruct, true
	case index.SymbolKindField:
		return semanticTypeProperty, true
	case index.SymbolKindEnum:
		return semanticTypeEnum, true
	case index.SymbolKindEnumVariant:
		return semanticTypeEnumMember, true
	case index.SymbolKindFunc:
		return semanticTypeFunction, true
	default:
		return 0, false
	}
}

// SemanticTokens encodes path's declaration-site symbols as an LSP
// semanticTokens/full response body: five uint32s per token
// (deltaLine, deltaStartChar, length, tokenType, tokenModifiers),
// sorted by position before delta-encoding. Only declaration sites are
// tokenized, not every identifier occurrence, for the same reason
// References is declaration-site only (see [[internal-index]]).
func SemanticTokens(idx *index.Index, path string) []uint32 {
	rec, ok := idx.Record(path)
	if !ok {
		return nil
	}

	type tok struct {
		r       Range
		semType uint32
		nameLen int
	}
	var toks []tok
	for _, sym := range rec.Symbols {
		semType, ok := semanticTypeFor(sym.Kind)
		if !ok {
			continue
		}
		r := FromOrigin(sym.Origin)
		if r.Start.Line != r.End.Line {
			continue
		}
		toks = append(toks, tok{r: r, semType: semType, nameLen: len(sym.Name)})
	}

	sort.Slice(toks, func(i, j int) bool {
		if toks[i].r.Start.Line != toks[j].r.Start.Line {
			return toks[i].r.Start.Line < toks[j].r.Start.Line
		}
		return toks[i].r.Start.Character < toks[j].r.Start.Character
	})

	var encoded []uint32
	var prevLine, prevCol uint32
	for _, t := range toks {
		line := uint32(t.r.Start.Line)
		col := uint32(t.r.Start.Character)
		deltaLine := line - prevLine
		deltaCol := col
		if deltaLine == 0 {
			deltaCol = col - prevCol
		}
		length := uint32(t.r.End.Character - t.r.Start.Character)
		if length == 0 {
			length = uint32(t.nameLen)
		}
		encoded = append(encoded, deltaLine, deltaCol, length, t.semType, 0)
		prevLine, prevCol = line, col
	}
	return encoded
}
