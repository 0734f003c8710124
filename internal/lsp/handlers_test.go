package lsp

import (
	"testing"

	"github.com/aster-cloud/cnl/internal/editor"
	"github.com/aster-cloud/cnl/internal/index"
	"go.lsp.dev/protocol"
)

func TestConvertSymbolKind(t *testing.T) {
	tests := []struct {
		name     string
		input    index.SymbolKind
		expected protocol.SymbolKind
	}{
		{"Func", index.SymbolKindFunc, protocol.SymbolKindFunction},
		{"Data", index.SymbolKindData, protocol.SymbolKindStruct},
		{"Field", index.SymbolKindField, protocol.SymbolKindField},
		{"Enum", index.SymbolKindEnum, protocol.SymbolKindEnum},
		{"EnumVariant", index.SymbolKindEnumVariant, protocol.SymbolKindEnumMember},
		{"Import", index.SymbolKindImport, protocol.SymbolKindNamespace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := convertSymbolKind(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestToProtocolRangeRoundTrips(t *testing.T) {
	r := editor.Range{
		Start: editor.Position{Line: 2, Character: 4},
		End:   editor.Position{Line: 2, Character: 9},
	}
	back := toEditorRange(toProtocolRange(r))
	if back != r {
		t.Errorf("expected round trip to preserve range, got %+v", back)
	}
}

func TestRangesOverlap_AdjacentLinesDoNotOverlap(t *testing.T) {
	a := editor.Range{Start: editor.Position{Line: 0, Character: 0}, End: editor.Position{Line: 0, Character: 5}}
	b := editor.Range{Start: editor.Position{Line: 1, Character: 0}, End: editor.Position{Line: 1, Character: 5}}
	if rangesOverlap(a, b) {
		t.Error("expected ranges on different lines not to overlap")
	}
}

func TestRangesOverlap_SharedLineWithinBoundsOverlaps(t *testing.T) {
	a := editor.Range{Start: editor.Position{Line: 0, Character: 0}, End: editor.Position{Line: 0, Character: 10}}
	b := editor.Range{Start: editor.Position{Line: 0, Character: 3}, End: editor.Position{Line: 0, Character: 6}}
	if !rangesOverlap(a, b) {
		t.Error("expected a request range nested in a diagnostic's range to overlap")
	}
}

func TestHandleHover(t *testing.T) {
	// Direct testing of private handlers requires embedding jsonrpc2
	// infrastructure; covered by server_test.go's capability assertions
	// and the editor package's own hover tests.
	t.Skip("covered by internal/editor's hover tests")
}

func TestHandleDefinition(t *testing.T) {
	t.Skip("covered by internal/editor's navigation tests")
}

func TestHandleReferences(t *testing.T) {
	t.Skip("covered by internal/editor's chunked references tests")
}

func TestHandleDocumentSymbol(t *testing.T) {
	t.Skip("covered by internal/editor's symbols tests")
}

func TestHandleWorkspaceSymbol(t *testing.T) {
	t.Skip("covered by internal/editor's symbols tests")
}
