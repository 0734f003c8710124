package editor

import (
	"testing"

	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
	"github.com/aster-cloud/cnl/internal/compiler/lowering"
	"github.com/aster-cloud/cnl/internal/compiler/parser"
	"github.com/aster-cloud/cnl/internal/index"
)

func compile(t *testing.T, path, source string) *core.Module {
	t.Helper()
	l := lexer.New(source, lexicon.EnglishUS)
	tokens, lexErrors := l.ScanTokens()
	if len(lexErrors) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrors)
	}
	mod, parseErrors := parser.New(tokens, lexicon.EnglishUS).Parse()
	if len(parseErrors) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrors)
	}
	coreMod, lowerDiags := lowering.Lower(mod, path)
	if len(lowerDiags) != 0 {
		t.Fatalf("unexpected lowering diagnostics: %v", lowerDiags)
	}
	return coreMod
}

const billingSource = `module billing.

define Invoice with amount as float, customer as text.

to total given invoice as Invoice, produce float: {
  return invoice.amount.
}
`

func indexed(t *testing.T) (*index.Index, *core.Module) {
	mod := compile(t, "billing.cnl", billingSource)
	idx := index.New()
	idx.Update("billing.cnl", mod, "hash1")
	return idx, mod
}

func funcDecl(mod *core.Module, name string) *core.Func {
	for _, d := range mod.Decls {
		if fn, ok := d.(*core.Func); ok && fn.Name == name {
			return fn
		}
	}
	return nil
}

func dataDecl(mod *core.Module, name string) *core.Data {
	for _, d := range mod.Decls {
		if data, ok := d.(*core.Data); ok && data.Name == name {
			return data
		}
	}
	return nil
}

func TestDefinition_FindsDeclarationAtPosition(t *testing.T) {
	idx, mod := indexed(t)
	fn := funcDecl(mod, "total")
	pos := FromOrigin(fn.Orig).Start

	loc, ok := Definition(idx, "billing.cnl", pos, "total")
	if !ok || loc.URI != "billing.cnl" {
		t.Fatalf("expected to resolve total's declaration, got %+v ok=%v", loc, ok)
	}
}

func TestDefinition_FallsBackToModuleIndexByName(t *testing.T) {
	idx, _ := indexed(t)

	// A position with nothing declared there (inside the file, past any
	// decl's range) should fall back to a name-based workspace lookup.
	loc, ok := Definition(idx, "billing.cnl", Position{Line: 999, Character: 0}, "Invoice")
	if !ok || loc.URI != "billing.cnl" {
		t.Fatalf("expected the fallback lookup to find Invoice, got %+v ok=%v", loc, ok)
	}
}

func TestDefinition_UnknownNameIsUnresolved(t *testing.T) {
	idx, _ := indexed(t)
	if _, ok := Definition(idx, "billing.cnl", Position{Line: 999, Character: 0}, "Nonexistent"); ok {
		t.Fatalf("expected an unresolvable name to fail")
	}
}

func TestReferences_ReturnsDeclarationSite(t *testing.T) {
	idx, _ := indexed(t)
	refs := References(idx, "Invoice")
	if len(refs) != 1 || refs[0].URI != "billing.cnl" {
		t.Fatalf("expected one reference for Invoice, got %+v", refs)
	}
}

func TestPrepareRename_RejectsPositionOffAnyDeclaration(t *testing.T) {
	idx, _ := indexed(t)
	if _, _, ok := PrepareRename(idx, "billing.cnl", Position{Line: 999, Character: 0}); ok {
		t.Fatalf("expected prepareRename to reject a position naming nothing")
	}
}

func TestPrepareRename_AcceptsPositionOnDeclaration(t *testing.T) {
	idx, mod := indexed(t)
	data := dataDecl(mod, "Invoice")
	pos := FromOrigin(data.Orig).Start

	r, placeholder, ok := PrepareRename(idx, "billing.cnl", pos)
	if !ok || placeholder != "Invoice" {
		t.Fatalf("expected to prepare a rename for Invoice, got range=%+v placeholder=%q ok=%v", r, placeholder, ok)
	}
}

func TestRename_ProducesOneEditPerDeclarationSite(t *testing.T) {
	idx, _ := indexed(t)
	edits := Rename(idx, "Invoice", "Bill")
	fileEdits, ok := edits["billing.cnl"]
	if !ok || len(fileEdits) != 1 || fileEdits[0].NewText != "Bill" {
		t.Fatalf("expected one rename edit in billing.cnl, got %+v", edits)
	}
}

func TestWorkspaceSymbols_FuzzyMatchesAcrossTheIndex(t *testing.T) {
	idx, _ := indexed(t)
	results := WorkspaceSymbols(idx, "voic")
	found := false
	for _, r := range results {
		if r.Name == "Invoice" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a fuzzy match for Invoice, got %+v", results)
	}
}

func TestDocumentSymbols_NestsFieldsUnderData(t *testing.T) {
	idx, _ := indexed(t)
	tree := DocumentSymbols(idx, "billing.cnl")

	var invoice *DocumentSymbol
	for i := range tree {
		if tree[i].Name == "Invoice" {
			invoice = &tree[i]
		}
	}
	if invoice == nil {
		t.Fatalf("expected a top-level Invoice symbol, got %+v", tree)
	}
	if len(invoice.Children) != 2 {
		t.Fatalf("expected Invoice to have 2 field children, got %+v", invoice.Children)
	}
}

func TestDocumentHighlight_MatchesOnlyAtDeclaration(t *testing.T) {
	idx, mod := indexed(t)
	fn := funcDecl(mod, "total")
	pos := FromOrigin(fn.Orig).Start

	highlights := DocumentHighlight(idx, "billing.cnl", pos)
	if len(highlights) != 1 {
		t.Fatalf("expected one highlight at total's declaration, got %+v", highlights)
	}

	if h := DocumentHighlight(idx, "billing.cnl", Position{Line: 999, Character: 0}); len(h) != 0 {
		t.Fatalf("expected no highlight at an empty position, got %+v", h)
	}
}

func TestHoverForFunc_RendersSignatureWithEffects(t *testing.T) {
	mod := compile(t, "billing.cnl", `module billing.
to total given amount as float, produce float, performs cpu: {
  return amount.
}
`)
	fn := funcDecl(mod, "total")
	h := HoverForFunc(fn)
	if h.Contents == "" {
		t.Fatalf("expected non-empty hover content")
	}
}

func TestFormatType_RendersNestedTypes(t *testing.T) {
	mod := compile(t, "billing.cnl", `module billing.
to find given id as text, produce maybe text: {
  return none.
}
`)
	fn := funcDecl(mod, "find")
	got := FormatType(fn.RetType)
	if got != "maybe text" {
		t.Fatalf("expected %q, got %q", "maybe text", got)
	}
}
