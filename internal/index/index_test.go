package index

import (
	"testing"

	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
	"github.com/aster-cloud/cnl/internal/compiler/lowering"
	"github.com/aster-cloud/cnl/internal/compiler/parser"
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

func TestIndex_UpdateExtractsSymbols(t *testing.T) {
	mod := compile(t, "billing.cnl", billingSource)
	idx := New()
	rec, warn := idx.Update("billing.cnl", mod, "hash1")

	if warn != nil {
		t.Fatalf("expected no shadow warning, got %+v", warn)
	}
	if rec.ModuleName != "billing" {
		t.Fatalf("expected module name billing, got %q", rec.ModuleName)
	}

	names := map[string]bool{}
	for _, sym := range rec.Symbols {
		names[sym.Name] = true
	}
	for _, want := range []string{"Invoice", "amount", "customer", "total"} {
		if !names[want] {
			t.Fatalf("expected symbol %q to be indexed, got %+v", want, names)
		}
	}
}

func TestIndex_ResolveModuleFindsDeclaringFile(t *testing.T) {
	mod := compile(t, "billing.cnl", billingSource)
	idx := New()
	idx.Update("billing.cnl", mod, "hash1")

	path, ok := idx.ResolveModule("billing")
	if !ok || path != "billing.cnl" {
		t.Fatalf("expected billing.cnl, got %q ok=%v", path, ok)
	}
}

func TestIndex_SecondFileWithSameModuleNameWarnsOfShadowing(t *testing.T) {
	mod := compile(t, "billing.cnl", billingSource)
	idx := New()
	idx.Update("billing.cnl", mod, "hash1")

	mod2 := compile(t, "billing2.cnl", billingSource)
	_, warn := idx.Update("billing2.cnl", mod2, "hash2")
	if warn == nil {
		t.Fatalf("expected a shadow warning for a second file declaring module billing")
	}
	if warn.ModuleName != "billing" || len(warn.Paths) != 2 {
		t.Fatalf("unexpected shadow warning: %+v", warn)
	}
}

func TestIndex_FindDefinitionPrefersFuncOverField(t *testing.T) {
	mod := compile(t, "billing.cnl", billingSource)
	idx := New()
	idx.Update("billing.cnl", mod, "hash1")

	sym, path, ok := idx.FindDefinition("total")
	if !ok || sym.Kind != SymbolKindFunc || path != "billing.cnl" {
		t.Fatalf("expected to find func total at billing.cnl, got %+v path=%q ok=%v", sym, path, ok)
	}
}

func TestIndex_RemoveClearsModuleAndSymbolEntries(t *testing.T) {
	mod := compile(t, "billing.cnl", billingSource)
	idx := New()
	idx.Update("billing.cnl", mod, "hash1")
	idx.Remove("billing.cnl")

	if idx.Size() != 0 {
		t.Fatalf("expected an empty index after Remove, got size %d", idx.Size())
	}
	if _, ok := idx.ResolveModule("billing"); ok {
		t.Fatalf("expected module resolution to fail after Remove")
	}
	if _, _, ok := idx.FindDefinition("total"); ok {
		t.Fatalf("expected symbol lookup to fail after Remove")
	}
}

func TestIndex_SearchSymbolsIsCaseInsensitiveSubstring(t *testing.T) {
	mod := compile(t, "billing.cnl", billingSource)
	idx := New()
	idx.Update("billing.cnl", mod, "hash1")

	results := idx.SearchSymbols("voic")
	found := false
	for _, r := range results {
		if r.Symbol.Name == "Invoice" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected substring search to find Invoice, got %+v", results)
	}
}
