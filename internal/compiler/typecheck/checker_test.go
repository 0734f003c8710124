package typecheck

import (
	"testing"

	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
	"github.com/aster-cloud/cnl/internal/compiler/lowering"
	"github.com/aster-cloud/cnl/internal/compiler/parser"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

func checkSource(t *testing.T, source string) []diagnostics.Diagnostic {
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
	core, lowerDiags := lowering.Lower(mod, "billing.cnl")
	if len(lowerDiags) != 0 {
		t.Fatalf("unexpected lowering diagnostics: %v", lowerDiags)
	}
	return Check(core)
}

func codesOf(diags []diagnostics.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func hasCode(diags []diagnostics.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestCheck_ReturnMatchingDeclaredTypeIsClean(t *testing.T) {
	diags := checkSource(t, `module billing.
to total given amount as float, produce float, performs cpu: {
  return amount.
}
`)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", codesOf(diags))
	}
}

func TestCheck_ReturnMismatchReportsS101(t *testing.T) {
	diags := checkSource(t, `module billing.
to total given amount as float, produce bool, performs cpu: {
  return amount.
}
`)
	if !hasCode(diags, "S101") {
		t.Fatalf("expected S101, got %v", codesOf(diags))
	}
}

func TestCheck_DuplicateExportedFuncReportsS003(t *testing.T) {
	diags := checkSource(t, `module billing.
to total given amount as float, produce float, performs cpu: {
  return amount.
}
to total given n as int, produce int, performs cpu: {
  return n.
}
`)
	if !hasCode(diags, "S003") {
		t.Fatalf("expected S003, got %v", codesOf(diags))
	}
}

func TestCheck_UndefinedTypeReportsS004(t *testing.T) {
	diags := checkSource(t, `module billing.
to total given invoice as Invoice, produce float, performs cpu: {
  return invoice.amount.
}
`)
	if !hasCode(diags, "S004") {
		t.Fatalf("expected S004, got %v", codesOf(diags))
	}
}

func TestCheck_ConstructValidatesFields(t *testing.T) {
	diags := checkSource(t, `module billing.
define Invoice with amount as float required, memo as text.

to build given total as float, produce Invoice, performs cpu: {
  return Invoice with notes = total.
}
`)
	if !hasCode(diags, "UNKNOWN_FIELD") {
		t.Fatalf("expected UNKNOWN_FIELD for 'notes', got %v", codesOf(diags))
	}
	if !hasCode(diags, "MISSING_REQUIRED_FIELD") {
		t.Fatalf("expected MISSING_REQUIRED_FIELD for missing 'amount', got %v", codesOf(diags))
	}
}

func TestCheck_DottedFieldAccessResolvesThroughData(t *testing.T) {
	diags := checkSource(t, `module billing.
define Invoice with amount as float required.

to total given invoice as Invoice, produce float, performs cpu: {
  return invoice.amount.
}
`)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", codesOf(diags))
	}
}
