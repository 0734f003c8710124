package pii

import (
	"testing"

	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
	"github.com/aster-cloud/cnl/internal/compiler/lowering"
	"github.com/aster-cloud/cnl/internal/compiler/parser"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

func checkSource(t *testing.T, strict bool, source string) []diagnostics.Diagnostic {
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
	coreMod, lowerDiags := lowering.Lower(mod, "profile.cnl")
	if len(lowerDiags) != 0 {
		t.Fatalf("unexpected lowering diagnostics: %v", lowerDiags)
	}
	return Check(coreMod, strict)
}

func hasCode(diags []diagnostics.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestCheck_PiiToHttpWithoutConsentReportsBothCodes(t *testing.T) {
	diags := checkSource(t, false, `module profile.
to notify given email as @pii(l2, email) text performs io [Http]: {
  return Http.post(email).
}
`)
	if !hasCode(diags, "PII_HTTP_UNENCRYPTED") {
		t.Fatalf("expected PII_HTTP_UNENCRYPTED, got %+v", diags)
	}
	if !hasCode(diags, "PII_MISSING_CONSENT_CHECK") {
		t.Fatalf("expected PII_MISSING_CONSENT_CHECK, got %+v", diags)
	}
}

func TestCheck_StrictModeEscalatesHttpSinkToError(t *testing.T) {
	diags := checkSource(t, true, `module profile.
to notify given email as @pii(l2, email) text performs io [Http]: {
  return Http.post(email).
}
`)
	for _, d := range diags {
		if d.Code == "PII_HTTP_UNENCRYPTED" && d.Severity != diagnostics.SeverityError {
			t.Fatalf("expected PII_HTTP_UNENCRYPTED to be an error under strict mode, got %+v", d)
		}
	}
}

func TestCheck_ConsentCheckSuppressesMissingConsentDiagnostic(t *testing.T) {
	diags := checkSource(t, false, `module profile.
to notify given email as @pii(l2, email) text performs io [Http]: {
  let ok be checkConsent(email).
  return Http.post(email).
}
`)
	if hasCode(diags, "PII_MISSING_CONSENT_CHECK") {
		t.Fatalf("expected no PII_MISSING_CONSENT_CHECK, got %+v", diags)
	}
}

func TestCheck_RedactClearsTaintBeforeSink(t *testing.T) {
	diags := checkSource(t, false, `module profile.
to notify given email as @pii(l2, email) text performs io [Http]: {
  let ok be checkConsent(email).
  return Http.post(redact(email)).
}
`)
	if hasCode(diags, "PII_HTTP_UNENCRYPTED") {
		t.Fatalf("expected redact to clear taint, got %+v", diags)
	}
}

func TestCheck_TaintPropagatesThroughLetAndConstruct(t *testing.T) {
	diags := checkSource(t, false, `module profile.
define Event with payload as text.
to notify given email as @pii(l2, email) text performs io [Http]: {
  let wrapped be email.
  let evt be Event with payload = wrapped.
  return Http.post(evt).
}
`)
	if !hasCode(diags, "PII_HTTP_UNENCRYPTED") {
		t.Fatalf("expected taint to propagate through let and construct, got %+v", diags)
	}
}

func TestCheck_NonPiiParameterReportsNothing(t *testing.T) {
	diags := checkSource(t, false, `module profile.
to notify given message as text performs io [Http]: {
  return Http.post(message).
}
`)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}

func TestCheck_ConsoleSinkReportsUnknownSinkWarning(t *testing.T) {
	diags := checkSource(t, false, `module profile.
to notify given email as @pii(l2, email) text performs io [Http]: {
  let ok be checkConsent(email).
  return Log.info(email).
}
`)
	if !hasCode(diags, "PII_SINK_UNKNOWN") {
		t.Fatalf("expected PII_SINK_UNKNOWN, got %+v", diags)
	}
}

func TestCheck_DatabaseWriteSinkReportsUnknownSinkWarning(t *testing.T) {
	diags := checkSource(t, false, `module profile.
to save given email as @pii(l2, email) text performs io [Sql]: {
  let ok be checkConsent(email).
  return Db.insert(email).
}
`)
	if !hasCode(diags, "PII_SINK_UNKNOWN") {
		t.Fatalf("expected PII_SINK_UNKNOWN for database sink, got %+v", diags)
	}
}

func TestCheck_MatchBindingInheritsScrutineeTaint(t *testing.T) {
	fn := &core.Func{
		Name: "notify",
		Params: []*core.Parameter{
			{Name: "maybeEmail", Type: &core.TypePii{Base: &core.TypeName{Name: "text"}, Level: core.PiiL2, Category: core.PiiEmail}},
		},
		Body: []core.Stmt{
			&core.Match{
				Expr: &core.Name{Value: "maybeEmail"},
				Cases: []*core.MatchCase{
					{
						Pattern: &core.CtorPattern{TypeName: "Some", Names: []string{"value"}},
						Body: []core.Stmt{
							&core.ExprStmt{Expr: &core.Call{Target: "Http.post", Args: []core.Expr{&core.Name{Value: "value"}}}},
						},
					},
				},
			},
		},
	}
	mod := &core.Module{Name: "profile", Decls: []core.Decl{fn}}
	diags := Check(mod, false)
	if !hasCode(diags, "PII_HTTP_UNENCRYPTED") {
		t.Fatalf("expected a match-bound name to inherit taint from its scrutinee, got %+v", diags)
	}
}
