package capability

import (
	"testing"

	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
	"github.com/aster-cloud/cnl/internal/compiler/lowering"
	"github.com/aster-cloud/cnl/internal/compiler/parser"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

func checkSource(t *testing.T, manifest *Manifest, source string) []diagnostics.Diagnostic {
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
	coreMod, lowerDiags := lowering.Lower(mod, "billing.cnl")
	if len(lowerDiags) != 0 {
		t.Fatalf("unexpected lowering diagnostics: %v", lowerDiags)
	}
	return Check(coreMod, manifest)
}

func hasCode(diags []diagnostics.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestCheck_UndeclaredCapabilityReportsMissing(t *testing.T) {
	diags := checkSource(t, nil, `module billing.
to notify given user as text performs io: {
  return Http.post(user).
}
`)
	if !hasCode(diags, "EFF_CAP_MISSING") {
		t.Fatalf("expected EFF_CAP_MISSING, got %+v", diags)
	}
}

func TestCheck_DeclaredButUnusedCapabilityIsSuperfluous(t *testing.T) {
	diags := checkSource(t, nil, `module billing.
to total given amount as float performs io [Http]: {
  return amount.
}
`)
	if !hasCode(diags, "EFF_CAP_SUPERFLUOUS") {
		t.Fatalf("expected EFF_CAP_SUPERFLUOUS, got %+v", diags)
	}
}

func TestCheck_CleanDeclarationReportsNothing(t *testing.T) {
	diags := checkSource(t, nil, `module billing.
to notify given user as text performs io [Http]: {
  return Http.post(user).
}
`)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}

func TestCheck_ManifestBlocksUncoveredCapability(t *testing.T) {
	manifest := &Manifest{Allow: map[core.CapabilityKind][]string{}}
	diags := checkSource(t, manifest, `module billing.
to notify given user as text performs io [Http]: {
  return Http.post(user).
}
`)
	if !hasCode(diags, "CAPABILITY_NOT_ALLOWED") {
		t.Fatalf("expected CAPABILITY_NOT_ALLOWED, got %+v", diags)
	}
}

func TestCheck_ManifestAllowsCoveredCapability(t *testing.T) {
	manifest := &Manifest{Allow: map[core.CapabilityKind][]string{
		core.CapHttp: {"billing.notify"},
	}}
	diags := checkSource(t, manifest, `module billing.
to notify given user as text performs io [Http]: {
  return Http.post(user).
}
`)
	if hasCode(diags, "CAPABILITY_NOT_ALLOWED") {
		t.Fatalf("expected no CAPABILITY_NOT_ALLOWED, got %+v", diags)
	}
}

func TestCheck_ManifestModuleWildcardCoversCapability(t *testing.T) {
	manifest := &Manifest{Allow: map[core.CapabilityKind][]string{
		core.CapHttp: {"billing.*"},
	}}
	diags := checkSource(t, manifest, `module billing.
to notify given user as text performs io [Http]: {
  return Http.post(user).
}
`)
	if hasCode(diags, "CAPABILITY_NOT_ALLOWED") {
		t.Fatalf("expected the module wildcard to cover the call, got %+v", diags)
	}
}

func TestCheck_WorkflowUndeclaredCapabilityInStep(t *testing.T) {
	diags := checkSource(t, nil, `module billing.
to run given amount as float, produce bool, performs io [Http]: {
  workflow {
    step reserve {
      let x be Db.query(amount).
    }
  }.
}
`)
	if !hasCode(diags, "WORKFLOW_UNDECLARED_CAPABILITY") {
		t.Fatalf("expected WORKFLOW_UNDECLARED_CAPABILITY, got %+v", diags)
	}
}

func TestCheck_CompensateIntroducesNewCapability(t *testing.T) {
	diags := checkSource(t, nil, `module billing.
to run given amount as float, produce bool, performs io [Http, Sql]: {
  workflow {
    step charge {
      let x be Http.post(amount).
    } compensate {
      let y be Db.query(amount).
    }
  }.
}
`)
	if !hasCode(diags, "COMPENSATE_NEW_CAPABILITY") {
		t.Fatalf("expected COMPENSATE_NEW_CAPABILITY, got %+v", diags)
	}
}

func TestCheck_WorkflowMissingIoEffectOnEnclosingFunc(t *testing.T) {
	diags := checkSource(t, nil, `module billing.
to run given amount as float, produce bool, performs cpu: {
  workflow {
    step charge {
      let x be true.
    }
  }.
}
`)
	if !hasCode(diags, "WORKFLOW_MISSING_IO_EFFECT") {
		t.Fatalf("expected WORKFLOW_MISSING_IO_EFFECT, got %+v", diags)
	}
}

func TestCheck_RetryMaxAttemptsMustBePositive(t *testing.T) {
	fn := &core.Func{
		Name:    "run",
		Effects: []core.EffectAtom{core.EffectIo},
		Body: []core.Stmt{
			&core.Workflow{
				Steps: []*core.Step{{Name: "charge", Body: []core.Stmt{&core.Let{Name: "x", Value: &core.Bool{Value: true}}}}},
				Retry: &core.RetryClause{MaxAttempts: 0},
			},
		},
	}
	mod := &core.Module{Name: "billing", Decls: []core.Decl{fn}}
	diags := Check(mod, nil)
	if !hasCode(diags, "RETRY_MAX_ATTEMPTS_INVALID") {
		t.Fatalf("expected RETRY_MAX_ATTEMPTS_INVALID, got %+v", diags)
	}
}

func TestCheck_TimeoutOutOfBounds(t *testing.T) {
	fn := &core.Func{
		Name:    "run",
		Effects: []core.EffectAtom{core.EffectIo},
		Body: []core.Stmt{
			&core.Workflow{
				Steps:   []*core.Step{{Name: "charge", Body: []core.Stmt{&core.Let{Name: "x", Value: &core.Bool{Value: true}}}}},
				Timeout: &core.TimeoutClause{Within: "2h"},
			},
		},
	}
	mod := &core.Module{Name: "billing", Decls: []core.Decl{fn}}
	diags := Check(mod, nil)
	if !hasCode(diags, "TIMEOUT_OUT_OF_BOUNDS") {
		t.Fatalf("expected TIMEOUT_OUT_OF_BOUNDS, got %+v", diags)
	}
}
