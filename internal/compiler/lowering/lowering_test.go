package lowering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
	"github.com/aster-cloud/cnl/internal/compiler/parser"
)

func lowerSource(t *testing.T, source string) (*core.Module, []Diagnostic) {
	t.Helper()
	l := lexer.New(source, lexicon.EnglishUS)
	tokens, lexErrors := l.ScanTokens()
	require.Empty(t, lexErrors)
	mod, parseErrors := parser.New(tokens, lexicon.EnglishUS).Parse()
	require.Empty(t, parseErrors)
	return Lower(mod, "billing.cnl")
}

func TestLower_ModuleAndImportCarryOrigin(t *testing.T) {
	out, diags := lowerSource(t, `module billing.invoices.
import http.client as http.
`)
	require.Empty(t, diags)
	assert.Equal(t, "billing.invoices", out.Name)
	assert.Equal(t, "billing.cnl", out.Orig.File)
	require.Len(t, out.Decls, 1)
	imp := out.Decls[0].(*core.Import)
	assert.Equal(t, "http.client", imp.Name)
	assert.Equal(t, "http", imp.As)
	assert.Equal(t, "billing.cnl", imp.Orig.File)
}

func TestLower_EffectCapsCloseOverCapabilityKind(t *testing.T) {
	out, diags := lowerSource(t, `module billing.
to charge given amount as float, produce result of bool, performs io and Http and Secrets: {
  return ok of true.
}
`)
	require.Empty(t, diags)
	fn := out.Decls[0].(*core.Func)
	require.Len(t, fn.Effects, 1)
	assert.Equal(t, core.EffectIo, fn.Effects[0])
	assert.True(t, fn.EffectCapsExplicit)
	assert.Equal(t, []core.CapabilityKind{core.CapHttp, core.CapSecrets}, fn.EffectCaps)
}

func TestLower_UnrecognizedCapabilityReportsL103(t *testing.T) {
	_, diags := lowerSource(t, `module billing.
to charge given amount as float, produce result of bool, performs io [Nonsense]: {
  return ok of true.
}
`)
	require.Len(t, diags, 1)
	assert.Equal(t, "L103", diags[0].Code)
}

func TestLower_WorkflowRewrittenToStepsWithRetryAndTimeout(t *testing.T) {
	out, diags := lowerSource(t, `module billing.
to run given amount as float, produce result of bool, performs io: {
  workflow {
    step reserve {
      let held be true.
    }
    step charge depends on reserve {
      let done be true.
    } compensate {
      let refunded be true.
    }
  } retry max attempts 3 backoff exponential timeout within "15m".
}
`)
	require.Empty(t, diags)
	fn := out.Decls[0].(*core.Func)
	require.Len(t, fn.Body, 1)
	wf := fn.Body[0].(*core.Workflow)
	require.Len(t, wf.Steps, 2)
	assert.Equal(t, "reserve", wf.Steps[0].Name)
	assert.Equal(t, "charge", wf.Steps[1].Name)
	assert.Equal(t, []string{"reserve"}, wf.Steps[1].DependsOn)
	require.Len(t, wf.Steps[1].Compensate, 1)
	require.NotNil(t, wf.Retry)
	assert.Equal(t, 3, wf.Retry.MaxAttempts)
	assert.Equal(t, "exponential", wf.Retry.Backoff)
	require.NotNil(t, wf.Timeout)
	assert.Equal(t, "15m", wf.Timeout.Within)
}

func TestLower_ConstantFoldsSafeIntArithmeticOnly(t *testing.T) {
	out, diags := lowerSource(t, `module billing.
to compute given n as int, produce int, performs cpu: {
  let a be 2 plus 3.
  let b be n plus 1.
}
`)
	require.Empty(t, diags)
	fn := out.Decls[0].(*core.Func)
	require.Len(t, fn.Body, 2)

	folded := fn.Body[0].(*core.Let).Value.(*core.Int)
	assert.Equal(t, int64(5), folded.Value)

	unfolded := fn.Body[1].(*core.Let).Value.(*core.Binary)
	assert.Equal(t, "+", unfolded.Op)
}

func TestLower_DottedNamePassesThroughUnchanged(t *testing.T) {
	out, diags := lowerSource(t, `module billing.
to total given invoice as Invoice, produce float, performs cpu: {
  return invoice.amount.
}
`)
	require.Empty(t, diags)
	fn := out.Decls[0].(*core.Func)
	ret := fn.Body[0].(*core.Return)
	name := ret.Value.(*core.Name)
	assert.Equal(t, "invoice.amount", name.Value)
}
