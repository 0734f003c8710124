package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

func TestInferFieldType_RangeWithFractionalBoundInfersFloat(t *testing.T) {
	max := 9.5
	typ, inferred := InferFieldType("score", []ast.Constraint{&ast.RangeConstraint{Max: &max}}, lexicon.EnglishUS)
	require.True(t, inferred)
	assert.Equal(t, "float", typ.(*ast.TypeName).Name)
}

func TestInferFieldType_RangeWithIntegerBoundsInfersInt(t *testing.T) {
	min, max := 1.0, 10.0
	typ, inferred := InferFieldType("count", []ast.Constraint{&ast.RangeConstraint{Min: &min, Max: &max}}, lexicon.EnglishUS)
	require.True(t, inferred)
	assert.Equal(t, "int", typ.(*ast.TypeName).Name)
}

func TestInferFieldType_PatternConstraintInfersText(t *testing.T) {
	typ, inferred := InferFieldType("slug", []ast.Constraint{&ast.PatternConstraint{Regexp: "^[a-z]+$"}}, lexicon.EnglishUS)
	require.True(t, inferred)
	assert.Equal(t, "text", typ.(*ast.TypeName).Name)
}

func TestInferFieldType_LexiconRuleByFieldName(t *testing.T) {
	typ, inferred := InferFieldType("user_email", nil, lexicon.EnglishUS)
	require.True(t, inferred)
	assert.Equal(t, "text", typ.(*ast.TypeName).Name)

	typ, inferred = InferFieldType("created_at", nil, lexicon.EnglishUS)
	require.True(t, inferred)
	assert.Equal(t, "timestamp", typ.(*ast.TypeName).Name)

	typ, inferred = InferFieldType("is_active", nil, lexicon.EnglishUS)
	require.True(t, inferred)
	assert.Equal(t, "bool", typ.(*ast.TypeName).Name)
}

func TestInferFieldType_DefaultsToText(t *testing.T) {
	typ, inferred := InferFieldType("thing", nil, lexicon.EnglishUS)
	require.True(t, inferred)
	assert.Equal(t, "text", typ.(*ast.TypeName).Name)
}

func TestRefineAgainstRange_PromotesIntToFloat(t *testing.T) {
	max := 9.5
	refined := RefineAgainstRange(&ast.TypeName{Name: "int"}, &ast.RangeConstraint{Max: &max})
	assert.Equal(t, "float", refined.(*ast.TypeName).Name)
}

func TestRefineAgainstRange_RefinesTextToNumeric(t *testing.T) {
	min := 1.0
	refined := RefineAgainstRange(&ast.TypeName{Name: "text"}, &ast.RangeConstraint{Min: &min})
	assert.Equal(t, "int", refined.(*ast.TypeName).Name)
}
