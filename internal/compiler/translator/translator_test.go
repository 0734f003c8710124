package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

func TestNeedsTranslation(t *testing.T) {
	assert.True(t, NeedsTranslation("zh-Hans", "en-US"))
	assert.False(t, NeedsTranslation("en-US", "en-US"))
}

func TestTranslate_RewritesKeywordLexemesPreservingSpans(t *testing.T) {
	l := lexer.New("如果 真", lexicon.SimplifiedChinese)
	tokens, errs := l.ScanTokens()
	require.Empty(t, errs)

	tr := New(lexicon.SimplifiedChinese, lexicon.EnglishUS)
	out, terrs := tr.Translate(tokens)
	require.Empty(t, terrs)

	require.GreaterOrEqual(t, len(out), 1)
	assert.Equal(t, "if", out[0].Lexeme)
	assert.Equal(t, tokens[0].Line, out[0].Line)
	assert.Equal(t, tokens[0].Column, out[0].Column)
}

func TestTranslate_LeavesNonKeywordTokensUntouched(t *testing.T) {
	l := lexer.New("foo", lexicon.EnglishUS)
	tokens, errs := l.ScanTokens()
	require.Empty(t, errs)

	tr := New(lexicon.EnglishUS, lexicon.SimplifiedChinese)
	out, terrs := tr.Translate(tokens)
	require.Empty(t, terrs)
	assert.Equal(t, tokens[0].Lexeme, out[0].Lexeme)
}
