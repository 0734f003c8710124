package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

func scanSource(t *testing.T, source string) ([]Token, []LexError) {
	t.Helper()
	l := New(source, lexicon.EnglishUS)
	return l.ScanTokens()
}

func withoutEOF(tokens []Token) []Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].Type == TOKEN_EOF {
		return tokens[:len(tokens)-1]
	}
	return tokens
}

func TestLexer_SingleCharTokens(t *testing.T) {
	tokens, errs := scanSource(t, "(){}[],")
	require.Empty(t, errs)

	expected := []TokenType{
		TOKEN_LPAREN, TOKEN_RPAREN, TOKEN_LBRACE, TOKEN_RBRACE,
		TOKEN_LBRACKET, TOKEN_RBRACKET, TOKEN_COMMA,
	}
	actual := withoutEOF(tokens)
	require.Len(t, actual, len(expected))
	for i, tok := range actual {
		assert.Equal(t, expected[i], tok.Type)
	}
}

func TestLexer_TwoCharOperators(t *testing.T) {
	tokens, errs := scanSource(t, "== != <= >= ?? ?. ->")
	require.Empty(t, errs)

	expected := []TokenType{
		TOKEN_EQ, TOKEN_NEQ, TOKEN_LTE, TOKEN_GTE,
		TOKEN_DOUBLE_QUESTION, TOKEN_SAFE_NAV, TOKEN_ARROW,
	}
	actual := withoutEOF(tokens)
	require.Len(t, actual, len(expected))
	for i, tok := range actual {
		assert.Equal(t, expected[i], tok.Type)
	}
}

func TestLexer_KeywordResolvesToLexiconKind(t *testing.T) {
	tokens, errs := scanSource(t, "if")
	require.Empty(t, errs)
	actual := withoutEOF(tokens)
	require.Len(t, actual, 1)
	assert.Equal(t, TOKEN_KEYWORD, actual[0].Type)
	assert.Equal(t, lexicon.KindIf, actual[0].Kind)
}

func TestLexer_MultiWordKeywordMatchesLongestFirst(t *testing.T) {
	tokens, errs := scanSource(t, "wait for result")
	require.Empty(t, errs)
	actual := withoutEOF(tokens)
	require.Len(t, actual, 2)
	assert.Equal(t, lexicon.KindWaitFor, actual[0].Kind)
	assert.Equal(t, TOKEN_IDENTIFIER, actual[1].Type)
}

func TestLexer_MultiWordKeywordRespectsWordBoundary(t *testing.T) {
	tokens, errs := scanSource(t, "forest")
	require.Empty(t, errs)
	actual := withoutEOF(tokens)
	require.Len(t, actual, 1)
	assert.Equal(t, TOKEN_IDENTIFIER, actual[0].Type)
	assert.Equal(t, "forest", actual[0].Lexeme)
}

func TestLexer_IntAndFloatLiterals(t *testing.T) {
	tokens, errs := scanSource(t, "42 3.14 1_000 2.5e10")
	require.Empty(t, errs)
	actual := withoutEOF(tokens)
	require.Len(t, actual, 4)
	assert.Equal(t, TOKEN_INT_LITERAL, actual[0].Type)
	assert.Equal(t, int64(42), actual[0].Literal)
	assert.Equal(t, TOKEN_FLOAT_LITERAL, actual[1].Type)
	assert.Equal(t, TOKEN_INT_LITERAL, actual[2].Type)
	assert.Equal(t, int64(1000), actual[2].Literal)
	assert.Equal(t, TOKEN_FLOAT_LITERAL, actual[3].Type)
}

func TestLexer_StringLiteralWithEscapes(t *testing.T) {
	tokens, errs := scanSource(t, `"hello\nworld"`)
	require.Empty(t, errs)
	actual := withoutEOF(tokens)
	require.Len(t, actual, 1)
	assert.Equal(t, "hello\nworld", actual[0].Literal)
}

func TestLexer_UnterminatedStringProducesL002(t *testing.T) {
	_, errs := scanSource(t, `"unterminated`)
	require.Len(t, errs, 1)
	assert.Equal(t, "L002", errs[0].Code)
}

func TestLexer_UnexpectedCharacterProducesL001(t *testing.T) {
	_, errs := scanSource(t, "`")
	require.Len(t, errs, 1)
	assert.Equal(t, "L001", errs[0].Code)
}

func TestLexer_BooleanAndNullLiterals(t *testing.T) {
	tokens, errs := scanSource(t, "true false null")
	require.Empty(t, errs)
	actual := withoutEOF(tokens)
	require.Len(t, actual, 3)
	assert.Equal(t, TOKEN_TRUE, actual[0].Type)
	assert.Equal(t, true, actual[0].Literal)
	assert.Equal(t, TOKEN_FALSE, actual[1].Type)
	assert.Equal(t, false, actual[1].Literal)
	assert.Equal(t, TOKEN_NULL, actual[2].Type)
}

func TestLexer_LineCommentIsSkipped(t *testing.T) {
	tokens, errs := scanSource(t, "let // trailing note\n")
	require.Empty(t, errs)
	actual := withoutEOF(tokens)
	require.Len(t, actual, 1)
	assert.Equal(t, lexicon.KindLet, actual[0].Kind)
}

func TestLexer_MultilineCommentTracksLineNumbers(t *testing.T) {
	tokens, errs := scanSource(t, "###\nskip this\n###\nlet")
	require.Empty(t, errs)
	actual := withoutEOF(tokens)
	require.Len(t, actual, 1)
	assert.Equal(t, 4, actual[0].Line)
}

func TestLexer_ChineseLexiconTokenizesKeywords(t *testing.T) {
	l := New("如果 真", lexicon.SimplifiedChinese)
	tokens, errs := l.ScanTokens()
	require.Empty(t, errs)
	actual := withoutEOF(tokens)
	require.Len(t, actual, 2)
	assert.Equal(t, lexicon.KindIf, actual[0].Kind)
	assert.Equal(t, TOKEN_TRUE, actual[1].Type)
}

func TestIsValidIdentifier(t *testing.T) {
	assert.True(t, IsValidIdentifier("user_name", lexicon.EnglishUS))
	assert.False(t, IsValidIdentifier("if", lexicon.EnglishUS))
	assert.False(t, IsValidIdentifier("1abc", lexicon.EnglishUS))
	assert.False(t, IsValidIdentifier("", lexicon.EnglishUS))
}
