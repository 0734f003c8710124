package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

func TestCanonicalize_IsIdempotent(t *testing.T) {
	inputs := []string{
		"module   Greeter {\r\n\tlet x be 1  \r\n}\r\n",
		"define User with\n  name: Text required\n# a trailing comment\n",
		`let msg be "hello   world, \"quoted\"  still literal"`,
		"\n\n\n\nmodule Empty {}\n\n\n",
	}

	for _, in := range inputs {
		once := Canonicalize(in, lexicon.EnglishUS, Options{}).Text
		twice := Canonicalize(once, lexicon.EnglishUS, Options{}).Text
		assert.Equal(t, once, twice, "canonicalize not idempotent for %q", in)
	}
}

func TestCanonicalize_NormalizesLineEndings(t *testing.T) {
	out := Canonicalize("a\r\nb\rc\n", lexicon.EnglishUS, Options{}).Text
	assert.NotContains(t, out, "\r")
}

func TestCanonicalize_ReplacesSmartQuotes(t *testing.T) {
	out := Canonicalize("let s be “hi”", lexicon.EnglishUS, Options{}).Text
	assert.Contains(t, out, `"hi"`)
}

func TestCanonicalize_ProtectsStringLiterals(t *testing.T) {
	out := Canonicalize(`let s be "Wait For THE thing"`, lexicon.EnglishUS, Options{}).Text
	assert.Contains(t, out, `"Wait For THE thing"`)
}

func TestCanonicalize_RemovesArticles(t *testing.T) {
	out := Canonicalize("return the value", lexicon.EnglishUS, Options{}).Text
	assert.NotContains(t, out, "the ")
}

func TestCanonicalize_LowersMultiWordKeywords(t *testing.T) {
	out := Canonicalize("WAIT FOR result", lexicon.EnglishUS, Options{}).Text
	assert.Contains(t, out, "wait for")
}

func TestCanonicalize_StripsLineCommentsKeepingNewline(t *testing.T) {
	out := Canonicalize("let x be 1 // comment\nlet y be 2\n", lexicon.EnglishUS, Options{})
	assert.NotContains(t, out.Text, "comment")
	assert.Contains(t, out.Text, "\nlet y be 2")
}

func TestCanonicalize_EmitsTriviaWhenRequested(t *testing.T) {
	out := Canonicalize("let x be 1 # note\n", lexicon.EnglishUS, Options{KeepTrivia: true})
	if assert.Len(t, out.Trivia, 1) {
		assert.Contains(t, out.Trivia[0].Text, "note")
	}
}

func TestCanonicalize_FullWidthToHalfForChinese(t *testing.T) {
	out := Canonicalize("令　ｘ为１", lexicon.SimplifiedChinese, Options{}).Text
	assert.Contains(t, out, "1")
	assert.NotContains(t, out, "１")
}

func TestCanonicalize_CollapsesBlankLines(t *testing.T) {
	out := Canonicalize("a\n\n\n\n\nb\n", lexicon.EnglishUS, Options{}).Text
	assert.NotContains(t, out, "\n\n\n")
}

func TestCanonicalize_NeverFailsOnUnterminatedString(t *testing.T) {
	assert.NotPanics(t, func() {
		Canonicalize(`let s be "unterminated`, lexicon.EnglishUS, Options{})
	})
}
