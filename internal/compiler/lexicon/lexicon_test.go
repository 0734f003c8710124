package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_RoundTripsKeyword(t *testing.T) {
	l := NewBuilder("en-US", "English (US)", LTR).
		Keyword(KindIf, "if").
		Build()

	assert.Equal(t, "if", l.Keyword(KindIf))
	kind, ok := l.LookupPhrase("if")
	require.True(t, ok)
	assert.Equal(t, KindIf, kind)
}

func TestLexicon_LookupPhraseIsCaseInsensitive(t *testing.T) {
	l := NewBuilder("en-US", "English (US)", LTR).
		Keyword(KindModuleDecl, "Module").
		Build()

	kind, ok := l.LookupPhrase("module")
	require.True(t, ok)
	assert.Equal(t, KindModuleDecl, kind)
}

func TestLexicon_MultiWordKeywordsSortedLongestFirst(t *testing.T) {
	l := NewBuilder("en-US", "English (US)", LTR).
		Keyword(KindAtLeast, "at least").
		Keyword(KindWaitFor, "wait for").
		Keyword(KindForEach, "for each").
		Build()

	words := l.MultiWordKeywords()
	require.Len(t, words, 3)
	for i := 1; i < len(words); i++ {
		assert.GreaterOrEqual(t, len(words[i-1]), len(words[i]))
	}
}

func TestRegistry_RejectsNonInjectiveKeywordIndex(t *testing.T) {
	l := NewBuilder("en-US", "English (US)", LTR).
		Keyword(KindIf, "set").
		Keyword(KindSet, "set").
		Build()

	r := NewRegistry()
	err := r.Register(l)
	require.Error(t, err)

	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "set", dup.Phrase)
}

func TestRegistry_AllowsDeclaredDuplicates(t *testing.T) {
	l := NewBuilder("en-US", "English (US)", LTR).
		Keyword(KindTo, "to").
		Keyword(KindFuncTo, "to").
		Canonicalization(Canonicalization{
			AllowedDuplicates: [][]Kind{{KindTo, KindFuncTo}},
		}).
		Build()

	r := NewRegistry()
	require.NoError(t, r.Register(l))
}

func TestRegistry_GenerationIncrementsOnRegisterAndSwap(t *testing.T) {
	r := NewRegistry()
	l := NewBuilder("en-US", "English (US)", LTR).Keyword(KindIf, "if").Build()

	require.NoError(t, r.Register(l))
	g1 := r.Generation()

	require.NoError(t, r.Swap(l))
	assert.Greater(t, r.Generation(), g1)
}

func TestBuiltinLexicons_AreInjective(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.Register(EnglishUS))
	assert.NoError(t, r.Register(SimplifiedChinese))
	assert.ElementsMatch(t, []string{"en-US", "zh-Hans"}, r.IDs())
}
