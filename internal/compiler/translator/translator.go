// Package translator rewrites a token stream produced under one lexicon
// into the equivalent stream under another, preserving source spans so
// downstream diagnostics still point at the original file.
package translator

import (
	"fmt"

	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// Translator rewrites TOKEN_KEYWORD lexemes from a source lexicon's
// phrasing into a target lexicon's phrasing, kind-for-kind.
type Translator struct {
	from, to *lexicon.Lexicon
}

// New builds a Translator from source lexicon `from` to target `to`.
func New(from, to *lexicon.Lexicon) *Translator {
	return &Translator{from: from, to: to}
}

// NeedsTranslation reports whether two lexicon IDs differ, the cheap
// check callers make before invoking Translate at all.
func NeedsTranslation(source, target string) bool {
	return source != target
}

// Translate rewrites every TOKEN_KEYWORD token's Lexeme to the target
// lexicon's phrase for the same Kind, in place conceptually (a new slice
// is returned; inputs are not mutated). Line/Column/Type are preserved
// so the parser and diagnostics never observe a difference from
// translation beyond the lexeme text. A keyword present in `from` but
// unbound in `to` is left untranslated and reported via the returned
// error list (code T001) rather than silently dropped.
func (tr *Translator) Translate(tokens []lexer.Token) ([]lexer.Token, []TranslationError) {
	out := make([]lexer.Token, len(tokens))
	var errs []TranslationError

	for i, tok := range tokens {
		out[i] = tok
		if tok.Type != lexer.TOKEN_KEYWORD {
			continue
		}
		phrase := tr.to.Keyword(tok.Kind)
		if phrase == "" {
			errs = append(errs, TranslationError{
				Code:    "T001",
				Message: fmt.Sprintf("keyword kind %d has no phrase in lexicon %q", tok.Kind, tr.to.ID),
				Line:    tok.Line,
				Column:  tok.Column,
			})
			continue
		}
		out[i].Lexeme = phrase
	}

	return out, errs
}

// TranslationError reports a keyword that could not be mapped into the
// target lexicon.
type TranslationError struct {
	Code    string
	Message string
	Line    int
	Column  int
}

func (e TranslationError) Error() string {
	return fmt.Sprintf("%s: %s at %d:%d", e.Code, e.Message, e.Line, e.Column)
}
