package lexicon

import "regexp"

// EnglishUS is the reference lexicon: a superset of the teacher's
// `resource`/`func`-flavored surface, expressed as the lexicon's phrase
// table instead of hard-coded token constants in the lexer.
var EnglishUS = buildEnglishUS()

func buildEnglishUS() *Lexicon {
	b := NewBuilder("en-US", "English (US)", LTR).
		Keyword(KindModuleDecl, "module").
		Keyword(KindImport, "import").
		Keyword(KindIf, "if").
		Keyword(KindOtherwise, "otherwise").
		Keyword(KindMatch, "match").
		Keyword(KindWhen, "when").
		Keyword(KindReturn, "return").
		Keyword(KindLet, "let").
		Keyword(KindBe, "be").
		Keyword(KindSet, "set").
		Keyword(KindTo, "to").
		Keyword(KindAnd, "and").
		Keyword(KindOr, "or").
		Keyword(KindNot, "not").
		Keyword(KindIO, "io").
		Keyword(KindCPU, "cpu").
		Keyword(KindWorkflow, "workflow").
		Keyword(KindStep, "step").
		Keyword(KindDepends, "depends").
		Keyword(KindOn, "on").
		Keyword(KindCompensate, "compensate").
		Keyword(KindRetry, "retry").
		Keyword(KindTimeout, "timeout").
		Keyword(KindMaxAttempts, "max attempts").
		Keyword(KindBackoff, "backoff").
		Keyword(KindWithin, "within").
		Keyword(KindScope, "scope").
		Keyword(KindStart, "start").
		Keyword(KindAsync, "async").
		Keyword(KindAwait, "await").
		Keyword(KindWaitFor, "wait for").
		Keyword(KindRequired, "required").
		Keyword(KindBetween, "between").
		Keyword(KindAtLeast, "at least").
		Keyword(KindAtMost, "at most").
		Keyword(KindMatching, "matching").
		Keyword(KindPattern, "pattern").
		Keyword(KindMaybe, "maybe").
		Keyword(KindOptionOf, "option of").
		Keyword(KindResultOf, "result of").
		Keyword(KindOkOf, "ok of").
		Keyword(KindErrOf, "err of").
		Keyword(KindSomeOf, "some of").
		Keyword(KindNone, "none").
		Keyword(KindTrue, "true").
		Keyword(KindFalse, "false").
		Keyword(KindNull, "null").
		Keyword(KindText, "text").
		Keyword(KindInt, "int").
		Keyword(KindFloat, "float").
		Keyword(KindBool, "bool").
		Keyword(KindForEach, "for each").
		Keyword(KindIn, "in").
		Keyword(KindPlus, "plus").
		Keyword(KindMinus, "minus").
		Keyword(KindTimes, "times").
		Keyword(KindDividedBy, "divided by").
		Keyword(KindLessThan, "less than").
		Keyword(KindGreaterThan, "greater than").
		Keyword(KindEqualsTo, "equals to").
		Keyword(KindIs, "is").
		Keyword(KindUnder, "under").
		Keyword(KindOver, "over").
		Keyword(KindMoreThan, "more than").
		Keyword(KindTypeDef, "define").
		Keyword(KindTypeWith, "with").
		Keyword(KindTypeHas, "has").
		Keyword(KindTypeOneOf, "as one of").
		Keyword(KindFuncTo, "to").
		Keyword(KindFuncGiven, "given").
		Keyword(KindFuncProduce, "produce").
		Keyword(KindFuncPerforms, "performs").
		Punctuation(Punctuation{
			StatementEnd:    ".",
			ListSeparator:   ",",
			EnumSeparator:   ",",
			BlockStart:      ":",
			QuoteOpen:       `"`,
			QuoteClose:      `"`,
			OptionMarkOpen:  "[",
			OptionMarkClose: "]",
		}).
		Canonicalization(Canonicalization{
			FullWidthToHalf: false,
			WhitespaceMode:  WhitespaceEnglish,
			RemoveArticles:  true,
			Articles:        []string{"a", "an", "the"},
			// "to" is legitimately both the function-header preposition
			// (func to NAME) and the assignment-target preposition
			// (set X to Y); the parser disambiguates by context.
			AllowedDuplicates: [][]Kind{{KindTo, KindFuncTo}},
		}).
		Message("L001", "unexpected character %q").
		Message("L002", "unterminated string literal").
		Message("P006", "expected %q").
		Message("S003", "duplicate exported name %q in module %q")

	b.TypeRule(regexp.MustCompile(`(?i)_(email|e_?mail)$`), "text", 100)
	b.TypeRule(regexp.MustCompile(`(?i)_(at|on|date|time)$`), "timestamp", 100)
	b.TypeRule(regexp.MustCompile(`(?i)^is_|_(flag|enabled|active)$`), "bool", 90)
	b.TypeRule(regexp.MustCompile(`(?i)_(count|total|quantity|qty|age|year)$`), "int", 80)
	b.TypeRule(regexp.MustCompile(`(?i)_(price|amount|rate|ratio|score)$`), "float", 80)
	b.TypeRule(regexp.MustCompile(`(?i)_(id|uuid)$`), "uuid", 70)

	return b.Build()
}
