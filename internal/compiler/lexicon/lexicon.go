// Package lexicon defines the immutable per-language surface tables that
// drive canonicalization, lexing, and keyword translation: keyword to
// token-kind mappings, punctuation, article lists, and type-inference
// rules. Lexicons are data, not code, so a new natural language can be
// added without touching the lexer or parser.
package lexicon

import "regexp"

// Kind is a closed enum of semantic token kinds a lexicon can bind a
// phrase to. Every lexicon must provide a phrase for every Kind it wants
// recognized; the lexer only understands phrases present in a Kind's map.
type Kind int

const (
	KindModuleDecl Kind = iota
	KindImport
	KindIf
	KindOtherwise
	KindMatch
	KindWhen
	KindReturn
	KindLet
	KindBe
	KindSet
	KindTo
	KindAnd
	KindOr
	KindNot
	KindIO
	KindCPU
	KindWorkflow
	KindStep
	KindDepends
	KindOn
	KindCompensate
	KindRetry
	KindTimeout
	KindMaxAttempts
	KindBackoff
	KindWithin
	KindScope
	KindStart
	KindAsync
	KindAwait
	KindWaitFor
	KindRequired
	KindBetween
	KindAtLeast
	KindAtMost
	KindMatching
	KindPattern
	KindMaybe
	KindOptionOf
	KindResultOf
	KindOkOf
	KindErrOf
	KindSomeOf
	KindNone
	KindTrue
	KindFalse
	KindNull
	KindText
	KindInt
	KindFloat
	KindBool
	KindForEach
	KindIn
	KindPlus
	KindMinus
	KindTimes
	KindDividedBy
	KindLessThan
	KindGreaterThan
	KindEqualsTo
	KindIs
	KindUnder
	KindOver
	KindMoreThan
	KindTypeDef
	KindTypeWith
	KindTypeHas
	KindTypeOneOf
	KindFuncTo
	KindFuncGiven
	KindFuncProduce
	KindFuncPerforms
)

// WhitespaceMode selects the whitespace-normalization family a lexicon
// expects the canonicalizer to apply.
type WhitespaceMode int

const (
	WhitespaceEnglish WhitespaceMode = iota
	WhitespaceChinese
	WhitespaceMixed
)

// Direction is the lexicon's script direction.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// Punctuation holds the closed set of structural punctuation a lexicon
// binds to language-specific glyphs (full-width commas, CJK brackets,...).
type Punctuation struct {
	StatementEnd   string
	ListSeparator  string
	EnumSeparator  string
	BlockStart     string
	QuoteOpen      string
	QuoteClose     string
	OptionMarkOpen string
	OptionMarkClose string
}

// CustomRule is a named regex/replacement pair applied during
// canonicalization step 6 (`customRules`).
type CustomRule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Canonicalization groups every lexicon-controlled knob the canonicalizer
// consults.
type Canonicalization struct {
	FullWidthToHalf   bool
	WhitespaceMode    WhitespaceMode
	RemoveArticles    bool
	Articles          []string
	AllowedDuplicates [][]Kind
	CustomRules       []CustomRule
}

// TypeInferenceRule is one prioritized entry in a lexicon's field-type
// inference table (§4.4 of the spec). Higher Priority wins; ties are
// broken by declaration order, so rules are evaluated in slice order and
// the first satisfied rule of the highest priority bucket wins.
type TypeInferenceRule struct {
	Pattern  *regexp.Regexp
	Type     string
	Priority int
}

// Lexicon is an immutable per-language table. Construct with New and
// never mutate a Lexicon after handing it to a Registry: the registry's
// generation counter assumes lexicons are frozen once published.
type Lexicon struct {
	ID        string // BCP-47 tag, e.g. "en-US", "zh-Hans"
	Name      string
	Direction Direction

	keywords map[Kind]string
	phrases  map[string]Kind // lower-cased phrase -> Kind, for the lexer's reverse index

	Punctuation      Punctuation
	Canonicalization Canonicalization
	Messages         map[string]string
	TypeInference    []TypeInferenceRule
}

// Keyword returns the phrase bound to kind, or "" if unbound.
func (l *Lexicon) Keyword(kind Kind) string {
	return l.keywords[kind]
}

// Keywords returns a copy of the kind->phrase table.
func (l *Lexicon) Keywords() map[Kind]string {
	out := make(map[Kind]string, len(l.keywords))
	for k, v := range l.keywords {
		out[k] = v
	}
	return out
}

// LookupPhrase resolves a lower-cased phrase back to its Kind.
func (l *Lexicon) LookupPhrase(phrase string) (Kind, bool) {
	k, ok := l.phrases[phrase]
	return k, ok
}

// SameGroup reports whether a and b should be treated as the same
// keyword for parser dispatch: either they are literally equal, or they
// share a phrase and are declared in the same AllowedDuplicates group.
// A phrase shared by two Kinds resolves, via the reverse index, to
// whichever Kind was registered last; SameGroup lets the parser still
// recognize the token under either Kind's name.
func (l *Lexicon) SameGroup(a, b Kind) bool {
	if a == b {
		return true
	}
	for _, group := range l.Canonicalization.AllowedDuplicates {
		hasA, hasB := false, false
		for _, k := range group {
			if k == a {
				hasA = true
			}
			if k == b {
				hasB = true
			}
		}
		if hasA && hasB {
			return true
		}
	}
	return false
}

// MultiWordKeywords returns every keyword phrase containing a space or an
// option-marker bracket, sorted longest-first, for the lexer's and
// canonicalizer's longest-match scans.
func (l *Lexicon) MultiWordKeywords() []string {
	var out []string
	for _, phrase := range l.keywords {
		if containsSpaceOrMarker(phrase, l.Punctuation) {
			out = append(out, phrase)
		}
	}
	sortByDescendingLength(out)
	return out
}

func containsSpaceOrMarker(phrase string, p Punctuation) bool {
	for _, r := range phrase {
		if r == ' ' {
			return true
		}
	}
	return p.OptionMarkOpen != "" && (containsSub(phrase, p.OptionMarkOpen) || containsSub(phrase, p.OptionMarkClose))
}

func containsSub(s, sub string) bool {
	if sub == "" {
		return false
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func sortByDescendingLength(xs []string) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && len(xs[j-1]) < len(xs[j]); j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// Builder assembles a Lexicon field by field, then freezes it with Build.
// Mirrors the teacher's preference for explicit constructors over bare
// struct literals scattered across call sites.
type Builder struct {
	l *Lexicon
}

// NewBuilder starts a lexicon definition for id/name/direction.
func NewBuilder(id, name string, dir Direction) *Builder {
	return &Builder{l: &Lexicon{
		ID:        id,
		Name:      name,
		Direction: dir,
		keywords:  make(map[Kind]string),
		phrases:   make(map[string]Kind),
		Messages:  make(map[string]string),
	}}
}

// Keyword binds phrase to kind. Phrases may be shared across kinds only
// when the kinds are later declared in AllowedDuplicates; Build does not
// itself enforce injectivity since that check belongs to the registry
// (it needs to see all lexicons to report a useful diagnostic).
func (b *Builder) Keyword(kind Kind, phrase string) *Builder {
	b.l.keywords[kind] = phrase
	b.l.phrases[lower(phrase)] = kind
	return b
}

func (b *Builder) Punctuation(p Punctuation) *Builder {
	b.l.Punctuation = p
	return b
}

func (b *Builder) Canonicalization(c Canonicalization) *Builder {
	b.l.Canonicalization = c
	return b
}

func (b *Builder) Message(code, template string) *Builder {
	b.l.Messages[code] = template
	return b
}

func (b *Builder) TypeRule(pattern *regexp.Regexp, typ string, priority int) *Builder {
	b.l.TypeInference = append(b.l.TypeInference, TypeInferenceRule{Pattern: pattern, Type: typ, Priority: priority})
	return b
}

// Build freezes and returns the lexicon.
func (b *Builder) Build() *Lexicon {
	return b.l
}

func lower(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
