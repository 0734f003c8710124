// Package canon implements the canonicalizer: a pure, idempotent pass
// that turns raw multilingual source into the normalized form the lexer
// scans deterministically. Nothing here depends on a parse; it operates
// on runes and the lexicon's declared tables only.
package canon

import (
	"regexp"
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// Trivia is a retained comment span, emitted only when Options.KeepTrivia
// is set; otherwise comments are stripped and only the newline survives.
type Trivia struct {
	Line, Column int
	Text         string
}

// Options controls canonicalization behavior that isn't lexicon-derived.
type Options struct {
	KeepTrivia bool
}

// Result is the canonicalized text plus any retained comment trivia.
type Result struct {
	Text   string
	Trivia []Trivia
}

var (
	smartQuotes = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(`[^\S\n]{2,}`)
	spaceBeforeP = regexp.MustCompile(`[^\S\n]+([.,:;!?])`)
)

// Canonicalize runs the eight ordered steps against text using lex's
// tables. It never fails: malformed input (e.g. an unterminated string)
// is preserved for the lexer to diagnose as L002.
func Canonicalize(text string, lex *lexicon.Lexicon, opts Options) Result {
	segs := splitProtectedStrings(text, lex)

	var trivia []Trivia
	line, col := 1, 1
	var out strings.Builder

	for _, seg := range segs {
		if seg.protected {
			out.WriteString(seg.text)
			advance(&line, &col, seg.text)
			continue
		}
		processed, segTrivia := canonicalizeSegment(seg.text, lex, opts, line, col)
		trivia = append(trivia, segTrivia...)
		out.WriteString(processed)
		advance(&line, &col, processed)
	}

	return Result{Text: out.String(), Trivia: trivia}
}

func advance(line, col *int, s string) {
	for _, r := range s {
		if r == '\n' {
			*line++
			*col = 1
		} else {
			*col++
		}
	}
}

type segment struct {
	text      string
	protected bool
}

// splitProtectedStrings walks text once, carving out quoted spans (per
// lex.Punctuation.QuoteOpen/Close with standard backslash escapes) as
// protected segments copied verbatim. An unterminated quote leaves the
// remainder as one protected tail segment; the lexer will emit L002.
func splitProtectedStrings(text string, lex *lexicon.Lexicon) []segment {
	open, close := lex.Punctuation.QuoteOpen, lex.Punctuation.QuoteClose
	if open == "" {
		return []segment{{text: text}}
	}

	var segs []segment
	i := 0
	for i < len(text) {
		idx := strings.Index(text[i:], open)
		if idx < 0 {
			segs = append(segs, segment{text: text[i:]})
			break
		}
		start := i + idx
		if start > i {
			segs = append(segs, segment{text: text[i:start]})
		}

		j := start + len(open)
		for j < len(text) {
			if strings.HasPrefix(text[j:], `\`) && j+1 < len(text) {
				j += 2
				continue
			}
			if strings.HasPrefix(text[j:], close) {
				j += len(close)
				break
			}
			j++
		}
		segs = append(segs, segment{text: text[start:j], protected: true})
		i = j
	}
	return segs
}

// canonicalizeSegment applies steps 1-8 outside of protected string
// spans. startLine/startCol seed trivia positions for this segment.
func canonicalizeSegment(text string, lex *lexicon.Lexicon, opts Options, startLine, startCol int) (string, []Trivia) {
	// 1. line endings
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// 2. tabs -> two spaces, trim trailing whitespace per line, collapse blank runs
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		l = strings.ReplaceAll(l, "\t", "  ")
		lines[i] = strings.TrimRight(l, " \t")
	}
	text = strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")

	// 3. smart quotes -> straight, preserving escaped quotes
	text = smartQuotes.Replace(text)

	// 4. full-width -> half-width
	if lex.Canonicalization.FullWidthToHalf {
		text = fullWidthToHalf(text)
	}

	// 5. remove articles (word-boundary, case-insensitive)
	if lex.Canonicalization.RemoveArticles {
		text = removeArticles(text, lex.Canonicalization.Articles)
	}

	// 6. lower-case multi-word keywords by longest-match scan
	text = lowerMultiWordKeywords(text, lex.MultiWordKeywords())

	// 7. strip line comments, preserving the newline; or emit trivia
	text, trivia := stripComments(text, opts, startLine, startCol)

	// 8. normalize punctuation
	text = spaceBeforeP.ReplaceAllString(text, "$1")
	text = multiSpace.ReplaceAllString(text, " ")

	return text, trivia
}

func fullWidthToHalf(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 0xFF10 && r <= 0xFF19: // fullwidth digits
			b.WriteRune(r - 0xFF10 + '0')
		case r >= 0xFF01 && r <= 0xFF5E: // fullwidth ASCII punctuation/letters block
			b.WriteRune(r - 0xFEE0)
		case r == '　': // ideographic space
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func removeArticles(text string, articles []string) string {
	for _, a := range articles {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(a) + `\b\s*`)
		text = re.ReplaceAllString(text, "")
	}
	return text
}

func lowerMultiWordKeywords(text string, phrases []string) string {
	for _, p := range phrases {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(p))
		text = re.ReplaceAllStringFunc(text, strings.ToLower)
	}
	return text
}

func stripComments(text string, opts Options, startLine, startCol int) (string, []Trivia) {
	var trivia []Trivia
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		idx := commentStart(l)
		if idx < 0 {
			continue
		}
		if opts.KeepTrivia {
			trivia = append(trivia, Trivia{
				Line:   startLine + i,
				Column: idx + 1,
				Text:   l[idx:],
			})
		}
		lines[i] = strings.TrimRight(l[:idx], " ")
	}
	return strings.Join(lines, "\n"), trivia
}

// commentStart finds the earliest unescaped "//" or "#" outside of a
// quote that already should have been carved out as a protected segment
// by the time this runs; a bare scan is sufficient here.
func commentStart(line string) int {
	best := -1
	if idx := strings.Index(line, "//"); idx >= 0 {
		best = idx
	}
	if idx := strings.Index(line, "#"); idx >= 0 && (best < 0 || idx < best) {
		best = idx
	}
	return best
}
