package parser

import (
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// parseType parses the type-expression grammar:
//
//	Type      := PiiAnnot? TypeAtom Postfix?
//	PiiAnnot  := '@' 'pii' '(' LEVEL ',' CATEGORY ')'
//	TypeAtom  := 'maybe' Type
//	           | 'option' 'of' Type
//	           | 'result' 'of' Type (('or'|'and') Type)?
//	           | 'list' 'of' Type
//	           | 'map' Type 'to' Type
//	           | IDENTIFIER | 'text' | 'int' | 'float' | 'bool'
//	Postfix   := '?'   (sugar for `maybe Type`)
func (p *Parser) parseType() ast.TypeExpr {
	if p.check(lexer.TOKEN_AT) {
		return p.parsePiiAnnotation()
	}

	base := p.parseTypeAtom()
	if p.match(lexer.TOKEN_QUESTION) {
		return &ast.Maybe{Base: base}
	}
	return base
}

func (p *Parser) parsePiiAnnotation() ast.TypeExpr {
	p.advance() // '@'
	tok := p.consume(lexer.TOKEN_IDENTIFIER, "P014", "expected 'pii' after '@'")
	if !strings.EqualFold(tok.Lexeme, "pii") {
		p.error("P014", "unknown annotation; only '@pii' is supported")
	}
	p.consume(lexer.TOKEN_LPAREN, "P006", "expected '(' after '@pii'")
	level := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a PII level (l1, l2, l3)")
	p.consume(lexer.TOKEN_COMMA, "P006", "expected ',' between PII level and category")
	category := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a PII category")
	p.consume(lexer.TOKEN_RPAREN, "P006", "expected ')' to close '@pii(...)'")

	base := p.parseType()
	return &ast.TypePii{
		Base:     base,
		Level:    ast.PiiLevel(strings.ToLower(level.Lexeme)),
		Category: ast.PiiCategory(strings.ToLower(category.Lexeme)),
	}
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	switch {
	case p.matchKind(lexicon.KindMaybe):
		return &ast.Maybe{Base: p.parseType()}
	case p.matchKind(lexicon.KindOptionOf):
		return &ast.Option{Elem: p.parseType()}
	case p.matchKind(lexicon.KindResultOf):
		return p.parseResultType()
	case p.checkIdentOrWord("list") && p.peekNextIsOf():
		p.advance() // "list"
		p.advance() // "of"
		return &ast.List{Elem: p.parseType()}
	case p.checkIdentOrWord("map"):
		p.advance()
		key := p.parseType()
		p.consumeKind(lexicon.KindTo, "P006", "expected 'to' in map type (e.g. `map text to int`)")
		val := p.parseType()
		return &ast.Map{Key: key, Val: val}
	case p.matchKind(lexicon.KindText):
		return &ast.TypeName{Name: "text"}
	case p.matchKind(lexicon.KindInt):
		return &ast.TypeName{Name: "int"}
	case p.matchKind(lexicon.KindFloat):
		return &ast.TypeName{Name: "float"}
	case p.matchKind(lexicon.KindBool):
		return &ast.TypeName{Name: "bool"}
	case p.check(lexer.TOKEN_IDENTIFIER):
		tok := p.advance()
		return &ast.TypeName{Name: tok.Lexeme}
	default:
		p.error("P002", "expected a type")
		return &ast.TypeName{Name: "text"}
	}
}

func (p *Parser) parseResultType() ast.TypeExpr {
	okType := p.parseType()
	var errType ast.TypeExpr
	if p.matchKind(lexicon.KindOr) || p.matchKind(lexicon.KindAnd) {
		errType = p.parseType()
	}
	return &ast.Result{Ok: okType, Err: errType}
}

// checkIdentOrWord reports whether the current token is a plain
// identifier equal (case-insensitively) to word. Used for the small set
// of type-grammar words ("list", "map") that are not closed-set
// lexicon.Kind keywords because they only ever appear in type position.
func (p *Parser) checkIdentOrWord(word string) bool {
	return p.check(lexer.TOKEN_IDENTIFIER) && strings.EqualFold(p.peek().Lexeme, word)
}

// peekNextIsOf reports whether the token after the current one is the
// word "of", used to disambiguate `list of T` from a bare identifier
// named "list".
func (p *Parser) peekNextIsOf() bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	next := p.tokens[p.current+1]
	return next.Type == lexer.TOKEN_IDENTIFIER && strings.EqualFold(next.Lexeme, "of")
}
