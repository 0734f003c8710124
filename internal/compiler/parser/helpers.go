package parser

import (
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 || p.current > len(p.tokens) {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

func (p *Parser) checkKind(k lexicon.Kind) bool {
	if p.isAtEnd() || p.peek().Type != lexer.TOKEN_KEYWORD {
		return false
	}
	if p.lex == nil {
		return p.peek().Kind == k
	}
	return p.lex.SameGroup(p.peek().Kind, k)
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) matchKind(kinds ...lexicon.Kind) bool {
	for _, k := range kinds {
		if p.checkKind(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType, code, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(code, message)
	return lexer.Token{Type: lexer.TOKEN_ERROR}
}

func (p *Parser) consumeKind(k lexicon.Kind, code, message string) lexer.Token {
	if p.checkKind(k) {
		return p.advance()
	}
	p.error(code, message)
	return lexer.Token{Type: lexer.TOKEN_ERROR}
}

func (p *Parser) error(code, message string) {
	p.errors = append(p.errors, newParseError(code, message, p.peek()))
}

// synchronize recovers to the next statement/declaration boundary after
// an error: the next module-level keyword or a statement-end token.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.TOKEN_DOT {
			return
		}
		if p.checkKind(lexicon.KindImport) || p.checkKind(lexicon.KindTypeDef) || p.checkKind(lexicon.KindFuncTo) {
			return
		}
		p.advance()
	}
}
