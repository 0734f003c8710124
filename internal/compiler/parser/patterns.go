package parser

import (
	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// parsePattern parses one match-case pattern:
//
//	Pattern := 'null'
//	         | TYPE_NAME '(' IDENT (',' IDENT)* ')'   // constructor destructure
//	         | INT_LITERAL
//	         | IDENTIFIER                              // catch-all binding
func (p *Parser) parsePattern() ast.Pattern {
	switch {
	case p.matchKind(lexicon.KindNull):
		return &ast.NullPattern{}
	case p.check(lexer.TOKEN_INT_LITERAL):
		tok := p.advance()
		v, _ := tok.Literal.(int64)
		return &ast.IntPattern{Value: v}
	case p.check(lexer.TOKEN_IDENTIFIER):
		name := p.advance()
		if !p.check(lexer.TOKEN_LPAREN) {
			return &ast.NamePattern{Name: name.Lexeme}
		}
		p.advance() // '('
		var names []string
		var args []ast.Pattern
		if !p.check(lexer.TOKEN_RPAREN) {
			for {
				bound := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a binding name")
				names = append(names, bound.Lexeme)
				args = append(args, &ast.NamePattern{Name: bound.Lexeme})
				if !p.match(lexer.TOKEN_COMMA) {
					break
				}
			}
		}
		p.consume(lexer.TOKEN_RPAREN, "P006", "expected ')' to close constructor pattern")
		return &ast.CtorPattern{TypeName: name.Lexeme, Names: names, Args: args}
	default:
		p.error("P002", "expected a pattern")
		p.advance()
		return &ast.NamePattern{Name: "_"}
	}
}
