package parser

import (
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// Expression grammar, lowest to highest precedence:
//
//	expression → or
//	or         → and ( 'or' and )*
//	and        → equality ( 'and' equality )*
//	equality   → term ( ('equals to'|'is'|'=='|'!='|'less than'|'<'|'<='|'greater than'|'>'|'>='|'under'|'over'|'more than') term )*
//	term       → factor ( ('plus'|'+'|'minus'|'-') factor )*
//	factor     → unary ( ('times'|'*'|'divided by'|'/') unary )*
//	unary      → ( 'not'|'!'|'-' ) unary | postfix
//	postfix    → primary ( '(' args? ')' | '.' IDENTIFIER )*
//	primary    → literal | IDENTIFIER | '(' expression ')' | construct
//	           | 'ok of' e | 'err of' e | 'some of' e | 'none'
//	           | 'await' e | 'given' params ('produce' type)? '->' body
func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.matchKind(lexicon.KindOr) {
		op := p.previous()
		right := p.parseAnd()
		left = &ast.Binary{Op: "or", Left: left, Right: right, Loc: spanFrom(op)}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.matchKind(lexicon.KindAnd) {
		op := p.previous()
		right := p.parseEquality()
		left = &ast.Binary{Op: "and", Left: left, Right: right, Loc: spanFrom(op)}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseTerm()
	for {
		var canonical string
		switch {
		case p.matchKind(lexicon.KindEqualsTo), p.matchKind(lexicon.KindIs), p.match(lexer.TOKEN_EQ):
			canonical = "=="
		case p.match(lexer.TOKEN_NEQ):
			canonical = "!="
		case p.matchKind(lexicon.KindLessThan), p.matchKind(lexicon.KindUnder), p.match(lexer.TOKEN_LT):
			canonical = "<"
		case p.match(lexer.TOKEN_LTE):
			canonical = "<="
		case p.matchKind(lexicon.KindGreaterThan), p.matchKind(lexicon.KindOver), p.matchKind(lexicon.KindMoreThan), p.match(lexer.TOKEN_GT):
			canonical = ">"
		case p.match(lexer.TOKEN_GTE):
			canonical = ">="
		default:
			return left
		}
		op := p.previous()
		right := p.parseTerm()
		left = &ast.Binary{Op: canonical, Left: left, Right: right, Loc: spanFrom(op)}
	}
}

func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for {
		var canonical string
		switch {
		case p.matchKind(lexicon.KindPlus), p.match(lexer.TOKEN_PLUS):
			canonical = "+"
		case p.matchKind(lexicon.KindMinus), p.match(lexer.TOKEN_MINUS):
			canonical = "-"
		default:
			return left
		}
		op := p.previous()
		right := p.parseFactor()
		left = &ast.Binary{Op: canonical, Left: left, Right: right, Loc: spanFrom(op)}
	}
}

func (p *Parser) parseFactor() ast.Expr {
	left := p.parseUnary()
	for {
		var canonical string
		switch {
		case p.matchKind(lexicon.KindTimes), p.match(lexer.TOKEN_STAR):
			canonical = "*"
		case p.matchKind(lexicon.KindDividedBy), p.match(lexer.TOKEN_SLASH):
			canonical = "/"
		default:
			return left
		}
		op := p.previous()
		right := p.parseUnary()
		left = &ast.Binary{Op: canonical, Left: left, Right: right, Loc: spanFrom(op)}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch {
	case p.matchKind(lexicon.KindNot), p.match(lexer.TOKEN_BANG):
		op := p.previous()
		return &ast.Unary{Op: "not", Operand: p.parseUnary(), Loc: spanFrom(op)}
	case p.match(lexer.TOKEN_MINUS):
		op := p.previous()
		return &ast.Unary{Op: "-", Operand: p.parseUnary(), Loc: spanFrom(op)}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(lexer.TOKEN_LPAREN):
			expr = p.finishCall(expr)
		case p.check(lexer.TOKEN_DOT) && p.current+1 < len(p.tokens) && p.tokens[p.current+1].Type == lexer.TOKEN_IDENTIFIER:
			p.advance() // '.'
			field := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a field name after '.'")
			if name, ok := expr.(*ast.Name); ok {
				name.Value = name.Value + "." + field.Lexeme
				continue
			}
			expr = &ast.Name{Value: field.Lexeme, Loc: spanFrom(field)}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	start := p.peek()
	p.advance() // '('
	var args []ast.Expr
	if !p.check(lexer.TOKEN_RPAREN) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}
	p.consume(lexer.TOKEN_RPAREN, "P006", "expected ')' to close call arguments")

	target := ""
	if name, ok := callee.(*ast.Name); ok {
		target = name.Value
	} else {
		p.error("P002", "expected a callable name before '('")
	}
	return &ast.Call{Target: target, Args: args, Loc: spanFrom(start)}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch {
	case p.match(lexer.TOKEN_TRUE):
		return &ast.Bool{Value: true, Loc: spanFrom(tok)}
	case p.match(lexer.TOKEN_FALSE):
		return &ast.Bool{Value: false, Loc: spanFrom(tok)}
	case p.match(lexer.TOKEN_NULL):
		return &ast.NullExpr{Loc: spanFrom(tok)}
	case p.match(lexer.TOKEN_INT_LITERAL):
		v, _ := tok.Literal.(int64)
		return &ast.Int{Value: v, Loc: spanFrom(tok)}
	case p.match(lexer.TOKEN_FLOAT_LITERAL):
		v, _ := tok.Literal.(float64)
		return &ast.Double{Value: v, Loc: spanFrom(tok)}
	case p.match(lexer.TOKEN_STRING_LITERAL):
		v, _ := tok.Literal.(string)
		return &ast.String{Value: v, Loc: spanFrom(tok)}
	case p.matchKind(lexicon.KindNone):
		return &ast.None{Loc: spanFrom(tok)}
	case p.matchKind(lexicon.KindOkOf):
		return &ast.Ok{Value: p.parseExpression(), Loc: spanFrom(tok)}
	case p.matchKind(lexicon.KindErrOf):
		return &ast.Err{Value: p.parseExpression(), Loc: spanFrom(tok)}
	case p.matchKind(lexicon.KindSomeOf):
		return &ast.Some{Value: p.parseExpression(), Loc: spanFrom(tok)}
	case p.matchKind(lexicon.KindAwait):
		return &ast.Await{Value: p.parseExpression(), Loc: spanFrom(tok)}
	case p.matchKind(lexicon.KindFuncGiven):
		return p.parseLambda(tok)
	case p.match(lexer.TOKEN_LPAREN):
		inner := p.parseExpression()
		p.consume(lexer.TOKEN_RPAREN, "P006", "expected ')' to close parenthesized expression")
		return inner
	case p.check(lexer.TOKEN_IDENTIFIER):
		name := p.advance()
		if p.checkKind(lexicon.KindTypeWith) {
			return p.parseConstruct(name)
		}
		return &ast.Name{Value: name.Lexeme, Loc: spanFrom(name)}
	default:
		p.error("P002", "expected an expression")
		p.advance()
		return &ast.NullExpr{Loc: spanFrom(tok)}
	}
}

// parseConstruct parses `TypeName with f1 = e1, f2 = e2`.
func (p *Parser) parseConstruct(typeName lexer.Token) ast.Expr {
	p.advance() // 'with'
	var fields []ast.FieldInit
	for {
		field := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a field name")
		p.consume(lexer.TOKEN_EQUALS, "P006", "expected '=' after field name")
		value := p.parseExpression()
		fields = append(fields, ast.FieldInit{Name: field.Lexeme, Value: value})
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	return &ast.Construct{TypeName: typeName.Lexeme, Fields: fields, Loc: spanFrom(typeName)}
}

// parseLambda parses `given P1 as T1, P2 as T2, produce RetType? -> BODY`.
func (p *Parser) parseLambda(start lexer.Token) ast.Expr {
	var params []*ast.Parameter
	if !p.check(lexer.TOKEN_ARROW) && !p.checkKind(lexicon.KindFuncProduce) {
		for {
			name := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a parameter name")
			var typ ast.TypeExpr
			if ok := p.tryConsumeWord("as"); ok {
				typ = p.parseType()
			}
			params = append(params, &ast.Parameter{Name: name.Lexeme, Type: typ, Loc: spanFrom(name)})
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}

	var ret ast.TypeExpr
	if p.matchKind(lexicon.KindFuncProduce) {
		ret = p.parseType()
	}

	p.consume(lexer.TOKEN_ARROW, "P006", "expected '->' in lambda body")
	body := []ast.Stmt{&ast.ExprStmt{Expr: p.parseExpression()}}
	return &ast.Lambda{Params: params, RetType: ret, Body: body, Loc: spanFrom(start)}
}

// tryConsumeWord consumes the current token if it is an identifier
// matching word case-insensitively (for the handful of grammar words
// that are plain words rather than closed-set lexicon.Kind keywords).
func (p *Parser) tryConsumeWord(word string) bool {
	if p.check(lexer.TOKEN_IDENTIFIER) && strings.EqualFold(p.peek().Lexeme, word) {
		p.advance()
		return true
	}
	return false
}
