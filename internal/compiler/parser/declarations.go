package parser

import (
	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/inference"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// parseDataOrEnum parses a `define` declaration, dispatching on the
// clause that follows the type name:
//
//	define NAME as one of V1, V2, ...    -> Enum
//	define NAME with|has F1, F2, ...     -> Data
func (p *Parser) parseDataOrEnum() ast.Decl {
	start := p.advance() // 'define'
	name := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a type name after 'define'")

	switch {
	case p.matchKind(lexicon.KindTypeOneOf):
		return p.parseEnumBody(start, name.Lexeme)
	case p.matchKind(lexicon.KindTypeWith), p.matchKind(lexicon.KindTypeHas):
		return p.parseDataBody(start, name.Lexeme)
	default:
		p.error("P006", "expected 'with', 'has', or 'as one of' after the type name")
		p.synchronize()
		return &ast.Data{Name: name.Lexeme, Loc: spanFrom(start)}
	}
}

func (p *Parser) parseEnumBody(start, nameTok lexer.Token) *ast.Enum {
	var variants []string
	for {
		variant := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a variant name")
		variants = append(variants, variant.Lexeme)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expectStatementEnd()
	return &ast.Enum{Name: nameTok.Lexeme, Variants: variants, Loc: spanFrom(start)}
}

func (p *Parser) parseDataBody(start, nameTok lexer.Token) *ast.Data {
	var fields []*ast.Field
	for {
		fields = append(fields, p.parseField())
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expectStatementEnd()
	return &ast.Data{Name: nameTok.Lexeme, Fields: fields, Loc: spanFrom(start)}
}

// parseField parses one `NAME (as TYPE)? CONSTRAINT*` entry. A field
// that omits its type has one inferred from its constraints and name
// (§4.4's field-type inference order).
func (p *Parser) parseField() *ast.Field {
	name := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a field name")
	field := &ast.Field{Name: name.Lexeme, Loc: spanFrom(name)}

	explicit := p.tryConsumeWord("as")
	if explicit {
		field.Type = p.parseType()
	}

	field.Constraints = p.parseConstraints()

	if explicit {
		// A later Range constraint may still refine an explicitly Text
		// field, per the field-type inference order's refinement rule.
		for _, c := range field.Constraints {
			if r, ok := c.(*ast.RangeConstraint); ok {
				field.Type = inference.RefineAgainstRange(field.Type, r)
			}
		}
		return field
	}

	inferred, ok := inference.InferFieldType(field.Name, field.Constraints, p.lex)
	field.Type = inferred
	field.TypeInferred = ok
	return field
}

// parseFunc parses:
//
//	to NAME (given P1 as T1, P2 as T2, ...)? (, produce RetType)? (performs EffectList)? :
//	  { BODY }
func (p *Parser) parseFunc() *ast.Func {
	start := p.advance() // 'to' (KindFuncTo)
	name := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a function name after 'to'")
	fn := &ast.Func{Name: name.Lexeme, Loc: spanFrom(start)}
	p.match(lexer.TOKEN_COMMA) // optional leading comma before 'given'/'produce'

	if p.matchKind(lexicon.KindFuncGiven) {
		fn.Params = p.parseParamList()
	}

	p.match(lexer.TOKEN_COMMA)
	if p.matchKind(lexicon.KindFuncProduce) {
		fn.RetType = p.parseType()
	} else {
		fn.RetTypeInferred = true
	}

	p.match(lexer.TOKEN_COMMA)
	if p.matchKind(lexicon.KindFuncPerforms) {
		fn.EffectCapsExplicit = true
		fn.Effects, fn.EffectCaps = p.parseEffectList()
	}

	p.match(lexer.TOKEN_COLON)
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseParamList() []*ast.Parameter {
	var params []*ast.Parameter
	for {
		name := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a parameter name")
		param := &ast.Parameter{Name: name.Lexeme, Loc: spanFrom(name)}
		if p.tryConsumeWord("as") {
			param.Type = p.parseType()
		}
		params = append(params, param)
		if !p.check(lexer.TOKEN_COMMA) {
			break
		}
		// The comma before 'produce'/'performs' belongs to the header,
		// not another parameter; only consume it when another
		// parameter name actually follows.
		if p.current+1 >= len(p.tokens) || p.tokens[p.current+1].Type != lexer.TOKEN_IDENTIFIER {
			break
		}
		p.advance()
	}
	return params
}

// parseEffectList parses the `performs` clause:
//
//	io | cpu | io and CAP1 | with CAP1 and CAP2 | [CAP1, CAP2]
//
// returning the base effect atoms and the capability names alongside
// them, in declaration order.
func (p *Parser) parseEffectList() (effects []string, caps []string) {
	if p.matchKind(lexicon.KindIO) {
		effects = append(effects, "io")
	} else if p.matchKind(lexicon.KindCPU) {
		effects = append(effects, "cpu")
	}

	switch {
	case p.matchKind(lexicon.KindAnd):
		caps = append(caps, p.parseCapabilityList()...)
	case p.tryConsumeWord("with"):
		caps = append(caps, p.parseCapabilityList()...)
	case p.match(lexer.TOKEN_LBRACKET):
		for !p.check(lexer.TOKEN_RBRACKET) && !p.isAtEnd() {
			capTok := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a capability name")
			caps = append(caps, capTok.Lexeme)
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
		p.consume(lexer.TOKEN_RBRACKET, "P006", "expected ']' to close the capability list")
	}
	return effects, caps
}

func (p *Parser) parseCapabilityList() []string {
	var out []string
	for {
		capTok := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a capability name")
		out = append(out, capTok.Lexeme)
		if !p.matchKind(lexicon.KindAnd) && !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	return out
}
