package parser

import (
	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// parseConstraints consumes zero or more trailing field constraints:
//
//	Constraint := 'required'
//	            | 'between' NUMBER 'and' NUMBER
//	            | 'at least' NUMBER
//	            | 'at most' NUMBER
//	            | 'matching' 'pattern' STRING
//
// Constraints continue to apply as long as the next token starts one;
// parsing stops at the list separator or statement end.
func (p *Parser) parseConstraints() []ast.Constraint {
	var out []ast.Constraint
	for {
		switch {
		case p.matchKind(lexicon.KindRequired):
			out = append(out, &ast.RequiredConstraint{})
		case p.matchKind(lexicon.KindBetween):
			min := p.parseConstraintNumber()
			p.consumeKind(lexicon.KindAnd, "P006", "expected 'and' in 'between X and Y'")
			max := p.parseConstraintNumber()
			out = append(out, &ast.RangeConstraint{Min: &min, Max: &max})
		case p.matchKind(lexicon.KindAtLeast):
			min := p.parseConstraintNumber()
			out = append(out, &ast.RangeConstraint{Min: &min})
		case p.matchKind(lexicon.KindAtMost):
			max := p.parseConstraintNumber()
			out = append(out, &ast.RangeConstraint{Max: &max})
		case p.matchKind(lexicon.KindMatching):
			p.consumeKind(lexicon.KindPattern, "P006", "expected 'pattern' after 'matching'")
			tok := p.consume(lexer.TOKEN_STRING_LITERAL, "P002", "expected a quoted pattern string")
			regex, _ := tok.Literal.(string)
			out = append(out, &ast.PatternConstraint{Regexp: regex})
		default:
			return out
		}
	}
}

func (p *Parser) parseConstraintNumber() float64 {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_INT_LITERAL:
		p.advance()
		if v, ok := tok.Literal.(int64); ok {
			return float64(v)
		}
	case lexer.TOKEN_FLOAT_LITERAL:
		p.advance()
		if v, ok := tok.Literal.(float64); ok {
			return v
		}
	}
	p.error("P002", "expected a number")
	return 0
}
