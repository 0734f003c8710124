// Package inference implements field-type inference for Data fields
// that omit an explicit `as TYPE` clause.
package inference

import (
	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// InferFieldType applies the field-type inference order: range bounds,
// then a pattern constraint, then the lexicon's prioritized regex
// rules, defaulting to Text. The returned bool reports whether the type
// was inferred (vs. explicit) so callers can set Field.TypeInferred.
func InferFieldType(name string, constraints []ast.Constraint, lex *lexicon.Lexicon) (ast.TypeExpr, bool) {
	if t, ok := fromRange(constraints); ok {
		return t, true
	}
	if hasPattern(constraints) {
		return &ast.TypeName{Name: "text"}, true
	}
	if t, ok := fromLexiconRules(name, lex); ok {
		return t, true
	}
	return &ast.TypeName{Name: "text"}, true
}

func fromRange(constraints []ast.Constraint) (ast.TypeExpr, bool) {
	for _, c := range constraints {
		r, ok := c.(*ast.RangeConstraint)
		if !ok {
			continue
		}
		if (r.Min != nil && hasFraction(*r.Min)) || (r.Max != nil && hasFraction(*r.Max)) {
			return &ast.TypeName{Name: "float"}, true
		}
		return &ast.TypeName{Name: "int"}, true
	}
	return nil, false
}

func hasFraction(f float64) bool {
	return f != float64(int64(f))
}

func hasPattern(constraints []ast.Constraint) bool {
	for _, c := range constraints {
		if _, ok := c.(*ast.PatternConstraint); ok {
			return true
		}
	}
	return false
}

func fromLexiconRules(name string, lex *lexicon.Lexicon) (ast.TypeExpr, bool) {
	bestPriority := -1
	bestType := ""
	for _, rule := range lex.TypeInference {
		if rule.Pattern.MatchString(name) && rule.Priority > bestPriority {
			bestPriority = rule.Priority
			bestType = rule.Type
		}
	}
	if bestType == "" {
		return nil, false
	}
	return &ast.TypeName{Name: bestType}, true
}

// RefineAgainstRange reconciles a previously name-inferred Text field
// against a Range constraint discovered later in the same declaration:
// Int may promote to Float; any other conflict keeps the earlier type.
func RefineAgainstRange(current ast.TypeExpr, r *ast.RangeConstraint) ast.TypeExpr {
	name, ok := current.(*ast.TypeName)
	if !ok {
		return current
	}
	fractional := (r.Min != nil && hasFraction(*r.Min)) || (r.Max != nil && hasFraction(*r.Max))
	switch name.Name {
	case "text":
		if fractional {
			return &ast.TypeName{Name: "float"}
		}
		return &ast.TypeName{Name: "int"}
	case "int":
		if fractional {
			return &ast.TypeName{Name: "float"}
		}
		return current
	default:
		return current
	}
}
