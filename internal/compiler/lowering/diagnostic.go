// Package lowering transforms a parsed ast.Module into the Core IR
// (internal/compiler/core), attaching file-qualified Origin provenance,
// closing effect-capability sets, and rewriting Workflow into its Core
// shape. Lowering never fails outright: an unlowerable statement,
// expression, or pattern is replaced with a safe Core placeholder (an
// empty Block, a NullExpr, or a NullPattern), while an unlowerable
// declaration, constraint, or type expression lowers to nil and is
// left out; each case is recorded as an L10x diagnostic.
package lowering

import "fmt"

// Diagnostic is a coded lowering note, mirroring parser.ParseError's
// shape but keyed to a Core Origin rather than an AST Span.
type Diagnostic struct {
	Code    string
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %d:%d: %s", d.Code, d.Line, d.Column, d.Message)
}

type lowerer struct {
	file string
	diag []Diagnostic
}

func (lw *lowerer) report(code, message string, line, column int) {
	lw.diag = append(lw.diag, Diagnostic{Code: code, Message: message, Line: line, Column: column})
}
