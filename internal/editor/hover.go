package editor

import (
	"fmt"
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/index"
)

// Hover is the rendered hover content for a symbol.
type Hover struct {
	Contents string
	Range    Range
}

// HoverForFunc renders a function's hover per §4.13: "(params) -> ret
// performs EFFECTS".
func HoverForFunc(fn *core.Func) Hover {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(FormatType(p.Type))
	}
	sb.WriteString(") -> ")
	sb.WriteString(FormatType(fn.RetType))
	if len(fn.Effects) > 0 {
		sb.WriteString(" performs ")
		for i, e := range fn.Effects {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.String())
		}
	}
	return Hover{Contents: sb.String(), Range: FromOrigin(fn.Orig)}
}

// HoverForField renders a data field's hover as `name: type`.
func HoverForField(f *core.Field) Hover {
	return Hover{Contents: fmt.Sprintf("%s: %s", f.Name, FormatType(f.Type)), Range: FromOrigin(f.Orig)}
}

// HoverForSymbol renders a generic hover for an indexed symbol when the
// underlying Core declaration isn't directly available (e.g. a cross-
// module lookup that only has the index entry).
func HoverForSymbol(sym *index.Symbol) Hover {
	var content string
	switch sym.Kind {
	case index.SymbolKindFunc:
		if sym.Signature != "" {
			content = sym.Signature
		} else {
			content = "func " + sym.Name
		}
	case index.SymbolKindData:
		content = "data " + sym.Name
	case index.SymbolKindEnum:
		content = "enum " + sym.Name
	case index.SymbolKindField, index.SymbolKindEnumVariant:
		content = sym.Name
		if sym.ContainerName != "" {
			content = fmt.Sprintf("%s.%s", sym.ContainerName, sym.Name)
		}
	case index.SymbolKindImport:
		content = "module " + sym.Name
	}
	return Hover{Contents: content, Range: FromOrigin(sym.Origin)}
}

// FormatType renders a Core type expression as surface-like text, e.g.
// `maybe int`, `list of text`, `result of Invoice or text`. It is
// grounded on the teacher's tooling.formatType, generalized from
// ast.TypeNode's primitive/array/hash shapes to Core's richer TypeExpr
// variants.
func FormatType(t core.TypeExpr) string {
	if t == nil {
		return ""
	}
	switch n := t.(type) {
	case *core.TypeName:
		return n.Name
	case *core.TypeVar:
		return n.Name
	case *core.EffectVar:
		return n.Name
	case *core.Maybe:
		return "maybe " + FormatType(n.Base)
	case *core.Option:
		return "option of " + FormatType(n.Elem)
	case *core.Result:
		return fmt.Sprintf("result of %s or %s", FormatType(n.Ok), FormatType(n.Err))
	case *core.List:
		return "list of " + FormatType(n.Elem)
	case *core.Map:
		return fmt.Sprintf("map of %s to %s", FormatType(n.Key), FormatType(n.Val))
	case *core.TypeApp:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = FormatType(a)
		}
		return fmt.Sprintf("%s<%s>", FormatType(n.Base), strings.Join(args, ", "))
	case *core.TypePii:
		return fmt.Sprintf("@pii(%s, %s) %s", n.Level, n.Category, FormatType(n.Base))
	case *core.FuncType:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = FormatType(p)
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), FormatType(n.Ret))
	default:
		return ""
	}
}
