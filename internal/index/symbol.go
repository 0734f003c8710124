// Package index maintains a cross-module workspace index: one record per
// analyzed file listing its declared module name and the symbols it
// exports (functions, data shapes and their fields, enums and their
// variants). It serves two consumers: module-name-to-path resolution for
// §6's dotted-import lookup, and go-to-definition/find-references/
// workspace-symbol queries for editor services.
package index

import (
	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// SymbolKind categorizes an indexed symbol for editor display.
type SymbolKind int

const (
	SymbolKindFunc SymbolKind = iota
	SymbolKindData
	SymbolKindField
	SymbolKindEnum
	SymbolKindEnumVariant
	SymbolKindImport
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolKindFunc:
		return "func"
	case SymbolKindData:
		return "data"
	case SymbolKindField:
		return "field"
	case SymbolKindEnum:
		return "enum"
	case SymbolKindEnumVariant:
		return "enum-variant"
	case SymbolKindImport:
		return "import"
	default:
		return "unknown"
	}
}

// Symbol is one named declaration or sub-declaration reachable from a
// file's top level.
type Symbol struct {
	ID            string
	Name          string
	Kind          SymbolKind
	ContainerName string
	Signature     string
	Origin        core.Origin
}

// extractSymbols flattens a module's declarations into indexed symbols.
// It is grounded on the teacher's API.extractResourceSymbols family,
// retargeted from ast.ResourceNode fields/relationships/hooks to Core's
// Data/Enum/Func declarations.
func extractSymbols(mod *core.Module, newID func() string) []*Symbol {
	var out []*Symbol
	for _, decl := range mod.Decls {
		switch d := decl.(type) {
		case *core.Import:
			out = append(out, &Symbol{
				ID:     newID(),
				Name:   d.Name,
				Kind:   SymbolKindImport,
				Origin: d.Orig,
			})
		case *core.Data:
			out = append(out, &Symbol{
				ID:     newID(),
				Name:   d.Name,
				Kind:   SymbolKindData,
				Origin: d.Orig,
			})
			for _, f := range d.Fields {
				out = append(out, &Symbol{
					ID:            newID(),
					Name:          f.Name,
					Kind:          SymbolKindField,
					ContainerName: d.Name,
					Origin:        f.Orig,
				})
			}
		case *core.Enum:
			out = append(out, &Symbol{
				ID:     newID(),
				Name:   d.Name,
				Kind:   SymbolKindEnum,
				Origin: d.Orig,
			})
			for _, v := range d.Variants {
				out = append(out, &Symbol{
					ID:            newID(),
					Name:          v,
					Kind:          SymbolKindEnumVariant,
					ContainerName: d.Name,
					Origin:        d.Orig,
				})
			}
		case *core.Func:
			out = append(out, &Symbol{
				ID:            newID(),
				Name:          d.Name,
				Kind:          SymbolKindFunc,
				Signature:     funcSignature(d),
				ContainerName: mod.Name,
				Origin:        d.Orig,
			})
		}
	}
	return out
}

func funcSignature(f *core.Func) string {
	sig := "to " + f.Name
	if len(f.Params) == 0 {
		return sig
	}
	sig += " given"
	for i, p := range f.Params {
		if i > 0 {
			sig += ","
		}
		sig += " " + p.Name
	}
	return sig
}
