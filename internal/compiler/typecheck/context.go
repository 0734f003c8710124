// Package typecheck implements the two-pass Core IR type checker:
// collect module context (data/enum/func signatures, reject duplicate
// exported names), then check each function body in a fresh scope.
package typecheck

import (
	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// Context is the module-wide symbol table built by the collect pass:
// every Data/Enum/Func declaration plus import aliases, keyed by name.
type Context struct {
	Data    map[string]*core.Data
	Enums   map[string]*core.Enum
	Funcs   map[string]*core.Func
	Imports map[string]string // alias (or bare dotted name) -> imported module name
}

// CollectContext walks mod's top-level declarations once, building the
// Context and reporting S003 for any exported name (Func/Data/Enum)
// declared more than once.
func CollectContext(mod *core.Module) (*Context, []diagnostics.Diagnostic) {
	ctx := &Context{
		Data:    map[string]*core.Data{},
		Enums:   map[string]*core.Enum{},
		Funcs:   map[string]*core.Func{},
		Imports: map[string]string{},
	}
	var diags []diagnostics.Diagnostic

	seen := map[string]core.Origin{}
	declare := func(name string, origin core.Origin) bool {
		if prior, ok := seen[name]; ok {
			diags = append(diags, diagnostics.Diagnostic{
				Severity: diagnostics.SeverityError,
				Code:     "S003",
				Message:  "duplicate exported name: " + name,
				Origin:   origin,
				Source:   "cnl",
				RelatedInformation: []diagnostics.RelatedInformation{
					{Message: "first declared here", Origin: prior},
				},
			})
			return false
		}
		seen[name] = origin
		return true
	}

	for _, d := range mod.Decls {
		switch n := d.(type) {
		case *core.Import:
			key := n.As
			if key == "" {
				key = n.Name
			}
			ctx.Imports[key] = n.Name
		case *core.Data:
			if declare(n.Name, n.Orig) {
				ctx.Data[n.Name] = n
			}
		case *core.Enum:
			if declare(n.Name, n.Orig) {
				ctx.Enums[n.Name] = n
			}
		case *core.Func:
			if declare(n.Name, n.Orig) {
				ctx.Funcs[n.Name] = n
			}
		}
	}
	return ctx, diags
}
