package capability

import (
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// Manifest is a workspace capability manifest: for each capability, the
// set of allow entries covering it — either a fully-qualified function
// name ("billing.charge") or a module wildcard ("billing.*"). The
// internal/manifest package is the one that loads this shape from disk
// (optionally JWT-enveloped); this package only consumes it.
type Manifest struct {
	Allow map[core.CapabilityKind][]string
}

// Covers reports whether qualifiedName (module.function) is allowed to
// exercise cap under m.
func (m *Manifest) Covers(cap core.CapabilityKind, module, function string) bool {
	if m == nil {
		return true
	}
	qualified := module + "." + function
	for _, entry := range m.Allow[cap] {
		if entry == qualified {
			return true
		}
		if strings.HasSuffix(entry, ".*") && strings.TrimSuffix(entry, "*") == module+"." {
			return true
		}
	}
	return false
}
