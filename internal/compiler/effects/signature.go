// Package effects infers and checks each function's effect footprint: the
// set of effect atoms (Pure/Cpu/Io/Workflow) its body actually exercises,
// reconciled against what it declares.
package effects

import "github.com/aster-cloud/cnl/internal/compiler/core"

// Signature is a function's effect footprint: what it declares, what the
// call graph says it actually does (inferred), and the subset of that
// which is load-bearing for the missing/redundant comparison (required).
type Signature struct {
	Module        string
	Function      string
	QualifiedName string
	Declared      []core.EffectAtom
	Inferred      []core.EffectAtom
	Required      []core.EffectAtom
}

// prefixAtoms maps a dotted call target's head segment to the effect
// atom it contributes when observed in a function body. The table is
// fixed; the package offers no way to add prefixes.
var prefixAtoms = map[string]core.EffectAtom{
	"Io":   core.EffectIo,
	"Http": core.EffectIo,
	"Fs":   core.EffectIo,
	"Db":   core.EffectIo,
	"Sql":  core.EffectIo,
	"Cpu":  core.EffectCpu,
}
