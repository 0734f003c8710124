package lowering

import (
	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/core"
)

var capabilityNames = map[string]core.CapabilityKind{
	"Http":    core.CapHttp,
	"Sql":     core.CapSql,
	"Files":   core.CapFiles,
	"Secrets": core.CapSecrets,
	"Time":    core.CapTime,
	"Cpu":     core.CapCpu,
	"Random":  core.CapRandom,
	"Env":     core.CapEnv,
	"Crypto":  core.CapCrypto,
}

// lowerEffects converts the surface atom names ("io", "cpu") written in
// a `performs` clause to the closed, ordered EffectAtom set. An unknown
// atom name is dropped and reported as L102.
func (lw *lowerer) lowerEffects(names []string, loc ast.Span) []core.EffectAtom {
	var out []core.EffectAtom
	for _, name := range names {
		switch name {
		case "cpu":
			out = append(out, core.EffectCpu)
		case "io":
			out = append(out, core.EffectIo)
		case "workflow":
			out = append(out, core.EffectWorkflow)
		case "pure":
			out = append(out, core.EffectPure)
		default:
			lw.report("L102", "unrecognized effect atom has no Core lowering: "+name, loc.Start.Line, loc.Start.Column)
		}
	}
	return out
}

// lowerCapabilities converts the surface capability phrase list to the
// closed CapabilityKind set, preserving declaration order. An
// unrecognized capability name is dropped and reported as L103.
func (lw *lowerer) lowerCapabilities(names []string, loc ast.Span) []core.CapabilityKind {
	var out []core.CapabilityKind
	for _, name := range names {
		kind, ok := capabilityNames[name]
		if !ok {
			lw.report("L103", "unrecognized capability name has no Core lowering: "+name, loc.Start.Line, loc.Start.Column)
			continue
		}
		out = append(out, kind)
	}
	return out
}
