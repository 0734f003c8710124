// Package capability enforces that a function's (or workflow step's)
// declared effectCaps covers every capability its body actually uses,
// checks workflow/compensate/retry/timeout shape rules, and gates calls
// against an optional workspace capability manifest.
package capability

import "github.com/aster-cloud/cnl/internal/compiler/core"

// prefixCapabilities maps a dotted call target's head segment to the
// capability it exercises, per the built-in name rules.
var prefixCapabilities = map[string]core.CapabilityKind{
	"Http":    core.CapHttp,
	"Db":      core.CapSql,
	"Fs":      core.CapFiles,
	"Crypto":  core.CapCrypto,
	"Time":    core.CapTime,
	"Secrets": core.CapSecrets,
	"Cpu":     core.CapCpu,
}
