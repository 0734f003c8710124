package editor

import (
	"fmt"

	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// CodeAction is a quick-fix an editor can offer for a diagnostic,
// expressed as a single text replacement rather than a full
// WorkspaceEdit — the caller maps this onto whichever wire type its
// transport needs.
type CodeAction struct {
	Title string
	URI   string
	Edit  TextEdit
}

// CodeActionsFor derives quick-fixes from diag's structured Data
// payload. Only capability diagnostics carry a fix-it payload, set by
// capability.Check: EFF_CAP_MISSING carries {"func", "cap"} and
// CAPABILITY_NOT_ALLOWED carries {"func", "module", "cap"}; any other
// diagnostic yields no actions.
func CodeActionsFor(uri string, diag diagnostics.Diagnostic) []CodeAction {
	switch diag.Code {
	case "EFF_CAP_MISSING":
		fn, cap := diag.Data["func"], diag.Data["cap"]
		if fn == "" || cap == "" {
			return nil
		}
		return []CodeAction{{
			Title: fmt.Sprintf("Declare capability %q on %s", cap, fn),
			URI:   uri,
			Edit: TextEdit{
				Range:   FromOrigin(diag.Origin),
				NewText: fmt.Sprintf("performs %s", cap),
			},
		}}
	case "CAPABILITY_NOT_ALLOWED":
		fn, mod, cap := diag.Data["func"], diag.Data["module"], diag.Data["cap"]
		if fn == "" || cap == "" {
			return nil
		}
		return []CodeAction{{
			Title: fmt.Sprintf("Allow %s to use capability %q in manifest for %s", fn, cap, mod),
			URI:   uri,
		}}
	default:
		return nil
	}
}
