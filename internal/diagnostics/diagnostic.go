// Package diagnostics defines the coded diagnostic shape shared by every
// analysis pass (type checker, effect inference, capability checker,
// PII analyzer) and the engine that aggregates them per document.
package diagnostics

import (
	"fmt"

	"github.com/aster-cloud/cnl/internal/compiler/core"
)

// Severity is the diagnostic's reporting level.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// RelatedInformation points at a secondary location relevant to a
// diagnostic, e.g. the declaration a duplicate export collides with.
type RelatedInformation struct {
	Message string
	Origin  core.Origin
}

// Diagnostic is a coded, spanned analysis note. Data carries structured
// fix-it payload (e.g. {"func", "module", "cap"} for a capability
// manifest gate) consumed by editor code actions.
type Diagnostic struct {
	Severity           Severity
	Code               string
	Message            string
	Origin             core.Origin
	Source             string
	RelatedInformation []RelatedInformation
	Data               map[string]string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s [%s]: %d:%d: %s", d.Severity, d.Code, d.Origin.StartLine, d.Origin.StartColumn, d.Message)
}

func New(severity Severity, code, message string, origin core.Origin) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message, Origin: origin, Source: "cnl"}
}

func Errorf(code string, origin core.Origin, format string, args ...any) Diagnostic {
	return New(SeverityError, code, fmt.Sprintf(format, args...), origin)
}

func Warnf(code string, origin core.Origin, format string, args ...any) Diagnostic {
	return New(SeverityWarning, code, fmt.Sprintf(format, args...), origin)
}

func Infof(code string, origin core.Origin, format string, args ...any) Diagnostic {
	return New(SeverityInfo, code, fmt.Sprintf(format, args...), origin)
}
