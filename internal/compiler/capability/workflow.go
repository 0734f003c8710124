package capability

import (
	"time"

	"github.com/aster-cloud/cnl/internal/compiler/core"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

const (
	linearBackoffCeiling      = 5 * time.Minute
	exponentialBackoffCeiling = 15 * time.Minute
	minTimeout                = 1 * time.Second
	maxTimeout                = 1 * time.Hour
	// Attempt ceilings stand in for a true cumulative-backoff estimate:
	// the surface grammar's retry clause carries no base interval, so
	// these bound the attempt count directly against each strategy's
	// recommended window instead (documented as an open-question
	// simplification).
	linearAttemptCeiling      = 30
	exponentialAttemptCeiling = 10
)

// checkWorkflow enforces §4.9's workflow rules against one workflow
// statement, given declaredCaps (the enclosing function's effectCaps,
// used as the workflow's own declared set since the surface grammar has
// no separate workflow-level `performs` clause) and fnHasIo (whether the
// enclosing function declares the io effect).
func checkWorkflow(wf *core.Workflow, fnOrig core.Origin, declaredCaps map[core.CapabilityKind]bool, fnHasIo bool) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic

	if !fnHasIo {
		diags = append(diags, diagnostics.Errorf("WORKFLOW_MISSING_IO_EFFECT", wf.Orig,
			"a workflow requires its enclosing function to declare performs io"))
	}

	for _, step := range wf.Steps {
		bodyCaps := observeCapabilities(step.Body)
		for cap := range bodyCaps {
			if !declaredCaps[cap] {
				diags = append(diags, diagnostics.Errorf("WORKFLOW_UNDECLARED_CAPABILITY", step.Orig,
					"step %q uses capability %s which the workflow does not declare", step.Name, cap))
			}
		}

		compCaps := observeCapabilities(step.Compensate)
		for cap := range compCaps {
			if !bodyCaps[cap] {
				diags = append(diags, diagnostics.Errorf("COMPENSATE_NEW_CAPABILITY", step.Orig,
					"compensate block for step %q introduces capability %s not used in its body", step.Name, cap))
			}
		}
	}

	if wf.Retry != nil {
		diags = append(diags, checkRetry(wf.Retry)...)
	}
	if wf.Timeout != nil {
		diags = append(diags, checkTimeout(wf.Timeout)...)
	}

	return diags
}

func checkRetry(r *core.RetryClause) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	if r.MaxAttempts <= 0 {
		diags = append(diags, diagnostics.Errorf("RETRY_MAX_ATTEMPTS_INVALID", r.Orig,
			"retry max attempts must be greater than zero, got %d", r.MaxAttempts))
		return diags
	}
	switch r.Backoff {
	case "linear":
		if r.MaxAttempts > linearAttemptCeiling {
			diags = append(diags, diagnostics.Warnf("RETRY_BACKOFF_WINDOW_EXCEEDED", r.Orig,
				"linear backoff with %d attempts likely exceeds the recommended %s window", r.MaxAttempts, linearBackoffCeiling))
		}
	case "exponential":
		if r.MaxAttempts > exponentialAttemptCeiling {
			diags = append(diags, diagnostics.Warnf("RETRY_BACKOFF_WINDOW_EXCEEDED", r.Orig,
				"exponential backoff with %d attempts likely exceeds the recommended %s window", r.MaxAttempts, exponentialBackoffCeiling))
		}
	}
	return diags
}

func checkTimeout(t *core.TimeoutClause) []diagnostics.Diagnostic {
	d, err := time.ParseDuration(t.Within)
	if err != nil {
		return []diagnostics.Diagnostic{diagnostics.Errorf("TIMEOUT_OUT_OF_BOUNDS", t.Orig,
			"timeout %q is not a valid duration", t.Within)}
	}
	if d < minTimeout || d > maxTimeout {
		return []diagnostics.Diagnostic{diagnostics.Errorf("TIMEOUT_OUT_OF_BOUNDS", t.Orig,
			"timeout %s must be within %s and %s", d, minTimeout, maxTimeout)}
	}
	return nil
}
