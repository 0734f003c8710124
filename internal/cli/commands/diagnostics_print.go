package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
	"github.com/aster-cloud/cnl/internal/diagnostics"
)

// lexiconForLocale resolves a locale flag to a built-in lexicon,
// falling back to en-US for anything unrecognized rather than failing
// the whole command over a typo'd locale.
func lexiconForLocale(locale string) *lexicon.Lexicon {
	switch locale {
	case "zh-Hans":
		return lexicon.SimplifiedChinese
	default:
		return lexicon.EnglishUS
	}
}

// printDiagnostics renders diags for path in a compact, one-line-per-
// diagnostic terminal format and returns the count of error-severity
// diagnostics, for callers deciding an exit code.
func printDiagnostics(w io.Writer, path string, diags []diagnostics.Diagnostic) int {
	errCount := 0
	for _, d := range diags {
		lineColor := severityColor(d.Severity)
		fmt.Fprintf(w, "%s:%d:%d: %s [%s]\n",
			path, d.Origin.StartLine, d.Origin.StartColumn,
			lineColor.Sprint(string(d.Severity)+": "+d.Message), d.Code)
		if d.Severity == diagnostics.SeverityError {
			errCount++
		}
	}
	return errCount
}

func severityColor(s diagnostics.Severity) *color.Color {
	switch s {
	case diagnostics.SeverityError:
		return color.New(color.FgRed, color.Bold)
	case diagnostics.SeverityWarning:
		return color.New(color.FgYellow)
	case diagnostics.SeverityHint:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgCyan)
	}
}
