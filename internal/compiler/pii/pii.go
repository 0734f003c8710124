// Package pii implements the flow-sensitive taint analyzer: it tracks
// which values in a function body derive from a @pii-annotated
// parameter and flags when a tainted value reaches an unencrypted
// sink (HTTP, console, database, file), and separately flags a
// function with a @pii parameter that makes no recognized consent-check
// call. Sink findings are reported whether or not a consent check is
// present.
package pii

import "strings"

// sinkKind names the category of sink a tainted value reached.
type sinkKind string

const (
	sinkHTTP     sinkKind = "http"
	sinkConsole  sinkKind = "console"
	sinkDatabase sinkKind = "database"
	sinkFile     sinkKind = "file"
)

// consoleTargets are exact dotted-call targets recognized as logging sinks.
var consoleTargets = map[string]bool{
	"print":       true,
	"Io.print":    true,
	"Console.log": true,
}

// consolePrefixes covers the Log.* family (Log.info, Log.error, ...).
var consolePrefixes = []string{"Log."}

var dbPrefixes = []string{"Db.", "Sql.", "Database."}
var filePrefixes = []string{"Fs.", "File.", "Io."}

var writeTails = map[string]bool{
	"insert":  true,
	"update":  true,
	"delete":  true,
	"save":    true,
	"persist": true,
	"exec":    true,
	"execute": true,
}

var fileWriteTails = map[string]bool{
	"write":     true,
	"writefile": true,
	"append":    true,
	"save":      true,
}

// consentFuncs are exact call targets recognized as consent checks.
var consentFuncs = map[string]bool{
	"checkConsent":    true,
	"requireConsent":  true,
	"hasConsent":      true,
	"isConsentGiven":  true,
	"GDPR.checkConsent": true,
}

var consentPrefixes = []string{"Consent."}

// piiReturningFuncs are known call targets whose result is PII-tainted
// regardless of whether their arguments were tainted.
var piiReturningFuncs = map[string]bool{
	"Users.currentEmail": true,
	"Profile.ssn":         true,
}

func tailOf(target string) string {
	if i := strings.LastIndex(target, "."); i >= 0 {
		return target[i+1:]
	}
	return target
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// classifySink reports the sink kind a call target belongs to, if any.
func classifySink(target string) (sinkKind, bool) {
	if strings.HasPrefix(target, "Http.") {
		return sinkHTTP, true
	}
	if consoleTargets[target] || hasAnyPrefix(target, consolePrefixes) {
		return sinkConsole, true
	}
	if hasAnyPrefix(target, dbPrefixes) && writeTails[strings.ToLower(tailOf(target))] {
		return sinkDatabase, true
	}
	if hasAnyPrefix(target, filePrefixes) && fileWriteTails[strings.ToLower(tailOf(target))] {
		return sinkFile, true
	}
	return "", false
}

func isConsentCall(target string) bool {
	return consentFuncs[target] || hasAnyPrefix(target, consentPrefixes)
}
