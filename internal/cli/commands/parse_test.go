package commands

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestParseCommand_PrintsModule(t *testing.T) {
	path := writeSource(t, "module orders.\ndefine Order with total as float between 0 and 1000000.\n")

	cmd := NewParseCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() == 0 {
		t.Error("expected AST output, got nothing")
	}
}

func TestParseCommand_ReportsParseErrors(t *testing.T) {
	path := writeSource(t, "import http.\n")

	cmd := NewParseCommand()
	cmd.SetOut(&bytes.Buffer{})
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err == nil {
		t.Error("expected a parse error for a module missing its header")
	}
	if errOut.Len() == 0 {
		t.Error("expected the parse error to be printed to stderr")
	}
}

func TestParseCommand_MissingFile(t *testing.T) {
	cmd := NewParseCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.cnl")})

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for a missing file")
	}
}
