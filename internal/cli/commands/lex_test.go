package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mod.cnl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLexCommand_PrintsTokenStream(t *testing.T) {
	path := writeSource(t, "module orders.\ndefine Status as one of pending, shipped, delivered.\n")

	cmd := NewLexCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() == 0 {
		t.Error("expected token output, got nothing")
	}
}

func TestLexCommand_MissingFile(t *testing.T) {
	cmd := NewLexCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.cnl")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLexCommand_DefaultLocale(t *testing.T) {
	cmd := NewLexCommand()
	flag := cmd.Flags().Lookup("locale")
	if flag == nil {
		t.Fatal("expected --locale flag to exist")
	}
	if flag.DefValue != "en-US" {
		t.Errorf("expected default locale en-US, got %s", flag.DefValue)
	}
}
