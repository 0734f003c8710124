package commands

import (
	"bytes"
	"os"
	"testing"
)

func TestIndexCommand_BuildsSummaryWithoutPersisting(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(dir+"/mod.cnl", []byte("module orders.\ndefine Status as one of pending, shipped, delivered.\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cmd := NewIndexCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--no-persist", dir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() == 0 {
		t.Error("expected a summary table, got nothing")
	}
	if _, err := os.Stat(dir + "/.cache/index.json"); err == nil {
		t.Error("expected --no-persist to skip writing a snapshot")
	}
}

func TestIndexCommand_PersistsJSONSnapshotByDefault(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(dir+"/mod.cnl", []byte("module orders.\ndefine Status as one of pending, shipped, delivered.\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cmd := NewIndexCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--path", dir + "/index.json", dir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dir + "/index.json"); err != nil {
		t.Errorf("expected a JSON snapshot to be written: %v", err)
	}
}

func TestPersistedLabel(t *testing.T) {
	if got := persistedLabel(false, "ignored.json"); got != "(not persisted)" {
		t.Errorf("expected '(not persisted)', got %q", got)
	}
	if got := persistedLabel(true, "index.json"); got != "index.json" {
		t.Errorf("expected 'index.json', got %q", got)
	}
}
