package commands

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestInitCommand_NonInteractiveWritesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cmd := NewInitCommand()
	cmd.SetArgs([]string{"--non-interactive"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile("cnl.yml")
	if err != nil {
		t.Fatalf("expected cnl.yml to be written: %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		t.Fatalf("failed to parse written cnl.yml: %v", err)
	}

	if doc["locale"] != "en-US" {
		t.Errorf("expected default locale en-US, got %v", doc["locale"])
	}
	if doc["capability_manifest_path"] != "capabilities.json" {
		t.Errorf("expected default manifest path, got %v", doc["capability_manifest_path"])
	}
}

func TestInitCommand_NonInteractiveHonorsFlags(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cmd := NewInitCommand()
	cmd.SetArgs([]string{"--non-interactive", "--locale=zh-Hans", "--roots=./a, ./b"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, _ := os.ReadFile("cnl.yml")
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		t.Fatalf("failed to parse written cnl.yml: %v", err)
	}

	if doc["locale"] != "zh-Hans" {
		t.Errorf("expected locale zh-Hans, got %v", doc["locale"])
	}
	roots, ok := doc["module_search_roots"].([]any)
	if !ok || len(roots) != 2 || roots[0] != "./a" || roots[1] != "./b" {
		t.Errorf("expected trimmed roots [./a ./b], got %v", doc["module_search_roots"])
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" ./src ,./lib,, ")
	want := []string{"./src", "./lib"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}
