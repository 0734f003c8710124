package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Locale != "en-US" {
		t.Errorf("expected default locale en-US, got %s", cfg.Locale)
	}
	if cfg.ReferencesChunk != 200 {
		t.Errorf("expected default references_chunk 200, got %d", cfg.ReferencesChunk)
	}
	if cfg.RenameChunk != 200 {
		t.Errorf("expected default rename_chunk 200, got %d", cfg.RenameChunk)
	}
	if cfg.RenameScope != RenameScopeWorkspace {
		t.Errorf("expected default rename_scope workspace, got %s", cfg.RenameScope)
	}
	if cfg.FormatMode != FormatModeLossless {
		t.Errorf("expected default format_mode lossless, got %s", cfg.FormatMode)
	}
	if cfg.WatcherMode != WatcherModeAuto {
		t.Errorf("expected default watcher_mode auto, got %s", cfg.WatcherMode)
	}
	if cfg.EnforcePiiChecks {
		t.Error("expected enforce_pii_checks to default false")
	}
	if !cfg.DiagnosticsWorkspaceEnabled {
		t.Error("expected diagnostics_workspace_enabled to default true")
	}
	if cfg.IndexPath != ".cache/index.json" {
		t.Errorf("expected default index_path, got %s", cfg.IndexPath)
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
locale: zh-Hans
enforce_pii_checks: true
references_chunk: 50
rename_scope: open
module_search_roots:
  - ./src
  - ./lib
`
	os.WriteFile("cnl.yml", []byte(configContent), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Locale != "zh-Hans" {
		t.Errorf("expected locale zh-Hans, got %s", cfg.Locale)
	}
	if !cfg.EnforcePiiChecks {
		t.Error("expected enforce_pii_checks true")
	}
	if cfg.ReferencesChunk != 50 {
		t.Errorf("expected references_chunk 50, got %d", cfg.ReferencesChunk)
	}
	if cfg.RenameScope != RenameScopeOpen {
		t.Errorf("expected rename_scope open, got %s", cfg.RenameScope)
	}
	if len(cfg.ModuleSearchRoots) != 2 || cfg.ModuleSearchRoots[0] != "./src" {
		t.Errorf("expected module_search_roots from file, got %v", cfg.ModuleSearchRoots)
	}
}

func TestLoad_RejectsInvalidEnum(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	os.WriteFile("cnl.yml", []byte("rename_scope: everywhere\n"), 0644)

	if _, err := Load(); err == nil {
		t.Error("expected an error for an invalid rename_scope")
	}
}

func TestInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if InProject() {
		t.Error("expected InProject false with no cnl.yml present")
	}

	os.WriteFile("cnl.yml", []byte(""), 0644)

	if !InProject() {
		t.Error("expected InProject true once cnl.yml exists")
	}
}

func TestGetProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	os.WriteFile(filepath.Join(tmpDir, "cnl.yml"), []byte(""), 0644)

	subDir := filepath.Join(tmpDir, "src", "deep", "nested")
	os.MkdirAll(subDir, 0755)
	os.Chdir(subDir)

	root, err := GetProjectRoot()
	if err != nil {
		t.Fatalf("expected to find project root, got error: %v", err)
	}

	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedTmpDir, _ := filepath.EvalSymlinks(tmpDir)
	if resolvedRoot != resolvedTmpDir {
		t.Errorf("expected project root %s, got %s", resolvedTmpDir, resolvedRoot)
	}
}

func TestGetProjectRoot_NotInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if _, err := GetProjectRoot(); err == nil {
		t.Error("expected an error when not in a cnl workspace")
	}
}
