package index

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestRootResolver_ResolvesModuleNameAcrossRoots(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "billing.cnl"), billingSource)

	r := NewRootResolver([]string{dir}, nil)
	path, ok := r.Resolve("billing")
	if !ok || filepath.Base(path) != "billing.cnl" {
		t.Fatalf("expected to resolve billing.cnl, got %q ok=%v", path, ok)
	}
}

func TestRootResolver_UnknownModuleNameFailsResolution(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "billing.cnl"), billingSource)

	r := NewRootResolver([]string{dir}, nil)
	if _, ok := r.Resolve("nonexistent"); ok {
		t.Fatalf("expected resolution of an undeclared module to fail")
	}
}

func TestRootResolver_ReportsShadowingAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "billing.cnl"), billingSource)
	writeFile(t, filepath.Join(dir, "billing2.cnl"), billingSource)

	r := NewRootResolver([]string{dir}, nil)
	shadows := r.Shadows()
	if len(shadows) != 1 || shadows[0].ModuleName != "billing" {
		t.Fatalf("expected one shadow warning for billing, got %+v", shadows)
	}
}
