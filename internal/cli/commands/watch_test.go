package commands

import (
	"testing"

	"github.com/aster-cloud/cnl/internal/cli/config"
)

func TestWatchCommand_Creation(t *testing.T) {
	cmd := NewWatchCommand()

	if cmd == nil {
		t.Fatal("Expected watch command to be created")
	}
	if cmd.Use != "watch [path]" {
		t.Errorf("Expected Use to be 'watch [path]', got %q", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected Short description to be set")
	}
	if cmd.Long == "" {
		t.Error("Expected Long description to be set")
	}
}

func TestWatchCommand_Flags(t *testing.T) {
	cmd := NewWatchCommand()

	healthPortFlag := cmd.Flags().Lookup("health-port")
	if healthPortFlag == nil {
		t.Fatal("Expected --health-port flag to exist")
	}
	if healthPortFlag.DefValue != "0" {
		t.Errorf("Expected default health-port 0 (falls back to cnl.yml), got %s", healthPortFlag.DefValue)
	}
}

func TestNewWatcher_NativeByDefault(t *testing.T) {
	w, err := newWatcher(config.WatcherModeAuto, []string{"."}, func([]string) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := w.(interface{ Running() bool }); !ok {
		t.Error("expected the returned watcher to expose Running()")
	}
}

func TestNewWatcher_PollingModeSelected(t *testing.T) {
	w, err := newWatcher(config.WatcherModePolling, []string{"."}, func([]string) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Running() {
		t.Error("expected a freshly created watcher to not be running yet")
	}
}

func BenchmarkWatchCommand_Creation(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewWatchCommand()
	}
}
