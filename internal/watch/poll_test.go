package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestPollWatcher_DetectsModifiedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "billing.cnl")
	if err := os.WriteFile(path, []byte("module billing."), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	var mu sync.Mutex
	var changed []string
	pw := NewPollWatcher([]string{dir}, []string{"*.cnl"}, nil, 20*time.Millisecond, func(files []string) error {
		mu.Lock()
		defer mu.Unlock()
		changed = append(changed, files...)
		return nil
	})

	if err := pw.Start(); err != nil {
		t.Fatalf("unexpected error starting poll watcher: %v", err)
	}
	defer pw.Stop()

	time.Sleep(30 * time.Millisecond)
	future := time.Now().Add(time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("unexpected error touching file: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(changed) == 0 {
		t.Fatalf("expected the poll watcher to detect the mtime change")
	}
}

func TestPollWatcher_IgnoresNonMatchingExtension(t *testing.T) {
	pw := &PollWatcher{patterns: []string{"*.cnl"}}
	if pw.matchesPattern("notes.txt") {
		t.Fatalf("expected a .txt file not to match a *.cnl pattern")
	}
	if !pw.matchesPattern("billing.cnl") {
		t.Fatalf("expected a .cnl file to match a *.cnl pattern")
	}
}
