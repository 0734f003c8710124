package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// PollWatcher detects file changes by periodically comparing mtimes.
// The watch command uses it when watcher_mode is "polling"; nothing
// selects it from the editor's advertised capabilities.
type PollWatcher struct {
	roots    []string
	patterns []string
	ignored  []string
	interval time.Duration
	onChange func([]string) error

	mu       sync.Mutex
	mtimes   map[string]time.Time
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  atomic.Bool
}

// Running reports whether the watcher's polling loop is currently
// active, for the health endpoint's watcher status field.
func (pw *PollWatcher) Running() bool {
	return pw.running.Load()
}

// NewPollWatcher creates a polling watcher over roots, checking every
// interval for files matching patterns whose mtime has advanced.
func NewPollWatcher(roots, patterns, ignored []string, interval time.Duration, onChange func([]string) error) *PollWatcher {
	return &PollWatcher{
		roots:    roots,
		patterns: patterns,
		ignored:  ignored,
		interval: interval,
		onChange: onChange,
		mtimes:   make(map[string]time.Time),
		stopChan: make(chan struct{}),
	}
}

// Start begins the polling loop in the background. It primes the mtime
// baseline with the first scan so the first tick doesn't report every
// existing file as changed.
func (pw *PollWatcher) Start() error {
	pw.scan(false)
	pw.running.Store(true)
	pw.wg.Add(1)
	go pw.loop()
	return nil
}

func (pw *PollWatcher) loop() {
	defer pw.wg.Done()
	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pw.scan(true)
		case <-pw.stopChan:
			return
		}
	}
}

func (pw *PollWatcher) scan(report bool) {
	var changed []string

	for _, root := range pw.roots {
		_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil || info == nil {
				return nil
			}
			if info.IsDir() {
				if pw.shouldIgnore(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if pw.shouldIgnore(path) || !pw.matchesPattern(path) {
				return nil
			}

			mtime := info.ModTime()
			pw.mu.Lock()
			prev, seen := pw.mtimes[path]
			pw.mtimes[path] = mtime
			pw.mu.Unlock()

			if report && (!seen || mtime.After(prev)) {
				changed = append(changed, path)
			}
			return nil
		})
	}

	if report && len(changed) > 0 && pw.onChange != nil {
		_ = pw.onChange(changed)
	}
}

func (pw *PollWatcher) shouldIgnore(path string) bool {
	baseName := filepath.Base(path)
	if strings.HasPrefix(baseName, ".") {
		return true
	}
	for _, pattern := range pw.ignored {
		if matched, _ := filepath.Match(pattern, baseName); matched {
			return true
		}
	}
	return false
}

func (pw *PollWatcher) matchesPattern(path string) bool {
	if len(pw.patterns) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, pattern := range pw.patterns {
		if strings.HasPrefix(pattern, "*.") && ext == pattern[1:] {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}

// Stop halts the polling loop.
func (pw *PollWatcher) Stop() error {
	select {
	case <-pw.stopChan:
		return nil
	default:
		close(pw.stopChan)
	}
	pw.running.Store(false)
	pw.wg.Wait()
	return nil
}
