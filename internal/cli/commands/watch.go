package commands

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aster-cloud/cnl/internal/cache"
	"github.com/aster-cloud/cnl/internal/cli/config"
	"github.com/aster-cloud/cnl/internal/health"
	"github.com/aster-cloud/cnl/internal/index"
	"github.com/aster-cloud/cnl/internal/scheduler"
	"github.com/aster-cloud/cnl/internal/watch"
)

// newHealthQueue creates and starts a task queue purely so the health
// endpoint has a Snapshot to report; the watch command itself runs
// analysis synchronously rather than through the queue.
func newHealthQueue() *scheduler.Queue {
	q := scheduler.New()
	q.Start()
	return q
}

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var healthPort int

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a workspace and re-run diagnostics on change",
		Long: `Watch path (default: the configured module search roots) for .cnl
file changes and re-run the diagnostics pipeline incrementally,
printing results to the terminal as they happen. Also serves the
health endpoint (index size, queue stats, watcher status) over HTTP.

File-watcher mode (native fsnotify vs. mtime polling) is chosen by
watcher_mode in cnl.yml: "polling" selects mtime polling; "native" and
"auto" both use fsnotify (no detection is performed).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if healthPort == 0 {
				healthPort = cfg.HealthPort
			}

			roots := cfg.ModuleSearchRoots
			if len(args) == 1 {
				roots = []string{args[0]}
			}

			lex := lexiconForLocale(cfg.Locale)
			resolver := index.NewRootResolver(roots, lex)
			coordinator := cache.NewCoordinator(nil, cache.Options{
				Lexicon:       lex,
				StrictPii:     cfg.EnforcePiiChecks,
				ResolveImport: resolver.Resolve,
			})
			idx := index.New()

			runAll := func(paths []string) {
				results, _, err := coordinator.AnalyzeFiles(paths, true)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "analyze: %v\n", err)
					return
				}
				for _, r := range results {
					if r.Err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
						continue
					}
					if r.Module != nil {
						idx.Update(r.Path, r.Module, r.Hash)
					}
					printDiagnostics(cmd.OutOrStdout(), r.Path, r.Diagnostics)
				}
			}

			initial, err := cache.ScanDirectory(roots[0])
			if err != nil {
				return fmt.Errorf("scan %s: %w", roots[0], err)
			}
			runAll(initial)

			onChange := func(changed []string) error {
				var cnlFiles []string
				for _, f := range changed {
					if f != "" {
						cnlFiles = append(cnlFiles, f)
					}
				}
				if len(cnlFiles) == 0 {
					return nil
				}
				results, _, err := coordinator.Watch(cnlFiles)
				if err != nil {
					return err
				}
				for _, r := range results {
					if r == nil {
						continue
					}
					if r.Err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
						continue
					}
					if r.Module != nil {
						idx.Update(r.Path, r.Module, r.Hash)
					}
					printDiagnostics(cmd.OutOrStdout(), r.Path, r.Diagnostics)
				}
				return nil
			}

			watcher, err := newWatcher(cfg.WatcherMode, roots, onChange)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			if err := watcher.Start(); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			queue := newHealthQueue()
			healthSrv := health.NewServer(idx, queue, watcher)
			httpSrv := &http.Server{Addr: fmt.Sprintf(":%d", healthPort), Handler: healthSrv.Routes()}
			go func() {
				if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					fmt.Fprintf(cmd.ErrOrStderr(), "health server: %v\n", err)
				}
			}()

			banner := color.New(color.FgCyan, color.Bold)
			fmt.Println()
			banner.Printf("Watching %v\n", roots)
			fmt.Printf("Health endpoint: http://localhost:%d/healthz\n", healthPort)
			color.New(color.FgYellow).Println("Press Ctrl+C to stop")
			fmt.Println()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			<-sigCh

			fmt.Println("\nShutting down...")
			healthSrv.Close()
			_ = httpSrv.Close()
			_ = watcher.Stop()
			queue.Shutdown()
			return nil
		},
	}

	cmd.Flags().IntVar(&healthPort, "health-port", 0, "Health endpoint port, overrides cnl.yml")
	return cmd
}

// watcherHandle is the subset of FileWatcher/PollWatcher the watch
// command drives uniformly.
type watcherHandle interface {
	Start() error
	Stop() error
	Running() bool
}

func newWatcher(mode config.WatcherMode, roots []string, onChange func([]string) error) (watcherHandle, error) {
	patterns := []string{"*.cnl"}
	ignored := []string{"*.swp", "*.swo", "*~", ".DS_Store"}

	switch mode {
	case config.WatcherModePolling:
		return watch.NewPollWatcher(roots, patterns, ignored, 500*time.Millisecond, onChange), nil
	default:
		fw, err := watch.NewFileWatcher(patterns, ignored, onChange)
		if err != nil {
			return nil, err
		}
		fw.SetRoots(roots)
		return fw, nil
	}
}
