package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aster-cloud/cnl/internal/cli/config"
	"github.com/aster-cloud/cnl/internal/health"
	"github.com/aster-cloud/cnl/internal/lsp"
)

// NewLSPCommand creates the LSP command
func NewLSPCommand() *cobra.Command {
	var healthPort int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the cnl Language Server Protocol (LSP) server.

This command starts an LSP server that provides editor integration
features including:
  • Diagnostics (syntax, structural type, effect, capability, PII)
  • Go-to-definition and find references
  • Document symbols
  • Hover information

The LSP server communicates via JSON-RPC over stdin/stdout. It is
typically started automatically by your editor. A small HTTP health
endpoint (index size, queue stats) is served alongside it once the
workspace has initialized.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLSP(cmd, healthPort)
		},
	}

	cmd.Flags().IntVar(&healthPort, "health-port", 0, "Health endpoint port, overrides cnl.yml")
	return cmd
}

// noopWatcher reports a stopped watcher; the lsp command has no file
// watcher of its own, editors push changes via didChange instead.
type noopWatcher struct{}

func (noopWatcher) Running() bool { return false }

func runLSP(cmd *cobra.Command, healthPort int) error {
	if healthPort == 0 {
		cfg, err := config.Load()
		if err == nil {
			healthPort = cfg.HealthPort
		} else {
			healthPort = 7337
		}
	}

	server := lsp.NewServer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	runErr := make(chan error, 1)
	go func() {
		runErr <- server.Run(ctx)
	}()

	var httpSrv *http.Server
	var healthSrv *health.Server
	if ws, ok := server.WaitReady(ctx); ok {
		healthSrv = health.NewServer(ws.Index(), ws.Queue(), noopWatcher{})
		httpSrv = &http.Server{Addr: fmt.Sprintf(":%d", healthPort), Handler: healthSrv.Routes()}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintf(cmd.ErrOrStderr(), "health server: %v\n", err)
			}
		}()
	}

	err := <-runErr
	if healthSrv != nil {
		healthSrv.Close()
	}
	if httpSrv != nil {
		_ = httpSrv.Close()
	}
	return err
}
