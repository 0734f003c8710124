package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aster-cloud/cnl/internal/cache"
	"github.com/aster-cloud/cnl/internal/cli/config"
	"github.com/aster-cloud/cnl/internal/compiler/capability"
	"github.com/aster-cloud/cnl/internal/index"
	"github.com/aster-cloud/cnl/internal/manifest"
)

// loadManifest returns the capability manifest at path, or nil (no
// restrictions) if the file doesn't exist.
func loadManifest(path string) (*capability.Manifest, error) {
	return manifest.NewCache(path, nil).Load()
}

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	var (
		locale      string
		strictPii   bool
		parallel    bool
		manifestPth string
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Run the full diagnostics pipeline over a file or directory",
		Long: `Run canonicalize -> lex -> parse -> lower -> typecheck -> effects ->
capability -> pii over every .cnl file under path (a single file or a
directory, walked recursively), printing diagnostics and exiting
non-zero if any file has an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if locale == "" {
				locale = cfg.Locale
			}
			if !strictPii {
				strictPii = cfg.EnforcePiiChecks
			}
			if manifestPth == "" {
				manifestPth = cfg.CapabilityManifestPath
			}

			var mf *capability.Manifest
			if manifestPth != "" {
				loaded, err := loadManifest(manifestPth)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to load capability manifest %s: %v\n", manifestPth, err)
				}
				mf = loaded
			}

			resolver := index.NewRootResolver(cfg.ModuleSearchRoots, lexiconForLocale(locale))
			coordinator := cache.NewCoordinator(nil, cache.Options{
				Lexicon:       lexiconForLocale(locale),
				Manifest:      mf,
				StrictPii:     strictPii,
				ResolveImport: resolver.Resolve,
			})

			paths, err := filesUnder(target)
			if err != nil {
				return fmt.Errorf("collect files: %w", err)
			}
			if len(paths) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no .cnl files found under %s\n", target)
				return nil
			}

			results, metrics, err := coordinator.AnalyzeFiles(paths, parallel)
			if err != nil {
				return fmt.Errorf("analyze: %w", err)
			}

			errCount := 0
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
					errCount++
					continue
				}
				errCount += printDiagnostics(cmd.OutOrStdout(), r.Path, r.Diagnostics)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nchecked %d file(s), %d error(s) (cache hit rate %.0f%%)\n",
				metrics.TotalFiles, errCount, metrics.CacheHitRate())

			if errCount > 0 {
				return fmt.Errorf("%d error(s)", errCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "Lexicon locale, overrides cnl.yml")
	cmd.Flags().BoolVar(&strictPii, "strict-pii", false, "Report PII reaching HTTP, database or file sinks as errors")
	cmd.Flags().BoolVar(&parallel, "parallel", true, "Analyze files in import-dependency-ordered batches")
	cmd.Flags().StringVar(&manifestPth, "manifest", "", "Capability manifest path, overrides cnl.yml")

	return cmd
}

// filesUnder returns path itself if it is not a directory (whatever its
// extension), or every .cnl file beneath it if it is a directory.
func filesUnder(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return cache.ScanDirectory(path)
}
