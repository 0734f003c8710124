package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aster-cloud/cnl/internal/cache"
	"github.com/aster-cloud/cnl/internal/cli/config"
	"github.com/aster-cloud/cnl/internal/cli/ui"
	"github.com/aster-cloud/cnl/internal/index"
)

// NewIndexCommand creates the index command
func NewIndexCommand() *cobra.Command {
	var (
		locale      string
		indexPath   string
		noPersist   bool
		useSqlite   bool
	)

	cmd := &cobra.Command{
		Use:   "index [path]",
		Short: "Build the module index and print a summary",
		Long: `Walk path (default: the configured module search roots), lex/parse/
lower every .cnl file found, and build the cross-module symbol index.
By default the index is persisted to the configured index path (JSON,
or sqlite with --sqlite) so editor services can load it without a full
rescan.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if locale == "" {
				locale = cfg.Locale
			}
			if indexPath == "" {
				indexPath = cfg.IndexPath
			}

			roots := cfg.ModuleSearchRoots
			if len(args) == 1 {
				roots = []string{args[0]}
			}

			lex := lexiconForLocale(locale)
			resolver := index.NewRootResolver(roots, lex)
			coordinator := cache.NewCoordinator(nil, cache.Options{
				Lexicon:       lex,
				ResolveImport: resolver.Resolve,
			})

			idx := index.New()
			hasher := cache.NewFileHasher()
			var files []string
			for _, root := range roots {
				found, err := filesUnder(root)
				if err != nil {
					return fmt.Errorf("scan %s: %w", root, err)
				}
				files = append(files, found...)
			}

			results, metrics, err := coordinator.AnalyzeFiles(files, true)
			if err != nil {
				return fmt.Errorf("analyze: %w", err)
			}
			for _, r := range results {
				if r.Err != nil || r.Module == nil {
					continue
				}
				hash, err := hasher.HashFile(r.Path)
				if err != nil {
					hash = r.Hash
				}
				idx.Update(r.Path, r.Module, hash)
			}

			for _, warning := range resolver.Shadows() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
			}

			persist := cfg.IndexPersist && !noPersist
			if persist {
				if useSqlite {
					snap, err := index.OpenSqliteSnapshot(indexPath)
					if err != nil {
						return fmt.Errorf("open sqlite snapshot: %w", err)
					}
					defer snap.Close()
					if err := snap.Save(idx); err != nil {
						return fmt.Errorf("save sqlite snapshot: %w", err)
					}
				} else if err := idx.WriteSnapshot(indexPath, roots[0], time.Now()); err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}
			}

			table := ui.NewKeyValueTable(cmd.OutOrStdout(), false)
			table.AddRow("Files analyzed", fmt.Sprintf("%d", metrics.FilesAnalyzed))
			table.AddRow("Cache hits", fmt.Sprintf("%d", metrics.CacheHits))
			table.AddRow("Symbols indexed", fmt.Sprintf("%d", idx.Size()))
			table.AddRow("Persisted to", persistedLabel(persist, indexPath))
			table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "Lexicon locale, overrides cnl.yml")
	cmd.Flags().StringVar(&indexPath, "path", "", "Index snapshot path, overrides cnl.yml")
	cmd.Flags().BoolVar(&noPersist, "no-persist", false, "Build the index without writing a snapshot")
	cmd.Flags().BoolVar(&useSqlite, "sqlite", false, "Persist the index as sqlite instead of JSON")

	return cmd
}

func persistedLabel(persist bool, path string) string {
	if !persist {
		return "(not persisted)"
	}
	return path
}
