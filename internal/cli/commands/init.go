package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aster-cloud/cnl/internal/cli/config"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var (
		locale          string
		manifestPath    string
		searchRootsFlag string
		nonInteractive  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a cnl.yml workspace configuration",
		Long: `Interactively prompts for a default locale, capability manifest path,
and workspace search roots, then writes cnl.yml in the current
directory.

Use --non-interactive with the individual flags to scaffold without
prompts, e.g. in CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !nonInteractive {
				localePrompt := &survey.Select{
					Message: "Default locale:",
					Options: []string{"en-US", "zh-Hans"},
					Default: "en-US",
				}
				if locale == "" {
					if err := survey.AskOne(localePrompt, &locale); err != nil {
						return err
					}
				}

				if manifestPath == "" {
					manifestPrompt := &survey.Input{
						Message: "Capability manifest path:",
						Default: "capabilities.json",
					}
					if err := survey.AskOne(manifestPrompt, &manifestPath); err != nil {
						return err
					}
				}

				if searchRootsFlag == "" {
					rootsPrompt := &survey.Input{
						Message: "Workspace search roots (comma-separated):",
						Default: ".",
					}
					if err := survey.AskOne(rootsPrompt, &searchRootsFlag); err != nil {
						return err
					}
				}
			}

			if locale == "" {
				locale = "en-US"
			}
			if manifestPath == "" {
				manifestPath = "capabilities.json"
			}
			if searchRootsFlag == "" {
				searchRootsFlag = "."
			}

			roots := splitAndTrim(searchRootsFlag)

			doc := map[string]any{
				"locale":                   locale,
				"capability_manifest_path": manifestPath,
				"module_search_roots":      roots,
				"enforce_pii_checks":       false,
				"index_persist":            true,
				"watcher_mode":             string(config.WatcherModeAuto),
			}

			out, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("marshal cnl.yml: %w", err)
			}

			if err := os.WriteFile("cnl.yml", out, 0644); err != nil {
				return fmt.Errorf("write cnl.yml: %w", err)
			}

			color.New(color.FgGreen, color.Bold).Fprintln(cmd.OutOrStdout(), "Wrote cnl.yml")
			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "", "Default locale")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Capability manifest path")
	cmd.Flags().StringVar(&searchRootsFlag, "roots", "", "Comma-separated workspace search roots")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Skip prompts, use flags and defaults only")

	return cmd
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
