package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aster-cloud/cnl/internal/compiler/canon"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/parser"
)

// NewParseCommand creates the parse command
func NewParseCommand() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a source file and print its AST",
		Long: `Run the canonicalizer, lexer, and parser over a source file and print
the resulting AST module, or the parse errors if it doesn't parse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			lex := lexiconForLocale(locale)
			canonical := canon.Canonicalize(string(content), lex, canon.Options{})

			tokens, lexErrs := lexer.New(canonical.Text, lex).ScanTokens()
			if len(lexErrs) > 0 {
				for _, e := range lexErrs {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d:%d: %s\n", args[0], e.Line, e.Column, e.Message)
				}
				return fmt.Errorf("%d lexer error(s)", len(lexErrs))
			}

			mod, parseErrs := parser.New(tokens, lex).Parse()
			if len(parseErrs) > 0 {
				for _, e := range parseErrs {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d:%d: %s\n", args[0], e.Line, e.Column, e.Message)
				}
				return fmt.Errorf("%d parse error(s)", len(parseErrs))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%#v\n", mod)
			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "en-US", "Lexicon locale (en-US, zh-Hans)")
	return cmd
}
