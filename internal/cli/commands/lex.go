package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aster-cloud/cnl/internal/compiler/canon"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
)

// NewLexCommand creates the lex command
func NewLexCommand() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Canonicalize and tokenize a source file",
		Long: `Run the canonicalizer and lexer over a source file and print the
resulting token stream, one token per line.

This is primarily a debugging aid for lexicon authors: it shows exactly
how a line of controlled natural language is segmented before parsing
ever sees it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			lex := lexiconForLocale(locale)
			canonical := canon.Canonicalize(string(content), lex, canon.Options{})

			tokens, errs := lexer.New(canonical.Text, lex).ScanTokens()
			for _, tok := range tokens {
				fmt.Fprintf(cmd.OutOrStdout(), "%d:%d %s %q\n", tok.Line, tok.Column, tok.Type, tok.Lexeme)
			}

			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d:%d: %s\n", args[0], e.Line, e.Column, e.Message)
				}
				return fmt.Errorf("%d lexer error(s)", len(errs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "en-US", "Lexicon locale (en-US, zh-Hans)")
	return cmd
}
