package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TheCYPER/TheVaultRunner/internal/parser"
)

func newTokensCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "tokens [file.runner]",
		Short: "Count the meaningful tokens in a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading program: %w", err)
			}

			tokens, err := parser.NewLexer(string(source), filepath.Base(args[0])).Tokenize()
			if err != nil {
				return err
			}

			count := 0
			for _, tok := range tokens {
				if tok.Type == parser.TokenEOF {
					continue
				}
				count++
				if dump {
					fmt.Printf("%s:%d:%d\t%s\n", tok.File, tok.Line, tok.Column, tok.Literal)
				}
			}
			fmt.Printf("%d tokens\n", count)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Print each token with its position")

	return cmd
}
