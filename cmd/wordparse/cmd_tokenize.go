package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/wordparse/token"
)

func newTokenizeCmd(a *app) *cobra.Command {
	var outputFormat string
	var flat bool

	cmd := &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Split a file into its word tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			pairs, err := a.cfg.BracketPairs()
			if err != nil {
				return err
			}

			words := token.Tokenize(string(data), pairs)
			if flat {
				words = token.Flatten(words)
			}
			a.log.Debugf("%s: %d top level words", args[0], len(words))

			out := cmd.OutOrStdout()
			if outputFormat == "text" {
				printWords(out, words, 0)
				return nil
			}
			return encode(out, outputFormat, viewWords(words))
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&flat, "flat", false, "expand bracket groups into open and close words")

	return cmd
}
