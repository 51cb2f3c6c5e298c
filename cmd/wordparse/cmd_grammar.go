package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/wordparse/grammar"
)

func newGrammarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Grammar file tools",
	}

	cmd.AddCommand(newGrammarCheckCmd(a))
	cmd.AddCommand(newGrammarEBNFCmd(a))

	return cmd
}

func newGrammarCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a grammar file and verify its EBNF rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load(args[0])
			if err != nil {
				return err
			}
			if err := g.Validate(); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%s: invalid grammar", args[0])
			}
			if err := g.VerifyEBNF(); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%s: EBNF verification failed", args[0])
			}
			a.log.Debugf("%s: validated and verified", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules, start %q\n", args[0], len(g.Rules), g.Start)
			return nil
		},
	}
}

func newGrammarEBNFCmd(a *app) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "ebnf <file>",
		Short: "Render a grammar file as EBNF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load(args[0])
			if err != nil {
				return err
			}
			if err := g.WriteEBNF(cmd.OutOrStdout()); err != nil {
				return err
			}
			a.log.Debugf("%s: rendered %d rules as EBNF", args[0], len(g.Rules))
			if verify {
				if err := g.VerifyEBNF(); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return fmt.Errorf("%s: EBNF verification failed", args[0])
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "verify the rendering with golang.org/x/exp/ebnf")

	return cmd
}

// printErrors prints one line per error, unwrapping joined errors and the
// error lists returned by the ebnf package.
func printErrors(w io.Writer, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printErrors(w, e)
		}
		return
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		if v := reflect.ValueOf(e); v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(w, err)
}
