package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/wordparse/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	var grammarFile string
	var address string
	var verbose int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.compileGrammar(grammarFile)
			if err != nil {
				return err
			}
			server := lsp.NewServer(c, a.verbosity(cmd, verbose), version)
			if address != "" {
				return server.RunTCP(address)
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "grammar file (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&address, "tcp", "", "listen on this address instead of stdio")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "also publish unlikely diagnostics as hints")

	return cmd
}
