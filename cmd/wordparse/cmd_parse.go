package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/wordparse/diag"
	"github.com/dhamidi/wordparse/grammar"
	"github.com/dhamidi/wordparse/parse"
)

// parseOutput is the document written by parse --format json|yaml.
type parseOutput struct {
	File        string            `json:"file" yaml:"file"`
	Tree        *grammar.Node     `json:"tree,omitempty" yaml:"tree,omitempty"`
	Diagnostics []diag.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

func newParseCmd(a *app) *cobra.Command {
	var grammarFile string
	var outputFormat string
	var verbose int

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file with a grammar and report the tree and diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			c, err := a.compileGrammar(grammarFile)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			ctx := parse.NewContext(parse.WithTracer(commonlog.GetLogger("wordparse.parse")))
			res := c.ParseText(ctx, string(data))
			ds := diag.Filter(diag.Group(res.Errors), a.verbosity(cmd, verbose))

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "text":
				if res.OK {
					printNode(out, res.Value, 0)
				}
				if err := diag.Write(cmd.ErrOrStderr(), filename, ds); err != nil {
					return err
				}
			default:
				doc := parseOutput{File: filename, Diagnostics: ds}
				if res.OK {
					doc.Tree = res.Value
				}
				if doc.Diagnostics == nil {
					doc.Diagnostics = []diag.Diagnostic{}
				}
				if err := encode(out, outputFormat, doc); err != nil {
					return err
				}
			}

			if n := diag.Likely(ds); n > 0 || !res.OK {
				return fmt.Errorf("%s: %d errors", filename, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "grammar file (.yaml, .yml or .toml)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "also report unlikely diagnostics")

	return cmd
}

func (a *app) compileGrammar(flag string) (*grammar.Compiled, error) {
	path, err := a.grammarPath(flag)
	if err != nil {
		return nil, err
	}
	g, err := grammar.Load(path)
	if err != nil {
		return nil, err
	}
	c, err := g.Compile()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debugf("compiled %s with %d rules", path, len(g.Rules))
	return c, nil
}
