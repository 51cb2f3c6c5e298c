package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/wordparse/grammar"
	"github.com/dhamidi/wordparse/token"
)

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// wordView is the serialized form of a token.Word.
type wordView struct {
	Line   int        `json:"line" yaml:"line"`
	Column int        `json:"column" yaml:"column"`
	Text   string     `json:"text,omitempty" yaml:"text,omitempty"`
	Open   string     `json:"open,omitempty" yaml:"open,omitempty"`
	Close  string     `json:"close,omitempty" yaml:"close,omitempty"`
	Words  []wordView `json:"words,omitempty" yaml:"words,omitempty"`
}

func viewWords(words []token.Word) []wordView {
	out := make([]wordView, 0, len(words))
	for _, w := range words {
		v := wordView{Line: w.Line, Column: w.ColumnFrom + 1}
		if w.Group != nil {
			v.Open = string(w.Group.Open)
			v.Close = string(w.Group.Close)
			v.Words = viewWords(w.Group.Words)
		} else {
			v.Text = w.Literal
		}
		out = append(out, v)
	}
	return out
}

func printWords(w io.Writer, words []token.Word, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, word := range words {
		if word.Group == nil {
			fmt.Fprintf(w, "%s%s %s\n", indent, word.Position(), word.Literal)
			continue
		}
		fmt.Fprintf(w, "%s%s %c\n", indent, word.Position(), word.Group.Open)
		printWords(w, word.Group.Words, depth+1)
		fmt.Fprintf(w, "%s%d:%d %c\n", indent, word.Group.CloseLine, word.Group.CloseColumn+1, word.Group.Close)
	}
}

func printNode(w io.Writer, n *grammar.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	label := n.Kind
	if n.Name != "" {
		label = n.Name + ":" + n.Kind
	}
	switch {
	case n.Text != "":
		fmt.Fprintf(w, "%s%s %q", indent, label, n.Text)
	default:
		fmt.Fprintf(w, "%s%s", indent, label)
	}
	if n.Line > 0 {
		fmt.Fprintf(w, " @%d:%d", n.Line, n.Column)
	}
	fmt.Fprintln(w)
	for _, child := range n.Children {
		printNode(w, child, depth+1)
	}
}
