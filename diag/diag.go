// Package diag turns the flat error list of a parse into grouped diagnostics.
//
// Errors reported at the same span for the same word are merged into one
// Diagnostic whose Message reads "expected A or B, got X". A Diagnostic is
// unlikely when every error it merges was marked unlikely by ambiguity
// resolution; Filter drops those at verbosity 0.
package diag

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dhamidi/wordparse/parse"
)

// Diagnostic is one group of parse errors. Line is 1-based and columns are
// 0-based rune offsets; Line is 0 for errors at end of input.
type Diagnostic struct {
	Line       int      `json:"line" yaml:"line"`
	ColumnFrom int      `json:"column_from" yaml:"column_from"`
	ColumnTo   int      `json:"column_to" yaml:"column_to"`
	Got        string   `json:"got,omitempty" yaml:"got,omitempty"`
	Expected   []string `json:"expected" yaml:"expected"`
	Unlikely   bool     `json:"unlikely,omitempty" yaml:"unlikely,omitempty"`
	Kind       string   `json:"kind" yaml:"kind"`
}

func (d Diagnostic) EndOfInput() bool {
	return d.Line == 0
}

func (d Diagnostic) Message() string {
	got := "end of input"
	if !d.EndOfInput() {
		got = fmt.Sprintf("%q", d.Got)
	}
	return fmt.Sprintf("expected %s, got %s", strings.Join(d.Expected, " or "), got)
}

type key struct {
	line, from, to int
	got            string
}

// Group merges errs by line, column span and offending word. Expected values
// keep the order they were first seen in. The result is ordered by line,
// then by column; end of input diagnostics come last.
func Group(errs []parse.Error) []Diagnostic {
	index := map[key]int{}
	var out []Diagnostic
	for _, e := range errs {
		var k key
		if e.Got != nil {
			k = key{e.Got.Line, e.Got.ColumnFrom, e.Got.ColumnTo, e.Got.String()}
		}
		i, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, Diagnostic{
				Line:       k.line,
				ColumnFrom: k.from,
				ColumnTo:   k.to,
				Got:        k.got,
				Unlikely:   true,
				Kind:       e.Kind.String(),
			})
			i = len(out) - 1
		}
		d := &out[i]
		if !slices.Contains(d.Expected, e.Expected) {
			d.Expected = append(d.Expected, e.Expected)
		}
		d.Unlikely = d.Unlikely && e.Unlikely
	}

	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		if a.EndOfInput() != b.EndOfInput() {
			if a.EndOfInput() {
				return 1
			}
			return -1
		}
		return cmp.Or(
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.ColumnFrom, b.ColumnFrom),
			cmp.Compare(a.ColumnTo, b.ColumnTo),
		)
	})
	return out
}

// Filter keeps every diagnostic at verbosity 1 and above, and only the
// likely ones below that.
func Filter(ds []Diagnostic, verbosity int) []Diagnostic {
	if verbosity > 0 {
		return ds
	}
	var out []Diagnostic
	for _, d := range ds {
		if !d.Unlikely {
			out = append(out, d)
		}
	}
	return out
}

// Likely counts the diagnostics that are not unlikely.
func Likely(ds []Diagnostic) int {
	n := 0
	for _, d := range ds {
		if !d.Unlikely {
			n++
		}
	}
	return n
}

// Write prints one "file:line:col: message" line per diagnostic, with a
// 1-based column. Diagnostics at end of input have no position.
func Write(w io.Writer, filename string, ds []Diagnostic) error {
	for _, d := range ds {
		var err error
		suffix := ""
		if d.Unlikely {
			suffix = " (unlikely)"
		}
		if d.EndOfInput() {
			_, err = fmt.Fprintf(w, "%s: %s%s\n", filename, d.Message(), suffix)
		} else {
			_, err = fmt.Fprintf(w, "%s:%d:%d: %s%s\n", filename, d.Line, d.ColumnFrom+1, d.Message(), suffix)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
