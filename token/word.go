// Package token defines the word tree consumed by the parse package and the
// tokenizer that produces it.
//
// A source text becomes a slice of Words. A Word is either a literal text
// token (identifiers, numbers, operators and quoted strings, the latter
// still carrying their quotes) or a bracket Group holding the words between
// a matched open and close character. Groups nest, so the tokenizer output
// is a tree whose shape already reflects the bracket structure of the input.
package token

import (
	"fmt"
	"strings"
)

// BracketPair is an open/close character pair recognized by the tokenizer.
type BracketPair struct {
	Open  rune
	Close rune
}

func (b BracketPair) String() string {
	return string(b.Open) + string(b.Close)
}

// DefaultBrackets is the bracket table used by the command line driver.
var DefaultBrackets = []BracketPair{
	{Open: '{', Close: '}'},
	{Open: '(', Close: ')'},
	{Open: '[', Close: ']'},
}

// ParseBrackets converts entries such as "{}" into bracket pairs. Each entry
// must be exactly two distinct characters.
func ParseBrackets(entries []string) ([]BracketPair, error) {
	pairs := make([]BracketPair, 0, len(entries))
	for _, entry := range entries {
		runes := []rune(entry)
		if len(runes) != 2 || runes[0] == runes[1] {
			return nil, fmt.Errorf("bracket pair %q must be two distinct characters", entry)
		}
		pairs = append(pairs, BracketPair{Open: runes[0], Close: runes[1]})
	}
	return pairs, nil
}

// Group is the payload of a bracket word. Close is the character that
// actually closed the group, which differs from the partner of Open when the
// input was mismatched.
type Group struct {
	Open        rune
	Close       rune
	Words       []Word
	CloseLine   int
	CloseColumn int
}

// Word is a single lexical unit.
//
// Line is 1-based. ColumnFrom and ColumnTo are 0-based rune offsets into the
// line forming the half-open range [ColumnFrom, ColumnTo). For a group they
// cover the open character, and the close character too when both sit on the
// same line.
type Word struct {
	Line       int
	ColumnFrom int
	ColumnTo   int
	Literal    string
	Group      *Group
}

// IsGroup reports whether w is a bracket group.
func (w Word) IsGroup() bool {
	return w.Group != nil
}

// Text returns the literal text of w, or false when w is a group.
func (w Word) Text() (string, bool) {
	if w.Group != nil {
		return "", false
	}
	return w.Literal, true
}

// Is reports whether w is a text word equal to text.
func (w Word) Is(text string) bool {
	return w.Group == nil && w.Literal == text
}

// Brackets returns the inner words of w when w is a group opened by open and
// closed by close.
func (w Word) Brackets(open, close rune) ([]Word, bool) {
	if w.Group == nil || w.Group.Open != open || w.Group.Close != close {
		return nil, false
	}
	return w.Group.Words, true
}

// String renders the word the way it appeared in the source, modulo
// whitespace.
func (w Word) String() string {
	if w.Group == nil {
		return w.Literal
	}
	var sb strings.Builder
	sb.WriteRune(w.Group.Open)
	for i, inner := range w.Group.Words {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(inner.String())
	}
	sb.WriteRune(w.Group.Close)
	return sb.String()
}

// Position returns "line:column" with a 1-based column.
func (w Word) Position() string {
	return fmt.Sprintf("%d:%d", w.Line, w.ColumnFrom+1)
}

// Flatten expands every group back into its open literal, its inner words and
// its close literal.
func Flatten(words []Word) []Word {
	var out []Word
	for _, w := range words {
		if w.Group == nil {
			out = append(out, w)
			continue
		}
		out = append(out, Word{
			Line:       w.Line,
			ColumnFrom: w.ColumnFrom,
			ColumnTo:   w.ColumnFrom + 1,
			Literal:    string(w.Group.Open),
		})
		out = append(out, Flatten(w.Group.Words)...)
		out = append(out, Word{
			Line:       w.Group.CloseLine,
			ColumnFrom: w.Group.CloseColumn,
			ColumnTo:   w.Group.CloseColumn + 1,
			Literal:    string(w.Group.Close),
		})
	}
	return out
}
