package token

import (
	"strings"
	"testing"
)

func literals(words []Word) []string {
	var out []string
	for _, w := range words {
		out = append(out, w.String())
	}
	return out
}

func TestTokenizeLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"hello", []string{"hello"}},
		{"hello world", []string{"hello", "world"}},
		{"a=b", []string{"a", "=", "b"}},
		{"a == b", []string{"a", "==", "b"}},
		{"x->y", []string{"x", "->", "y"}},
		{"snake_case_name", []string{"snake_case_name"}},
		{"123", []string{"123"}},
		{"123.456", []string{"123.456"}},
		{"1..5", []string{"1", "..", "5"}},
		{"a.b", []string{"a", ".", "b"}},
		{"1,2,3,", []string{"1", ",", "2", ",", "3", ","}},
		{`"hello"`, []string{`"hello"`}},
		{`"hello world" x`, []string{`"hello world"`, "x"}},
		{`"say \"hi\""`, []string{`"say \"hi\""`}},
		{`"back\\" x`, []string{`"back\\"`, "x"}},
		{`"a // b"`, []string{`"a // b"`}},
		{`"unterminated`, []string{`"unterminated`}},
		{"a // comment", []string{"a"}},
		{"// only a comment\nb", []string{"b"}},
		{"a\n\n\nb", []string{"a", "b"}},
		{"int 1 int 2 int", []string{"int", "1", "int", "2", "int"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := literals(Tokenize(tt.input, DefaultBrackets))
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") || len(got) != len(tt.expected) {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	words := Tokenize("let x = 1\n  foo", nil)
	expected := []Word{
		{Line: 1, ColumnFrom: 0, ColumnTo: 3, Literal: "let"},
		{Line: 1, ColumnFrom: 4, ColumnTo: 5, Literal: "x"},
		{Line: 1, ColumnFrom: 6, ColumnTo: 7, Literal: "="},
		{Line: 1, ColumnFrom: 8, ColumnTo: 9, Literal: "1"},
		{Line: 2, ColumnFrom: 2, ColumnTo: 5, Literal: "foo"},
	}
	if len(words) != len(expected) {
		t.Fatalf("got %d words, want %d", len(words), len(expected))
	}
	for i := range expected {
		if words[i] != expected[i] {
			t.Errorf("word %d: got %+v, want %+v", i, words[i], expected[i])
		}
	}
}

func TestTokenizeGroups(t *testing.T) {
	words := Tokenize("f(a, [1 2]) {}", DefaultBrackets)
	if len(words) != 3 {
		t.Fatalf("got %d top-level words, want 3: %q", len(words), literals(words))
	}
	if words[0].Literal != "f" {
		t.Errorf("got %q, want f", words[0].Literal)
	}

	inner, ok := words[1].Brackets('(', ')')
	if !ok {
		t.Fatalf("expected parentheses group, got %q", words[1].String())
	}
	if got := strings.Join(literals(inner), "|"); got != "a|,|[1 2]" {
		t.Errorf("got inner %q", got)
	}
	if words[1].ColumnFrom != 1 || words[1].ColumnTo != 11 {
		t.Errorf("got group span [%d,%d), want [1,11)", words[1].ColumnFrom, words[1].ColumnTo)
	}

	nested, ok := inner[2].Brackets('[', ']')
	if !ok || len(nested) != 2 {
		t.Fatalf("expected nested square group with 2 words, got %q", inner[2].String())
	}

	empty, ok := words[2].Brackets('{', '}')
	if !ok || len(empty) != 0 {
		t.Errorf("expected empty curly group, got %q", words[2].String())
	}
}

func TestTokenizeBracketsSplitWords(t *testing.T) {
	words := Tokenize("a[b]c", []BracketPair{{Open: '[', Close: ']'}})
	if got := strings.Join(literals(words), "|"); got != "a|[b]|c" {
		t.Errorf("got %q", got)
	}
}

func TestTokenizeMismatchedBrackets(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"stray close", "a ) b", "a|)|b"},
		{"wrong close", "[1)", "[1)"},
		{"unclosed", "x [1 2", "x|[|1|2"},
		{"unclosed nested", "{a (b", "{|a|(|b"},
		{"unrecognized", "<a>", "<|a|>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(literals(Tokenize(tt.input, DefaultBrackets)), "|")
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}

	words := Tokenize("[1)", DefaultBrackets)
	if _, ok := words[0].Brackets('[', ']'); ok {
		t.Errorf("mismatched group must not match [ ]")
	}
	if _, ok := words[0].Brackets('[', ')'); !ok {
		t.Errorf("mismatched group should record the actual close character")
	}
}

func TestTokenizeMultilineGroup(t *testing.T) {
	words := Tokenize("{\n  a\n}", DefaultBrackets)
	if len(words) != 1 || !words[0].IsGroup() {
		t.Fatalf("expected a single group, got %q", literals(words))
	}
	g := words[0].Group
	if g.CloseLine != 3 || g.CloseColumn != 0 {
		t.Errorf("got close at %d:%d, want 3:0", g.CloseLine, g.CloseColumn)
	}
	if words[0].ColumnTo != 1 {
		t.Errorf("multi-line group should only cover its open character, got ColumnTo=%d", words[0].ColumnTo)
	}
	if g.Words[0].Line != 2 {
		t.Errorf("got inner line %d, want 2", g.Words[0].Line)
	}
}

func TestFlatten(t *testing.T) {
	flat := Flatten(Tokenize("a (b [c])", DefaultBrackets))
	if got := strings.Join(literals(flat), "|"); got != "a|(|b|[|c|]|)" {
		t.Errorf("got %q", got)
	}
	last := flat[len(flat)-1]
	if last.ColumnFrom != 8 || last.ColumnTo != 9 {
		t.Errorf("got close paren span [%d,%d), want [8,9)", last.ColumnFrom, last.ColumnTo)
	}
}
