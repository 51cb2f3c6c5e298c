package diag

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/dhamidi/wordparse/parse"
	"github.com/dhamidi/wordparse/token"
)

func word(line, from int, text string) *token.Word {
	return &token.Word{Line: line, ColumnFrom: from, ColumnTo: from + len(text), Literal: text}
}

func TestGroupMergesExpected(t *testing.T) {
	x := word(1, 4, "x")
	errs := []parse.Error{
		{Kind: parse.UnexpectedShape, Expected: `"="`, Got: x},
		{Kind: parse.UnexpectedShape, Expected: "type name", Got: x, Unlikely: true},
		{Kind: parse.UnexpectedShape, Expected: `"="`, Got: x},
		{Kind: parse.EndOfInput, Expected: "integer"},
		{Kind: parse.UnexpectedShape, Expected: "integer", Got: word(1, 0, "let")},
	}

	ds := Group(errs)
	if len(ds) != 3 {
		t.Fatalf("got %d diagnostics: %+v", len(ds), ds)
	}
	if ds[0].Got != "let" || ds[1].Got != "x" || !ds[2].EndOfInput() {
		t.Errorf("wrong order: %+v", ds)
	}
	if !reflect.DeepEqual(ds[1].Expected, []string{`"="`, "type name"}) {
		t.Errorf("got %v", ds[1].Expected)
	}
	if ds[1].Unlikely {
		t.Error("a group with a likely error is likely")
	}
	if got, want := ds[1].Message(), `expected "=" or type name, got "x"`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := ds[2].Message(), "expected integer, got end of input"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGroupSeparatesWords(t *testing.T) {
	// same position, different spans
	errs := []parse.Error{
		{Expected: "a", Got: word(2, 0, "ab")},
		{Expected: "b", Got: word(2, 0, "a")},
	}
	if ds := Group(errs); len(ds) != 2 {
		t.Errorf("got %+v", ds)
	}
}

func TestFilter(t *testing.T) {
	errs := []parse.Error{
		{Expected: "a", Got: word(1, 0, "x"), Unlikely: true},
		{Expected: "b", Got: word(1, 2, "y")},
	}
	ds := Group(errs)
	if got := Filter(ds, 0); len(got) != 1 || got[0].Got != "y" {
		t.Errorf("verbosity 0: got %+v", got)
	}
	if got := Filter(ds, 1); len(got) != 2 {
		t.Errorf("verbosity 1: got %+v", got)
	}
	if n := Likely(ds); n != 1 {
		t.Errorf("got %d likely", n)
	}
}

func TestWrite(t *testing.T) {
	res := parse.Statements(parse.Keyword("int", parse.Int())).Parse(nil,
		parse.NewWords(token.Tokenize("int 1\nint x\nint", token.DefaultBrackets)))

	var buf bytes.Buffer
	if err := Write(&buf, "a.txt", Group(res.Errors)); err != nil {
		t.Fatal(err)
	}
	want := "a.txt:2:5: expected integer, got \"x\"\n" +
		"a.txt: expected integer, got end of input\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}
