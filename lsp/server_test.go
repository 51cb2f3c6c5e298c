package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/wordparse/grammar"
)

const testGrammar = `
start: program
rules:
  program:
    statements: {ref: decl}
  decl:
    one_of:
      - seq: [{text: let}, {leaf: value_name}, {text: "="}, {leaf: int}]
      - seq: [{text: let}, {leaf: type_name}, {text: "="}, {leaf: type_name}]
`

func compile(t *testing.T) *grammar.Compiled {
	t.Helper()
	g, err := grammar.Parse([]byte(testGrammar), grammar.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	c, err := g.Compile()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDiagnostics(t *testing.T) {
	c := compile(t)
	text := "let a = 1\nlet b = x\n"

	ds := Diagnostics(c, text, 0)
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics: %+v", len(ds), ds)
	}
	d := ds[0]
	if d.Range.Start.Line != 1 || d.Range.Start.Character != 8 || d.Range.End.Character != 9 {
		t.Errorf("got range %+v", d.Range)
	}
	if *d.Severity != protocol.DiagnosticSeverityError || d.Message != `expected integer, got "x"` {
		t.Errorf("got %+v", d)
	}

	// the type_name branch failed earlier on "b" and is only shown verbosely
	ds = Diagnostics(c, text, 1)
	if len(ds) != 2 {
		t.Fatalf("got %d diagnostics: %+v", len(ds), ds)
	}
	var hints int
	for _, d := range ds {
		if *d.Severity == protocol.DiagnosticSeverityHint {
			hints++
			if d.Range.Start.Character != 4 {
				t.Errorf("got hint at %+v", d.Range)
			}
		}
	}
	if hints != 1 {
		t.Errorf("got %d hints", hints)
	}
}

func TestDiagnosticsEndOfInput(t *testing.T) {
	ds := Diagnostics(compile(t), "let a = 1\nlet", 0)
	if len(ds) != 1 {
		t.Fatalf("got %+v", ds)
	}
	if pos := ds[0].Range.Start; pos.Line != 1 || pos.Character != 3 {
		t.Errorf("got %+v", pos)
	}
	if want := "expected value name or type name, got end of input"; ds[0].Message != want {
		t.Errorf("got %q", ds[0].Message)
	}
}

func TestDiagnosticsIncompleteStatement(t *testing.T) {
	// the integer branch got past "a" before input ran out
	ds := Diagnostics(compile(t), "let a =", 0)
	if len(ds) != 1 {
		t.Fatalf("got %+v", ds)
	}
	if want := "expected integer, got end of input"; ds[0].Message != want {
		t.Errorf("got %q", ds[0].Message)
	}
	if *ds[0].Severity != protocol.DiagnosticSeverityError {
		t.Errorf("got severity %v", *ds[0].Severity)
	}
}

func TestDiagnosticsClean(t *testing.T) {
	ds := Diagnostics(compile(t), "let a = 1\nlet T = U", 1)
	if ds == nil || len(ds) != 0 {
		t.Errorf("got %+v", ds)
	}
}

func TestUTF16Column(t *testing.T) {
	tests := []struct {
		line  string
		runes int
		want  protocol.UInteger
	}{
		{"abc", 0, 0},
		{"abc", 2, 2},
		{"héllo", 3, 3},
		{"😀 x", 2, 3},
		{"ab", 4, 4},
	}
	for _, tt := range tests {
		if got := utf16Column(tt.line, tt.runes); got != tt.want {
			t.Errorf("%q at %d: got %d, want %d", tt.line, tt.runes, got, tt.want)
		}
	}
}
