package parse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tliron/commonlog"
)

type recorder struct {
	level commonlog.Level
	lines []string
}

func (r *recorder) AllowLevel(level commonlog.Level) bool {
	return level <= r.level
}

func (r *recorder) Debugf(format string, values ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, values...))
}

func TestTracing(t *testing.T) {
	rec := &recorder{level: commonlog.Debug}
	ctx := NewContext(WithTracer(rec))

	res := Seq2(Text("let"), Int()).Parse(ctx, words("let x"))
	if res.OK {
		t.Fatal("expected failure")
	}

	expected := []string{
		"start Seq2",
		`  parsed "let": 1:1 "let"`,
		`  failed integer: 1:5 "x"`,
		"end Seq2",
	}
	if strings.Join(rec.lines, "\n") != strings.Join(expected, "\n") {
		t.Errorf("got:\n%s\nwant:\n%s", strings.Join(rec.lines, "\n"), strings.Join(expected, "\n"))
	}
}

func TestTracingDisabled(t *testing.T) {
	rec := &recorder{level: commonlog.Info}
	ctx := NewContext(WithTracer(rec))
	Statements(Keyword("int", Int())).Parse(ctx, words("int 1 int"))
	if len(rec.lines) != 0 {
		t.Errorf("got %d trace lines at info level", len(rec.lines))
	}
}

func TestNilContext(t *testing.T) {
	var ctx *Context
	res := OneOf("x", Variant("a", Keyword("a", Int()))).Parse(ctx, words("a 1"))
	if !res.OK || res.Value != 1 {
		t.Errorf("got %+v", res)
	}
}
