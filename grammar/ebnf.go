package grammar

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/ebnf"
)

// ProductionName converts a rule name into a non-lexical EBNF production
// name: "value_list" becomes "ValueList".
func ProductionName(rule string) string {
	var sb strings.Builder
	upper := true
	for _, r := range rule {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// lexical productions backing the leaf kinds, in output order
var leafProductions = []struct {
	name string
	expr string
	uses []string
}{
	{"upper", `"A" … "Z"`, nil},
	{"lower", `"a" … "z"`, nil},
	{"letter", `upper | lower`, []string{"upper", "lower"}},
	{"digit", `"0" … "9"`, nil},
	{"int_lit", `digit { digit }`, []string{"digit"}},
	{"float_lit", `digit { digit } [ "." digit { digit } ]`, []string{"digit"}},
	{"bool_lit", `"true" | "false"`, nil},
	{"string_lit", `"\"" { letter | digit | " " } "\""`, []string{"letter", "digit"}},
	{"type_name", `upper { letter | digit }`, []string{"upper", "letter", "digit"}},
	{"value_name", `lower { lower | digit | "_" }`, []string{"lower", "digit"}},
	{"word", `letter { letter | digit | "_" } | digit { digit }`, []string{"letter", "digit"}},
}

var leafProduction = map[string]string{
	LeafInt:       "int_lit",
	LeafFloat:     "float_lit",
	LeafBool:      "bool_lit",
	LeafString:    "string_lit",
	LeafTypeName:  "type_name",
	LeafValueName: "value_name",
	LeafWord:      "word",
}

type ebnfWriter struct {
	out    *bufio.Writer
	leaves map[string]bool
}

// WriteEBNF renders the grammar as EBNF in the notation of
// golang.org/x/exp/ebnf. Rules become non-lexical productions; leaf kinds
// are described by lexical helper productions appended after them.
func (g *Grammar) WriteEBNF(w io.Writer) error {
	names := map[string]string{}
	for _, rule := range g.RuleNames() {
		prod := ProductionName(rule)
		if prod == "" {
			return fmt.Errorf("rule %q has no usable production name", rule)
		}
		if other, ok := names[prod]; ok {
			return fmt.Errorf("rules %q and %q both map to production %s", other, rule, prod)
		}
		names[prod] = rule
	}

	ew := &ebnfWriter{out: bufio.NewWriter(w), leaves: map[string]bool{}}
	for _, rule := range g.RuleNames() {
		fmt.Fprintf(ew.out, "%s = %s .\n", ProductionName(rule), ew.expr(g.Rules[rule], false))
	}

	needed := map[string]bool{}
	for leaf := range ew.leaves {
		needed[leaf] = true
	}
	// helpers only depend on helpers listed before them
	for i := len(leafProductions) - 1; i >= 0; i-- {
		if p := leafProductions[i]; needed[p.name] {
			for _, use := range p.uses {
				needed[use] = true
			}
		}
	}
	first := true
	for _, p := range leafProductions {
		if !needed[p.name] {
			continue
		}
		if first {
			ew.out.WriteString("\n")
			first = false
		}
		fmt.Fprintf(ew.out, "%s = %s .\n", p.name, p.expr)
	}
	return ew.out.Flush()
}

// expr renders e. Alternatives are parenthesized when they appear inside a
// sequence.
func (ew *ebnfWriter) expr(e *Expr, inSeq bool) string {
	kind, _ := e.kind()
	switch kind {
	case "text":
		return strconv.Quote(e.Text)
	case "leaf":
		name := leafProduction[e.Leaf]
		ew.leaves[name] = true
		return name
	case "ref":
		return ProductionName(e.Ref)
	case "seq":
		parts := make([]string, len(e.Seq))
		for i, child := range e.Seq {
			parts[i] = ew.expr(child, true)
		}
		return strings.Join(parts, " ")
	case "one_of":
		parts := make([]string, len(e.OneOf))
		for i, child := range e.OneOf {
			parts[i] = ew.expr(child, false)
		}
		alt := strings.Join(parts, " | ")
		if inSeq && len(parts) > 1 {
			return "( " + alt + " )"
		}
		return alt
	case "many", "statements":
		return "{ " + ew.expr(e.children()[0], false) + " }"
	case "many1", "statements1":
		inner := e.children()[0]
		return ew.expr(inner, true) + " { " + ew.expr(inner, false) + " }"
	case "optional":
		return "[ " + ew.expr(e.Optional, false) + " ]"
	case "square":
		return `"[" ` + ew.expr(e.Square, true) + ` "]"`
	case "curly":
		return `"{" ` + ew.expr(e.Curly, true) + ` "}"`
	case "parens":
		return `"(" ` + ew.expr(e.Parens, true) + ` ")"`
	case "sep_by":
		item := ew.expr(e.SepBy.Item, true)
		return "[ " + item + " { " + strconv.Quote(e.SepBy.Sep) + " " + item + " } ]"
	case "sep_once":
		return ew.expr(e.SepOnce.Left, true) + " " + strconv.Quote(e.SepOnce.Sep) + " " + ew.expr(e.SepOnce.Right, true)
	}
	return ""
}

// VerifyEBNF renders the grammar and checks the result with ebnf.Verify
// starting from the start rule.
func (g *Grammar) VerifyEBNF() error {
	var buf bytes.Buffer
	if err := g.WriteEBNF(&buf); err != nil {
		return err
	}
	parsed, err := ebnf.Parse("grammar.ebnf", &buf)
	if err != nil {
		return fmt.Errorf("parsing generated EBNF: %w", err)
	}
	if err := ebnf.Verify(parsed, ProductionName(g.Start)); err != nil {
		return fmt.Errorf("verifying generated EBNF: %w", err)
	}
	return nil
}
