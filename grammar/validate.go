package grammar

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/wordparse/token"
)

// BracketPairs returns the tokenizer bracket table of the grammar, or the
// default table when none is given.
func (g *Grammar) BracketPairs() ([]token.BracketPair, error) {
	if len(g.Brackets) == 0 {
		return token.DefaultBrackets, nil
	}
	return token.ParseBrackets(g.Brackets)
}

// RuleNames returns the start rule followed by the other rules in
// alphabetical order.
func (g *Grammar) RuleNames() []string {
	names := make([]string, 0, len(g.Rules))
	for name := range g.Rules {
		if name != g.Start {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := g.Rules[g.Start]; ok {
		names = append([]string{g.Start}, names...)
	}
	return names
}

// Validate reports every structural problem in the grammar: a missing start
// rule, malformed expressions, unknown references, unknown leaf kinds,
// brackets the tokenizer would not produce and left recursion.
func (g *Grammar) Validate() error {
	v := &validator{g: g}
	if g.Start == "" {
		v.errorf("", "no start rule")
	} else if _, ok := g.Rules[g.Start]; !ok {
		v.errorf("", "start rule %q is not defined", g.Start)
	}

	pairs, err := g.BracketPairs()
	if err != nil {
		v.errs = append(v.errs, err)
	}
	v.brackets = pairs

	for _, name := range g.RuleNames() {
		if !isRuleName(name) {
			v.errorf(name, "rule names must start with a letter and contain only letters, digits, _ and -")
		}
		v.expr(name, g.Rules[name])
	}
	if len(v.errs) == 0 {
		v.leftRecursion()
	}
	return errors.Join(v.errs...)
}

func isRuleName(name string) bool {
	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLetter(first) {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}

type validator struct {
	g        *Grammar
	brackets []token.BracketPair
	errs     []error
}

func (v *validator) errorf(rule, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if rule != "" {
		msg = fmt.Sprintf("rule %q: %s", rule, msg)
	}
	v.errs = append(v.errs, errors.New(msg))
}

func (v *validator) hasBrackets(open, close rune) bool {
	return slices.Contains(v.brackets, token.BracketPair{Open: open, Close: close})
}

func (v *validator) expr(rule string, e *Expr) {
	if e == nil {
		v.errorf(rule, "empty expression")
		return
	}
	kind, count := e.kind()
	switch {
	case count == 0:
		v.errorf(rule, "expression sets no key")
		return
	case count > 1:
		v.errorf(rule, "expression sets %d keys, want exactly one", count)
		return
	}

	switch kind {
	case "leaf":
		if !slices.Contains(leafKinds, e.Leaf) {
			v.errorf(rule, "unknown leaf %q", e.Leaf)
		}
	case "ref":
		if _, ok := v.g.Rules[e.Ref]; !ok {
			v.errorf(rule, "reference to undefined rule %q", e.Ref)
		}
	case "seq", "one_of":
		if len(e.children()) == 0 {
			v.errorf(rule, "%s needs at least one element", kind)
		}
	case "square":
		v.requireBrackets(rule, '[', ']')
	case "curly":
		v.requireBrackets(rule, '{', '}')
	case "parens":
		v.requireBrackets(rule, '(', ')')
	case "sep_by":
		if e.SepBy.Sep == "" {
			v.errorf(rule, "sep_by needs a separator")
		}
	case "sep_once":
		if e.SepOnce.Sep == "" {
			v.errorf(rule, "sep_once needs a separator")
		}
	}
	for _, child := range e.children() {
		v.expr(rule, child)
	}
}

func (v *validator) requireBrackets(rule string, open, close rune) {
	if !v.hasBrackets(open, close) {
		v.errorf(rule, "brackets %c%c are not in the bracket table", open, close)
	}
}

// nullable reports which rules may match without consuming a word.
func (v *validator) nullable() map[string]bool {
	null := map[string]bool{}
	for changed := true; changed; {
		changed = false
		for name, e := range v.g.Rules {
			if !null[name] && v.canBeEmpty(e, null) {
				null[name] = true
				changed = true
			}
		}
	}
	return null
}

func (v *validator) canBeEmpty(e *Expr, null map[string]bool) bool {
	kind, _ := e.kind()
	switch kind {
	case "text", "leaf", "square", "curly", "parens", "sep_once":
		return false
	case "ref":
		return null[e.Ref]
	case "seq":
		for _, child := range e.Seq {
			if !v.canBeEmpty(child, null) {
				return false
			}
		}
		return true
	case "one_of":
		for _, child := range e.OneOf {
			if v.canBeEmpty(child, null) {
				return true
			}
		}
		return false
	case "many1", "statements1":
		return v.canBeEmpty(e.children()[0], null)
	}
	// many, optional, sep_by, statements
	return true
}

// leftRefs collects the rules e may call before consuming a word, on the
// same window it was given. Bracket and separator scopes always hand a
// strictly smaller window to their inner expressions, so they end the walk.
func (v *validator) leftRefs(e *Expr, null map[string]bool, out map[string]bool) {
	kind, _ := e.kind()
	switch kind {
	case "ref":
		out[e.Ref] = true
	case "seq":
		for _, child := range e.Seq {
			v.leftRefs(child, null, out)
			if !v.canBeEmpty(child, null) {
				return
			}
		}
	case "one_of", "many", "many1", "optional", "statements", "statements1", "sep_by":
		for _, child := range e.children() {
			v.leftRefs(child, null, out)
		}
	}
}

func (v *validator) leftRecursion() {
	null := v.nullable()
	edges := map[string][]string{}
	for name, e := range v.g.Rules {
		refs := map[string]bool{}
		v.leftRefs(e, null, refs)
		for ref := range refs {
			edges[name] = append(edges[name], ref)
		}
		sort.Strings(edges[name])
	}

	const (
		unvisited = iota
		active
		done
	)
	state := map[string]int{}
	reported := map[string]bool{}
	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		state[name] = active
		path = append(path, name)
		for _, next := range edges[name] {
			switch state[next] {
			case active:
				if !reported[next] {
					reported[next] = true
					i := slices.Index(path, next)
					v.errorf(next, "left recursion through %v", append(slices.Clone(path[i:]), next))
				}
			case unvisited:
				visit(next, path)
			}
		}
		state[name] = done
	}
	for _, name := range v.g.RuleNames() {
		if state[name] == unvisited {
			visit(name, nil)
		}
	}
}
