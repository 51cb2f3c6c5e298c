package parse

import (
	"sync"
)

// Alternative is one variant of a OneOf.
type Alternative[T any] struct {
	Name   string
	Parser Parser[T]
}

func Variant[T any](name string, p Parser[T]) Alternative[T] {
	return Alternative[T]{Name: name, Parser: p}
}

// OneOf tries each variant against the same window and yields the first one
// that succeeds. A variant advertising starting keywords is only tried when
// the first word is one of them. When every tried variant fails, their errors
// are combined with FlattenBranchedErrors.
func OneOf[T any](name string, variants ...Alternative[T]) Parser[T] {
	return &oneOf[T]{name: name, variants: variants}
}

type oneOf[T any] struct {
	name     string
	variants []Alternative[T]

	once     sync.Once
	gates    []map[string]bool
	keywords []string
}

func (o *oneOf[T]) String() string {
	return o.name
}

func (o *oneOf[T]) init() {
	o.once.Do(func() {
		o.gates = make([]map[string]bool, len(o.variants))
		var union []string
		seen := map[string]bool{}
		complete := len(o.variants) > 0
		for i, v := range o.variants {
			kws := StartingKeywords(v.Parser)
			if len(kws) == 0 {
				complete = false
				continue
			}
			o.gates[i] = make(map[string]bool, len(kws))
			for _, kw := range kws {
				o.gates[i][kw] = true
				if !seen[kw] {
					seen[kw] = true
					union = append(union, kw)
				}
			}
		}
		if complete {
			o.keywords = union
		}
	})
}

// StartingKeywords is the union of the variants' keywords, or nil when any
// variant may start with an arbitrary word.
func (o *oneOf[T]) StartingKeywords() []string {
	o.init()
	return o.keywords
}

func (o *oneOf[T]) admits(i int, w Words) bool {
	gate := o.gates[i]
	if gate == nil {
		return true
	}
	word := w.First()
	if word == nil {
		return false
	}
	text, ok := word.Text()
	return ok && gate[text]
}

func (o *oneOf[T]) Parse(ctx *Context, w Words) Result[T] {
	o.init()
	ctx.enter(o.name)
	defer ctx.leave(o.name)

	var branches [][]Error
	for i, v := range o.variants {
		if !o.admits(i, w) {
			continue
		}
		ctx.note(o.name, "trying "+v.Name)
		res := v.Parser.Parse(ctx, w)
		if res.OK {
			return res
		}
		branches = append(branches, res.Errors)
	}

	if len(branches) == 0 {
		return Failure[T](w, o.notAdmitted(w))
	}
	ctx.failed(o.name, w.First())
	return Failure[T](w, FlattenBranchedErrors(branches))
}

// notAdmitted reports the gated keywords when no variant accepted the first
// word. Every variant is gated at this point, so o.keywords is their union.
func (o *oneOf[T]) notAdmitted(w Words) []Error {
	if len(o.keywords) == 0 {
		return []Error{missing(o.name, w)}
	}
	errs := make([]Error, 0, len(o.keywords))
	for _, kw := range o.keywords {
		errs = append(errs, missing(quote(kw), w))
	}
	return errs
}

// FlattenBranchedErrors merges the errors of failed sibling alternatives.
// For every branch it finds the furthest position reached by its errors, end
// of input counting as the position just past the last word consumed, or 0:0
// when nothing was. Errors of branches that fell short of the overall
// furthest position are marked Unlikely. Branch order is kept.
func FlattenBranchedErrors(branches [][]Error) []Error {
	type pos struct{ line, column int }
	less := func(a, b pos) bool {
		return a.line < b.line || (a.line == b.line && a.column < b.column)
	}

	furthest := make([]pos, len(branches))
	var best pos
	for i, errs := range branches {
		for _, e := range errs {
			line, column := e.Position()
			if p := (pos{line, column}); less(furthest[i], p) {
				furthest[i] = p
			}
		}
		if less(best, furthest[i]) {
			best = furthest[i]
		}
	}

	var out []Error
	for i, errs := range branches {
		shallow := less(furthest[i], best)
		for _, e := range errs {
			if shallow {
				e.Unlikely = true
			}
			out = append(out, e)
		}
	}
	return out
}
