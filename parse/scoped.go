package parse

import (
	"fmt"
	"sync"

	"github.com/dhamidi/wordparse/token"
	"github.com/dhamidi/wordparse/window"
)

// Brackets matches a bracket group opened by open and closed by close and
// parses its inner words with p. Inner words p leaves over are an
// UnclosedScope error unless p already reported errors explaining them. On
// success the outer window advances past the whole group.
func Brackets[T any](open, close rune, p Parser[T]) Parser[T] {
	name := string(open) + string(close)
	openText := quote(string(open))
	return Func[T]{
		Name: name,
		Fn: func(ctx *Context, w Words) Result[T] {
			first := w.First()
			if first == nil {
				ctx.failed(name, nil)
				return Failure[T](w, []Error{endOfInput(openText, w)})
			}
			inner, ok := first.Brackets(open, close)
			if !ok {
				ctx.failed(name, first)
				return Failure[T](w, []Error{unexpected(openText, first)})
			}

			ctx.enter(name)
			defer ctx.leave(name)
			res := p.Parse(ctx, window.New(inner))
			if len(res.Errors) == 0 {
				if word := res.Rest.First(); word != nil {
					ctx.failed(name, word)
					return Failure[T](w, []Error{{
						Kind:     UnclosedScope,
						Expected: quote(string(close)),
						Got:      word,
					}})
				}
			}
			if !res.OK {
				return Failure[T](w, res.Errors)
			}
			return Success(res.Value, w.Skip(1), res.Errors)
		},
	}
}

func SquareBrackets[T any](p Parser[T]) Parser[T] {
	return Brackets('[', ']', p)
}

func CurlyBrackets[T any](p Parser[T]) Parser[T] {
	return Brackets('{', '}', p)
}

func Parentheses[T any](p Parser[T]) Parser[T] {
	return Brackets('(', ')', p)
}

func isText(text string) func(*token.Word) bool {
	return func(w *token.Word) bool {
		return w.Is(text)
	}
}

// SeparatedBy splits the window on every top level sep word and parses each
// piece with p independently. Broken pieces add errors but do not stop the
// remaining pieces from being parsed, so the result holds every element that
// parsed. A piece other than the last with leftover words, and an empty
// piece after a separator, are SeparatorMisuse errors. The returned window is
// whatever the last piece left over. SeparatedBy never fails.
func SeparatedBy[T any](sep string, p Parser[T]) Parser[[]T] {
	name := fmt.Sprintf("SeparatedBy<%s>", sep)
	return Func[[]T]{
		Name: name,
		Fn: func(ctx *Context, w Words) Result[[]T] {
			ctx.enter(name)
			defer ctx.leave(name)
			items := make([]T, 0)
			var errs []Error
			rest := w
			pieces := w.SplitIncludingStart(isText(sep))
			for i, piece := range pieces {
				last := i == len(pieces)-1
				if i > 0 {
					separator := piece.PopFirst()
					if piece.IsEmpty() {
						ctx.failed(name, separator)
						errs = append(errs, Error{
							Kind:     SeparatorMisuse,
							Expected: "element after " + quote(sep),
							Got:      separator,
						})
						if last {
							rest = piece
						}
						continue
					}
				}
				res := p.Parse(ctx, piece)
				clean := len(res.Errors) == 0
				errs = append(errs, res.Errors...)
				if res.OK {
					items = append(items, res.Value)
				}
				if last {
					rest = res.Rest
				} else if clean {
					if word := res.Rest.First(); word != nil {
						ctx.failed(name, word)
						errs = append(errs, Error{Kind: SeparatorMisuse, Expected: quote(sep), Got: word})
					}
				}
			}
			return Success(items, rest, errs)
		},
	}
}

// SeparatedOnce splits the window at the first sep word. a must consume
// everything before it; b parses what follows and its leftover words are
// returned. A missing separator is reported as end of input.
func SeparatedOnce[A, B any](sep string, a Parser[A], b Parser[B]) Parser[Tuple2[A, B]] {
	name := fmt.Sprintf("SeparatedOnce<%s>", sep)
	return Func[Tuple2[A, B]]{
		Name: name,
		Fn: func(ctx *Context, w Words) Result[Tuple2[A, B]] {
			ctx.enter(name)
			defer ctx.leave(name)
			left, right, ok := w.SplitOnce(isText(sep))
			if !ok {
				ctx.failed(name, nil)
				return Failure[Tuple2[A, B]](w, []Error{endOfInput(quote(sep), w)})
			}

			var out Tuple2[A, B]
			ra := a.Parse(ctx, left)
			errs := ra.Errors
			if !ra.OK {
				return Failure[Tuple2[A, B]](ra.Rest, errs)
			}
			if word := ra.Rest.First(); word != nil {
				ctx.failed(name, word)
				errs = append(errs, Error{Kind: SeparatorMisuse, Expected: quote(sep), Got: word})
				return Failure[Tuple2[A, B]](ra.Rest, errs)
			}
			out.A = ra.Value

			rb := b.Parse(ctx, right)
			errs = append(errs, rb.Errors...)
			if !rb.OK {
				return Failure[Tuple2[A, B]](rb.Rest, errs)
			}
			out.B = rb.Value
			return Success(out, rb.Rest, errs)
		},
	}
}

// Statements cuts the window before every occurrence of one of p's starting
// keywords and parses each chunk with p. A chunk that parses but leaves words
// over, without errors explaining why, gets an UnexpectedStatementTail error.
// Broken chunks never stop the remaining ones from being parsed. Statements
// consumes the whole window and never fails.
func Statements[T any](p Parser[T]) Parser[[]T] {
	s := &statements[T]{p: p}
	return Func[[]T]{Name: "Statements", Fn: s.parse}
}

// NonEmptyStatements is Statements that fails when no statement parsed.
func NonEmptyStatements[T any](p Parser[T]) Parser[[]T] {
	s := &statements[T]{p: p}
	return Func[[]T]{
		Name: "NonEmptyStatements",
		Fn: func(ctx *Context, w Words) Result[[]T] {
			res := s.parse(ctx, w)
			if len(res.Value) > 0 {
				return res
			}
			errs := res.Errors
			if len(errs) == 0 {
				expected := "statement"
				if kws := s.startingKeywords(); len(kws) > 0 {
					expected = quoteAll(kws)
				}
				errs = append(errs, missing(expected, w))
			}
			ctx.failed("NonEmptyStatements", w.First())
			return Failure[[]T](res.Rest, errs)
		},
	}
}

type statements[T any] struct {
	p    Parser[T]
	once sync.Once
	kws  []string
	set  map[string]bool
}

func (s *statements[T]) startingKeywords() []string {
	s.once.Do(func() {
		s.kws = StartingKeywords(s.p)
		s.set = make(map[string]bool, len(s.kws))
		for _, kw := range s.kws {
			s.set[kw] = true
		}
	})
	return s.kws
}

func (s *statements[T]) isStart(w *token.Word) bool {
	text, ok := w.Text()
	return ok && s.set[text]
}

func (s *statements[T]) parse(ctx *Context, w Words) Result[[]T] {
	ctx.enter("Statements")
	defer ctx.leave("Statements")
	s.startingKeywords()
	items := make([]T, 0)
	var errs []Error
	for _, chunk := range w.SplitIncludingStart(s.isStart) {
		res := s.p.Parse(ctx, chunk)
		clean := len(res.Errors) == 0
		errs = append(errs, res.Errors...)
		if res.OK {
			items = append(items, res.Value)
		}
		if clean {
			if word := res.Rest.First(); word != nil {
				ctx.failed("Statements", word)
				errs = append(errs, Error{
					Kind:     UnexpectedStatementTail,
					Expected: "end of statement",
					Got:      word,
				})
			}
		}
	}
	return Success(items, w.Empty(), errs)
}
