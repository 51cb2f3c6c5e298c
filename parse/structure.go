package parse

import (
	"sync"
)

type Tuple2[A, B any] struct {
	A A
	B B
}

type Tuple3[A, B, C any] struct {
	A A
	B B
	C C
}

type Tuple4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

// step runs one element of a sequence. It appends the element's errors to
// errs and reports whether the sequence may continue.
func step[T any](ctx *Context, p Parser[T], w *Words, errs *[]Error) (T, bool) {
	res := p.Parse(ctx, *w)
	*errs = append(*errs, res.Errors...)
	*w = res.Rest
	return res.Value, res.OK
}

// Seq2 runs a then b on the same advancing window. Soft errors of elements
// that succeeded are kept when a later element fails.
func Seq2[A, B any](a Parser[A], b Parser[B]) Parser[Tuple2[A, B]] {
	return Func[Tuple2[A, B]]{
		Name:   "Seq2",
		Starts: startsOf(a),
		Fn: func(ctx *Context, w Words) Result[Tuple2[A, B]] {
			ctx.enter("Seq2")
			defer ctx.leave("Seq2")
			var errs []Error
			var out Tuple2[A, B]
			var ok bool
			if out.A, ok = step(ctx, a, &w, &errs); !ok {
				return Failure[Tuple2[A, B]](w, errs)
			}
			if out.B, ok = step(ctx, b, &w, &errs); !ok {
				return Failure[Tuple2[A, B]](w, errs)
			}
			return Success(out, w, errs)
		},
	}
}

func Seq3[A, B, C any](a Parser[A], b Parser[B], c Parser[C]) Parser[Tuple3[A, B, C]] {
	return Func[Tuple3[A, B, C]]{
		Name:   "Seq3",
		Starts: startsOf(a),
		Fn: func(ctx *Context, w Words) Result[Tuple3[A, B, C]] {
			ctx.enter("Seq3")
			defer ctx.leave("Seq3")
			var errs []Error
			var out Tuple3[A, B, C]
			var ok bool
			if out.A, ok = step(ctx, a, &w, &errs); !ok {
				return Failure[Tuple3[A, B, C]](w, errs)
			}
			if out.B, ok = step(ctx, b, &w, &errs); !ok {
				return Failure[Tuple3[A, B, C]](w, errs)
			}
			if out.C, ok = step(ctx, c, &w, &errs); !ok {
				return Failure[Tuple3[A, B, C]](w, errs)
			}
			return Success(out, w, errs)
		},
	}
}

func Seq4[A, B, C, D any](a Parser[A], b Parser[B], c Parser[C], d Parser[D]) Parser[Tuple4[A, B, C, D]] {
	return Func[Tuple4[A, B, C, D]]{
		Name:   "Seq4",
		Starts: startsOf(a),
		Fn: func(ctx *Context, w Words) Result[Tuple4[A, B, C, D]] {
			ctx.enter("Seq4")
			defer ctx.leave("Seq4")
			var errs []Error
			var out Tuple4[A, B, C, D]
			var ok bool
			if out.A, ok = step(ctx, a, &w, &errs); !ok {
				return Failure[Tuple4[A, B, C, D]](w, errs)
			}
			if out.B, ok = step(ctx, b, &w, &errs); !ok {
				return Failure[Tuple4[A, B, C, D]](w, errs)
			}
			if out.C, ok = step(ctx, c, &w, &errs); !ok {
				return Failure[Tuple4[A, B, C, D]](w, errs)
			}
			if out.D, ok = step(ctx, d, &w, &errs); !ok {
				return Failure[Tuple4[A, B, C, D]](w, errs)
			}
			return Success(out, w, errs)
		},
	}
}

// SeqN runs parsers of one result type in order and collects their values.
func SeqN[T any](name string, ps ...Parser[T]) Parser[[]T] {
	var starts func() []string
	if len(ps) > 0 {
		starts = startsOf(ps[0])
	}
	return Func[[]T]{
		Name:   name,
		Starts: starts,
		Fn: func(ctx *Context, w Words) Result[[]T] {
			ctx.enter(name)
			defer ctx.leave(name)
			var errs []Error
			out := make([]T, 0, len(ps))
			for _, p := range ps {
				v, ok := step(ctx, p, &w, &errs)
				if !ok {
					return Failure[[]T](w, errs)
				}
				out = append(out, v)
			}
			return Success(out, w, errs)
		},
	}
}

// Keyword matches the literal text followed by p and yields p's value. Its
// starting keyword is text.
func Keyword[T any](text string, p Parser[T]) Parser[T] {
	lit := Text(text)
	name := quote(text)
	return Func[T]{
		Name:     name,
		Keywords: []string{text},
		Fn: func(ctx *Context, w Words) Result[T] {
			ctx.enter(name)
			defer ctx.leave(name)
			var errs []Error
			if _, ok := step(ctx, lit, &w, &errs); !ok {
				return Failure[T](w, errs)
			}
			v, ok := step(ctx, p, &w, &errs)
			if !ok {
				return Failure[T](w, errs)
			}
			return Success(v, w, errs)
		},
	}
}

// Map converts the value produced by p.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return mapped[T, U]{p: p, f: f}
}

type mapped[T, U any] struct {
	p Parser[T]
	f func(T) U
}

func (m mapped[T, U]) Parse(ctx *Context, w Words) Result[U] {
	res := m.p.Parse(ctx, w)
	if !res.OK {
		return Failure[U](res.Rest, res.Errors)
	}
	return Success(m.f(res.Value), res.Rest, res.Errors)
}

func (m mapped[T, U]) StartingKeywords() []string {
	return StartingKeywords(m.p)
}

// Many parses p repeatedly until it fails or the window is exhausted. A
// failed attempt ends the repetition without error and the returned window
// starts at that attempt. Many never fails.
func Many[T any](p Parser[T]) Parser[[]T] {
	return Func[[]T]{
		Name: "Many",
		Fn: func(ctx *Context, w Words) Result[[]T] {
			ctx.enter("Many")
			defer ctx.leave("Many")
			items, rest, errs := repeat(ctx, p, w, make([]T, 0))
			return Success(items, rest, errs)
		},
	}
}

// Many1 is Many that fails when no element could be parsed. The failure
// carries the errors of the first attempt.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return Func[[]T]{
		Name:   "Many1",
		Starts: startsOf(p),
		Fn: func(ctx *Context, w Words) Result[[]T] {
			ctx.enter("Many1")
			defer ctx.leave("Many1")
			first := p.Parse(ctx, w)
			if !first.OK {
				return Failure[[]T](w, first.Errors)
			}
			items := []T{first.Value}
			if first.Rest.Start() == w.Start() {
				return Success(items, first.Rest, first.Errors)
			}
			items, rest, errs := repeat(ctx, p, first.Rest, items)
			return Success(items, rest, append(first.Errors, errs...))
		},
	}
}

func repeat[T any](ctx *Context, p Parser[T], w Words, items []T) ([]T, Words, []Error) {
	var errs []Error
	for !w.IsEmpty() {
		res := p.Parse(ctx, w)
		if !res.OK {
			ctx.note("repeat", "stopped")
			break
		}
		errs = append(errs, res.Errors...)
		items = append(items, res.Value)
		if res.Rest.Start() == w.Start() {
			// p matched without consuming anything; looping again would not
			// terminate
			break
		}
		w = res.Rest
	}
	return items, w, errs
}

// Optional always succeeds. It yields nil, without consuming input or
// reporting errors, when p fails.
func Optional[T any](p Parser[T]) Parser[*T] {
	return Func[*T]{
		Name: "Optional",
		Fn: func(ctx *Context, w Words) Result[*T] {
			res := p.Parse(ctx, w)
			if !res.OK {
				return Success[*T](nil, w, nil)
			}
			v := res.Value
			return Success(&v, res.Rest, res.Errors)
		},
	}
}

// Lazy defers building a parser until it is first used, which allows
// recursive grammars. Concurrent first use is safe for parsing; the starting
// keywords of recursive grammars should be queried once before parsers are
// shared between goroutines.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	return &lazy[T]{build: build}
}

type lazy[T any] struct {
	build func() Parser[T]
	once  sync.Once
	p     Parser[T]

	mu       sync.Mutex
	kwState  int
	keywords []string
}

const (
	keywordsUnknown = iota
	keywordsComputing
	keywordsKnown
)

func (l *lazy[T]) get() Parser[T] {
	l.once.Do(func() {
		l.p = l.build()
	})
	return l.p
}

func (l *lazy[T]) Parse(ctx *Context, w Words) Result[T] {
	return l.get().Parse(ctx, w)
}

func (l *lazy[T]) StartingKeywords() []string {
	l.mu.Lock()
	switch l.kwState {
	case keywordsKnown:
		l.mu.Unlock()
		return l.keywords
	case keywordsComputing:
		// left recursion: the enclosing query decides
		l.mu.Unlock()
		return nil
	}
	l.kwState = keywordsComputing
	l.mu.Unlock()

	keywords := StartingKeywords(l.get())

	l.mu.Lock()
	l.keywords = keywords
	l.kwState = keywordsKnown
	l.mu.Unlock()
	return keywords
}
