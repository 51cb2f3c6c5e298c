// Package parse is a backtracking parser-combinator engine over token words.
//
// # Overview
//
// Parsers consume a Words window, a zero-copy view over the word tree built
// by the token package, and return a Result:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│    text     │────▶│  Tokenize   │────▶│   []Word    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Result    │◀────│  Parser[T]  │◀────│    Words    │
//	│ value+errs  │     │ combinators │     │  (window)   │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// A Result carries the parsed value (when OK), the window left to parse and
// every Error collected on the way. Errors are data, never panics: a
// repetition stops quietly at the first element it cannot parse, separator
// and statement lists keep parsing the remaining pieces after a broken one,
// and OneOf tries every alternative before flagging the errors of the
// branches that got least far as Unlikely.
//
// # Grammar construction
//
// Grammars are assembled from constructors:
//
//	type Let struct {
//	    Name  parse.Ident
//	    Value int64
//	}
//
//	var let = parse.Map(
//	    parse.Keyword("let", parse.Seq3(parse.ValueName(), parse.Text("="), parse.Int())),
//	    func(t parse.Tuple3[parse.Ident, string, int64]) Let {
//	        return Let{Name: t.A, Value: t.C}
//	    },
//	)
//
//	program := parse.Statements(let)
//	words := token.Tokenize("let a = 1 let b = 2", token.DefaultBrackets)
//	res := program.Parse(nil, parse.NewWords(words))
//
// Any type implementing Parser can be plugged in; implementing
// KeywordStarter as well lets Statements and OneOf use its leading keywords.
//
// # Tracing
//
// A Context carries an optional Tracer that receives one debug line per
// parser entered, matched or failed. A nil *Context is valid everywhere and
// traces nothing.
//
// # Limits
//
// Recursion depth equals grammar nesting depth and is bounded by the
// goroutine stack only. Parsers built here are immutable after their first
// use and may be shared between goroutines.
package parse
