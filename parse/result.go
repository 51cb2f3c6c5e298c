package parse

import (
	"fmt"
	"strings"

	"github.com/dhamidi/wordparse/token"
	"github.com/dhamidi/wordparse/window"
)

// Words is the window every parser consumes.
type Words = window.Window[token.Word]

// NewWords returns a window over all of words.
func NewWords(words []token.Word) Words {
	return window.New(words)
}

type ErrorKind int

const (
	// EndOfInput: a word was expected but the window was empty.
	EndOfInput ErrorKind = iota
	// UnexpectedShape: the word did not have the expected text or shape.
	UnexpectedShape
	// UnclosedScope: words were left over inside a bracket group.
	UnclosedScope
	// SeparatorMisuse: a separated piece was empty or had leftover words.
	SeparatorMisuse
	// UnexpectedStatementTail: a statement parsed but was followed by words
	// that do not start another statement.
	UnexpectedStatementTail
)

var errorKindNames = map[ErrorKind]string{
	EndOfInput:              "EndOfInput",
	UnexpectedShape:         "UnexpectedShape",
	UnclosedScope:           "UnclosedScope",
	SeparatorMisuse:         "SeparatorMisuse",
	UnexpectedStatementTail: "UnexpectedStatementTail",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error describes one parse failure. Got points at the offending word in the
// word tree and is nil at end of input. At end of input After is the last
// word before the point where input ran out, nil when there is none.
// Unlikely is only ever set by FlattenBranchedErrors.
type Error struct {
	Kind     ErrorKind
	Expected string
	Got      *token.Word
	After    *token.Word
	Unlikely bool
}

func (e Error) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("expected %s, got end of input", e.Expected)
	}
	return fmt.Sprintf("%s: expected %s, got %q", e.Got.Position(), e.Expected, e.Got.String())
}

// Position returns the line and start column of the offending word. At end
// of input it is the column just past After, or 0, 0 when nothing precedes
// the end.
func (e Error) Position() (line, column int) {
	switch {
	case e.Got != nil:
		return e.Got.Line, e.Got.ColumnFrom
	case e.After != nil:
		return e.After.Line, e.After.ColumnTo
	default:
		return 0, 0
	}
}

// endOfInput anchors the error past the last word of w, or past the word
// preceding w when w is empty.
func endOfInput(expected string, w Words) Error {
	after := w.Last()
	if after == nil {
		after = w.Preceding()
	}
	return Error{Kind: EndOfInput, Expected: expected, After: after}
}

func unexpected(expected string, got *token.Word) Error {
	return Error{Kind: UnexpectedShape, Expected: expected, Got: got}
}

// missing builds an EndOfInput or UnexpectedShape error depending on
// whether w has a first word.
func missing(expected string, w Words) Error {
	if got := w.First(); got != nil {
		return unexpected(expected, got)
	}
	return endOfInput(expected, w)
}

func quote(text string) string {
	return fmt.Sprintf("%q", text)
}

func quoteAll(texts []string) string {
	quoted := make([]string, len(texts))
	for i, t := range texts {
		quoted[i] = quote(t)
	}
	return strings.Join(quoted, " or ")
}

// Result is the outcome of a parse attempt. When OK is false Value is the
// zero value and Rest is the window a sibling alternative may resume from.
// Errors may be non-empty even when OK is true.
type Result[T any] struct {
	Value  T
	OK     bool
	Rest   Words
	Errors []Error
}

func Success[T any](value T, rest Words, errs []Error) Result[T] {
	return Result[T]{Value: value, OK: true, Rest: rest, Errors: errs}
}

func Failure[T any](rest Words, errs []Error) Result[T] {
	return Result[T]{Rest: rest, Errors: errs}
}

// Parser is implemented by every grammar element.
type Parser[T any] interface {
	Parse(ctx *Context, w Words) Result[T]
}

// KeywordStarter is implemented by parsers that only ever match input
// beginning with one of a fixed set of literal words. An empty result means
// no such guarantee.
type KeywordStarter interface {
	StartingKeywords() []string
}

// StartingKeywords returns the starting keywords advertised by p, if any.
func StartingKeywords(p any) []string {
	if k, ok := p.(KeywordStarter); ok {
		return k.StartingKeywords()
	}
	return nil
}

// Func adapts a function to Parser. Starts, when set, takes precedence over
// Keywords and is only called when the keywords are queried, so it may refer
// to parsers that are not built yet.
type Func[T any] struct {
	Name     string
	Keywords []string
	Starts   func() []string
	Fn       func(ctx *Context, w Words) Result[T]
}

func (f Func[T]) Parse(ctx *Context, w Words) Result[T] {
	return f.Fn(ctx, w)
}

func (f Func[T]) StartingKeywords() []string {
	if f.Starts != nil {
		return f.Starts()
	}
	return f.Keywords
}

func startsOf(p any) func() []string {
	return func() []string {
		return StartingKeywords(p)
	}
}

func (f Func[T]) String() string {
	return f.Name
}

// All runs p and reports words it left over as an error.
func All[T any](ctx *Context, p Parser[T], w Words) Result[T] {
	res := p.Parse(ctx, w)
	if res.OK && len(res.Errors) == 0 {
		if word := res.Rest.First(); word != nil {
			res.Errors = append(res.Errors, unexpected("end of input", word))
		}
	}
	return res
}
