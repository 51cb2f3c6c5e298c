package parse

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dhamidi/wordparse/token"
)

// Ident is a name word together with its source span.
type Ident struct {
	Text       string
	Line       int
	ColumnFrom int
	ColumnTo   int
}

func identOf(w *token.Word) Ident {
	return Ident{Text: w.Literal, Line: w.Line, ColumnFrom: w.ColumnFrom, ColumnTo: w.ColumnTo}
}

// leaf matches exactly one word. On mismatch the window is returned
// untouched together with a single error.
func leaf[T any](expected string, keywords []string, match func(w *token.Word) (T, bool)) Parser[T] {
	return Func[T]{
		Name:     expected,
		Keywords: keywords,
		Fn: func(ctx *Context, w Words) Result[T] {
			word := w.First()
			if word == nil {
				ctx.failed(expected, nil)
				return Failure[T](w, []Error{endOfInput(expected, w)})
			}
			if v, ok := match(word); ok {
				ctx.parsed(expected, word)
				return Success(v, w.Skip(1), nil)
			}
			ctx.failed(expected, word)
			return Failure[T](w, []Error{unexpected(expected, word)})
		},
	}
}

// Text matches a word whose literal text is exactly text.
func Text(text string) Parser[string] {
	return leaf(quote(text), []string{text}, func(w *token.Word) (string, bool) {
		return text, w.Is(text)
	})
}

// String matches a double quoted string literal and yields its unescaped
// body.
func String() Parser[string] {
	return leaf("string", nil, func(w *token.Word) (string, bool) {
		text, ok := w.Text()
		if !ok {
			return "", false
		}
		return unquote(text)
	})
}

func unquote(text string) (string, bool) {
	if len(text) < 2 || text[0] != '"' {
		return "", false
	}
	var sb strings.Builder
	body := text[1:]
	escaped := false
	for i, r := range body {
		switch {
		case escaped:
			escaped = false
			switch r {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteRune(r)
			}
		case r == '\\':
			escaped = true
		case r == '"':
			// the closing quote must be the last character
			return sb.String(), i == len(body)-1
		default:
			sb.WriteRune(r)
		}
	}
	return "", false
}

// Int matches a base 10 signed 64-bit integer.
func Int() Parser[int64] {
	return leaf("integer", nil, func(w *token.Word) (int64, bool) {
		text, ok := w.Text()
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseInt(text, 10, 64)
		return v, err == nil
	})
}

// Float matches a 64-bit floating point number. Integers are accepted; words
// that do not start with a digit or a sign (such as "inf") are not.
func Float() Parser[float64] {
	return leaf("float", nil, func(w *token.Word) (float64, bool) {
		text, ok := w.Text()
		if !ok || text == "" {
			return 0, false
		}
		if c := text[0]; !(c >= '0' && c <= '9') && c != '-' && c != '+' && c != '.' {
			return 0, false
		}
		v, err := strconv.ParseFloat(text, 64)
		return v, err == nil
	})
}

// Bool matches true or false.
func Bool() Parser[bool] {
	return leaf("boolean", nil, func(w *token.Word) (bool, bool) {
		switch {
		case w.Is("true"):
			return true, true
		case w.Is("false"):
			return false, true
		}
		return false, false
	})
}

// TypeName matches an identifier starting with an upper case letter and
// made of letters and digits only, such as HttpServer.
func TypeName() Parser[Ident] {
	return leaf("type name", nil, func(w *token.Word) (Ident, bool) {
		text, ok := w.Text()
		if !ok || text == "" {
			return Ident{}, false
		}
		for i, r := range text {
			if i == 0 && !unicode.IsUpper(r) {
				return Ident{}, false
			}
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return Ident{}, false
			}
		}
		return identOf(w), true
	})
}

// ValueName matches an identifier starting with a lower case letter and made
// of lower case letters, digits and underscores, such as max_len2.
func ValueName() Parser[Ident] {
	return leaf("value name", nil, func(w *token.Word) (Ident, bool) {
		text, ok := w.Text()
		if !ok || text == "" {
			return Ident{}, false
		}
		for i, r := range text {
			if i == 0 && !unicode.IsLower(r) {
				return Ident{}, false
			}
			if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '_' {
				return Ident{}, false
			}
		}
		return identOf(w), true
	})
}

// AnyWord matches any single word, bracket groups included.
func AnyWord() Parser[token.Word] {
	return leaf("word", nil, func(w *token.Word) (token.Word, bool) {
		return *w, true
	})
}

// Nothing always succeeds without consuming input.
func Nothing() Parser[struct{}] {
	return Func[struct{}]{
		Name: "nothing",
		Fn: func(ctx *Context, w Words) Result[struct{}] {
			return Success(struct{}{}, w, nil)
		},
	}
}
