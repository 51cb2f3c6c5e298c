package token

import (
	"strings"
	"unicode"
)

// Tokenize splits text into a word tree.
//
// Every character listed in pairs is a token of its own and opening
// characters start a nested Group that the matching close character ends.
// Malformed input never fails: a close character with no open group stays a
// plain word, a group closed by the wrong character is still closed, and
// groups left open at the end of the text are unwound into their open
// character followed by their contents. Grammar level parsers report these
// cases with better context than the tokenizer could.
func Tokenize(text string, pairs []BracketPair) []Word {
	t := newTokenizer(pairs)
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		t.scanLine(i+1, []rune(line))
	}
	return t.finish()
}

type frame struct {
	open   rune
	line   int
	column int
	words  []Word
}

type tokenizer struct {
	opens  map[rune]bool
	closes map[rune]bool
	stack  []*frame

	cur     []rune
	curLine int
	curCol  int
	escaped bool
}

func newTokenizer(pairs []BracketPair) *tokenizer {
	t := &tokenizer{
		opens:  make(map[rune]bool, len(pairs)),
		closes: make(map[rune]bool, len(pairs)),
		stack:  []*frame{{}},
	}
	for _, p := range pairs {
		t.opens[p.Open] = true
		t.closes[p.Close] = true
	}
	return t
}

func (t *tokenizer) scanLine(lineNo int, line []rune) {
	for col := 0; col < len(line); col++ {
		ch := line[col]

		if t.inString() {
			t.cur = append(t.cur, ch)
			switch {
			case t.escaped:
				t.escaped = false
			case ch == '\\':
				t.escaped = true
			case ch == '"':
				t.flush(col + 1)
			}
			continue
		}

		switch {
		case ch == '/' && col+1 < len(line) && line[col+1] == '/':
			t.flush(col)
			return
		case unicode.IsSpace(ch):
			t.flush(col)
		case t.opens[ch]:
			t.flush(col)
			t.stack = append(t.stack, &frame{open: ch, line: lineNo, column: col})
		case t.closes[ch]:
			t.flush(col)
			t.closeGroup(ch, lineNo, col)
		case ch == '"':
			t.flush(col)
			t.start(ch, lineNo, col)
		case len(t.cur) == 0:
			t.start(ch, lineNo, col)
		case t.joins(line, col):
			t.cur = append(t.cur, ch)
		default:
			t.flush(col)
			t.start(ch, lineNo, col)
		}
	}
	// strings do not span lines
	t.flush(len(line))
	t.escaped = false
}

func (t *tokenizer) inString() bool {
	return len(t.cur) > 0 && t.cur[0] == '"'
}

func (t *tokenizer) start(ch rune, line, col int) {
	t.cur = append(t.cur[:0], ch)
	t.curLine = line
	t.curCol = col
}

// joins reports whether line[col] continues the current token.
func (t *tokenizer) joins(line []rune, col int) bool {
	ch := line[col]
	if !isWordChar(t.cur[0]) {
		return !isWordChar(ch)
	}
	if isWordChar(ch) {
		return true
	}
	return ch == '.' && t.isBareNumber() && col+1 < len(line) && unicode.IsDigit(line[col+1])
}

func (t *tokenizer) isBareNumber() bool {
	if !unicode.IsDigit(t.cur[0]) {
		return false
	}
	for _, r := range t.cur {
		if r == '.' {
			return false
		}
	}
	return true
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (t *tokenizer) top() *frame {
	return t.stack[len(t.stack)-1]
}

func (t *tokenizer) emit(w Word) {
	f := t.top()
	f.words = append(f.words, w)
}

func (t *tokenizer) flush(endCol int) {
	if len(t.cur) == 0 {
		return
	}
	t.emit(Word{
		Line:       t.curLine,
		ColumnFrom: t.curCol,
		ColumnTo:   endCol,
		Literal:    string(t.cur),
	})
	t.cur = t.cur[:0]
}

func (t *tokenizer) closeGroup(ch rune, line, col int) {
	if len(t.stack) == 1 {
		t.emit(Word{Line: line, ColumnFrom: col, ColumnTo: col + 1, Literal: string(ch)})
		return
	}
	f := t.top()
	t.stack = t.stack[:len(t.stack)-1]
	to := f.column + 1
	if f.line == line {
		to = col + 1
	}
	t.emit(Word{
		Line:       f.line,
		ColumnFrom: f.column,
		ColumnTo:   to,
		Group: &Group{
			Open:        f.open,
			Close:       ch,
			Words:       f.words,
			CloseLine:   line,
			CloseColumn: col,
		},
	})
}

func (t *tokenizer) finish() []Word {
	for len(t.stack) > 1 {
		f := t.top()
		t.stack = t.stack[:len(t.stack)-1]
		t.emit(Word{Line: f.line, ColumnFrom: f.column, ColumnTo: f.column + 1, Literal: string(f.open)})
		parent := t.top()
		parent.words = append(parent.words, f.words...)
	}
	return t.stack[0].words
}
