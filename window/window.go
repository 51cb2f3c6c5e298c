// Package window provides Window, a borrowed half-open view over a slice.
//
// Windows never copy or mutate the slice they view. Every derived window
// aliases the same backing slice and only ever narrows the [start, end)
// range, so cloning a window is a value copy and a window can never reach
// outside the range it was derived from.
package window

import (
	"fmt"
	"strings"
)

// Window is a view of items[start:end].
type Window[T any] struct {
	items []T
	start int
	end   int
}

// New returns a window covering all of items.
func New[T any](items []T) Window[T] {
	return Window[T]{items: items, start: 0, end: len(items)}
}

// Slice returns a window over items[start:end], or false when the bounds are
// not valid.
func Slice[T any](items []T, start, end int) (Window[T], bool) {
	if start < 0 || start > end || end > len(items) {
		return Window[T]{}, false
	}
	return Window[T]{items: items, start: start, end: end}, true
}

func (w Window[T]) IsEmpty() bool {
	return w.start >= w.end
}

func (w Window[T]) Size() int {
	return w.end - w.start
}

// Start is the inclusive start index into the backing slice.
func (w Window[T]) Start() int {
	return w.start
}

// End is the exclusive end index into the backing slice.
func (w Window[T]) End() int {
	return w.end
}

// Items returns the viewed elements. The result aliases the backing slice
// and must not be modified.
func (w Window[T]) Items() []T {
	return w.items[w.start:w.end:w.end]
}

// First returns the first element, or nil when the window is empty.
func (w Window[T]) First() *T {
	if w.IsEmpty() {
		return nil
	}
	return &w.items[w.start]
}

// Last returns the last element, or nil when the window is empty.
func (w Window[T]) Last() *T {
	if w.IsEmpty() {
		return nil
	}
	return &w.items[w.end-1]
}

// Preceding returns the element of the backing slice just before the window,
// or nil when the window starts at the beginning of the slice. It is the only
// read outside [start, end) and never widens the window.
func (w Window[T]) Preceding() *T {
	if w.start == 0 {
		return nil
	}
	return &w.items[w.start-1]
}

// Get returns the element at index i relative to the start of the window, or
// nil when i is out of range.
func (w Window[T]) Get(i int) *T {
	if i < 0 || i >= w.Size() {
		return nil
	}
	return &w.items[w.start+i]
}

// PopFirst removes the first element from the window and returns it.
func (w *Window[T]) PopFirst() *T {
	if w.IsEmpty() {
		return nil
	}
	item := &w.items[w.start]
	w.start++
	return item
}

// PopLast removes the last element from the window and returns it.
func (w *Window[T]) PopLast() *T {
	if w.IsEmpty() {
		return nil
	}
	w.end--
	return &w.items[w.end]
}

// Skip drops the first n elements. Skipping more than Size yields an empty
// window positioned at the end.
func (w Window[T]) Skip(n int) Window[T] {
	if n < 0 {
		n = 0
	}
	w.start = min(w.start+n, w.end)
	return w
}

// Take keeps the first n elements. Taking more than Size keeps everything.
func (w Window[T]) Take(n int) Window[T] {
	if n < 0 {
		n = 0
	}
	w.end = min(w.start+n, w.end)
	return w
}

// ShrinkStartTo moves the start to the absolute index i when i lies within
// the window. It never widens the window.
func (w *Window[T]) ShrinkStartTo(i int) {
	if i > w.start && i <= w.end {
		w.start = i
	}
}

// ShrinkEndTo moves the end to the absolute index i when i lies within the
// window. It never widens the window.
func (w *Window[T]) ShrinkEndTo(i int) {
	if i < w.end && i >= w.start {
		w.end = i
	}
}

// Find returns the index, relative to the window start, of the first element
// matching pred.
func (w Window[T]) Find(pred func(*T) bool) (int, bool) {
	for i := w.start; i < w.end; i++ {
		if pred(&w.items[i]) {
			return i - w.start, true
		}
	}
	return 0, false
}

// Empty collapses the window to zero size at its end.
func (w Window[T]) Empty() Window[T] {
	w.start = w.end
	return w
}

// Snip cuts the window in two at the relative index at. The second window
// starts with the element at index at.
func (w Window[T]) Snip(at int) (Window[T], Window[T], bool) {
	if at < 0 || at > w.Size() {
		return w, w, false
	}
	mid := w.start + at
	return Window[T]{items: w.items, start: w.start, end: mid},
		Window[T]{items: w.items, start: mid, end: w.end},
		true
}

// Split cuts the window at every element matching pred and drops the
// matching elements. The first element of the window always belongs to the
// first piece, even when it matches.
func (w Window[T]) Split(pred func(*T) bool) []Window[T] {
	parts := w.SplitIncludingStart(pred)
	for i := 1; i < len(parts); i++ {
		parts[i] = parts[i].Skip(1)
	}
	return parts
}

// SplitIncludingStart cuts the window before every element matching pred;
// each matching element starts the following piece. The first element never
// starts a new piece. An empty window yields no pieces.
func (w Window[T]) SplitIncludingStart(pred func(*T) bool) []Window[T] {
	if w.IsEmpty() {
		return nil
	}
	if w.Size() == 1 {
		return []Window[T]{w}
	}
	var parts []Window[T]
	from := w.start
	for i := w.start + 1; i < w.end; i++ {
		if pred(&w.items[i]) {
			parts = append(parts, Window[T]{items: w.items, start: from, end: i})
			from = i
		}
	}
	return append(parts, Window[T]{items: w.items, start: from, end: w.end})
}

// SplitOnce cuts the window around the first element matching pred, dropping
// that element.
func (w Window[T]) SplitOnce(pred func(*T) bool) (Window[T], Window[T], bool) {
	for i := w.start; i < w.end; i++ {
		if pred(&w.items[i]) {
			return Window[T]{items: w.items, start: w.start, end: i},
				Window[T]{items: w.items, start: i + 1, end: w.end},
				true
		}
	}
	return w, w, false
}

func (w Window[T]) String() string {
	parts := make([]string, 0, w.Size())
	for _, item := range w.Items() {
		parts = append(parts, fmt.Sprint(item))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
