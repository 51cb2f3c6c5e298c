package window

import (
	"testing"
)

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func bounds[T any](w Window[T]) [2]int {
	return [2]int{w.Start(), w.End()}
}

func TestSlice(t *testing.T) {
	items := ints(5)
	tests := []struct {
		start, end int
		ok         bool
	}{
		{0, 5, true},
		{2, 2, true},
		{1, 4, true},
		{3, 2, false},
		{0, 6, false},
		{-1, 2, false},
	}
	for _, tt := range tests {
		w, ok := Slice(items, tt.start, tt.end)
		if ok != tt.ok {
			t.Errorf("Slice(%d, %d): got ok=%v, want %v", tt.start, tt.end, ok, tt.ok)
			continue
		}
		if ok && w.Size() != tt.end-tt.start {
			t.Errorf("Slice(%d, %d): got size %d", tt.start, tt.end, w.Size())
		}
	}
}

func TestAccessors(t *testing.T) {
	w, _ := Slice(ints(10), 2, 6)
	if *w.First() != 2 || *w.Last() != 5 {
		t.Errorf("got first=%d last=%d, want 2 and 5", *w.First(), *w.Last())
	}
	if *w.Get(1) != 3 {
		t.Errorf("got Get(1)=%d, want 3", *w.Get(1))
	}
	if w.Get(4) != nil || w.Get(-1) != nil {
		t.Errorf("out of range Get should return nil")
	}

	empty := New([]int{})
	if empty.First() != nil || empty.Last() != nil || !empty.IsEmpty() {
		t.Errorf("empty window should have no first or last element")
	}
}

func TestPreceding(t *testing.T) {
	items := ints(5)
	if p := New(items).Preceding(); p != nil {
		t.Errorf("got %d before a full window", *p)
	}
	w, _ := Slice(items, 3, 3)
	if p := w.Preceding(); p == nil || *p != 2 {
		t.Errorf("got %v, want 2", p)
	}
	if bounds(w) != [2]int{3, 3} {
		t.Errorf("window widened to %v", bounds(w))
	}
}

func TestZeroCopy(t *testing.T) {
	items := ints(4)
	w := New(items).Skip(1)
	if w.First() != &items[1] {
		t.Errorf("First should point into the backing slice")
	}
	got := w.Items()
	if &got[0] != &items[1] {
		t.Errorf("Items should alias the backing slice")
	}
}

func TestPop(t *testing.T) {
	w := New(ints(3))
	if v := w.PopFirst(); v == nil || *v != 0 {
		t.Fatalf("PopFirst: got %v", v)
	}
	if v := w.PopLast(); v == nil || *v != 2 {
		t.Fatalf("PopLast: got %v", v)
	}
	if bounds(w) != [2]int{1, 2} {
		t.Errorf("got bounds %v, want [1 2]", bounds(w))
	}
	w.PopFirst()
	if w.PopFirst() != nil || w.PopLast() != nil {
		t.Errorf("popping an empty window should return nil")
	}
	if bounds(w) != [2]int{2, 2} {
		t.Errorf("got bounds %v, want [2 2]", bounds(w))
	}
}

func TestSkipTake(t *testing.T) {
	w, _ := Slice(ints(10), 2, 8)
	tests := []struct {
		name string
		got  Window[int]
		want [2]int
	}{
		{"skip 0", w.Skip(0), [2]int{2, 8}},
		{"skip 2", w.Skip(2), [2]int{4, 8}},
		{"skip past end", w.Skip(20), [2]int{8, 8}},
		{"skip negative", w.Skip(-3), [2]int{2, 8}},
		{"take 3", w.Take(3), [2]int{2, 5}},
		{"take past end", w.Take(20), [2]int{2, 8}},
		{"take 0", w.Take(0), [2]int{2, 2}},
		{"empty", w.Empty(), [2]int{8, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if bounds(tt.got) != tt.want {
				t.Errorf("got %v, want %v", bounds(tt.got), tt.want)
			}
		})
	}
}

func TestShrink(t *testing.T) {
	w, _ := Slice(ints(10), 2, 8)

	s := w
	s.ShrinkStartTo(5)
	if bounds(s) != [2]int{5, 8} {
		t.Errorf("ShrinkStartTo(5): got %v", bounds(s))
	}
	s.ShrinkStartTo(3)
	if bounds(s) != [2]int{5, 8} {
		t.Errorf("ShrinkStartTo must not widen: got %v", bounds(s))
	}
	s.ShrinkStartTo(9)
	if bounds(s) != [2]int{5, 8} {
		t.Errorf("ShrinkStartTo past end must be ignored: got %v", bounds(s))
	}

	e := w
	e.ShrinkEndTo(4)
	if bounds(e) != [2]int{2, 4} {
		t.Errorf("ShrinkEndTo(4): got %v", bounds(e))
	}
	e.ShrinkEndTo(6)
	if bounds(e) != [2]int{2, 4} {
		t.Errorf("ShrinkEndTo must not widen: got %v", bounds(e))
	}
	e.ShrinkEndTo(1)
	if bounds(e) != [2]int{2, 4} {
		t.Errorf("ShrinkEndTo before start must be ignored: got %v", bounds(e))
	}
}

func TestMonotonicShrink(t *testing.T) {
	orig, _ := Slice(ints(20), 3, 17)
	w := orig
	ops := []func(){
		func() { w = w.Skip(2) },
		func() { w.ShrinkEndTo(w.End() - 1) },
		func() { w = w.Take(9) },
		func() { w.PopLast() },
		func() { w.ShrinkStartTo(0) },
		func() { w.ShrinkEndTo(19) },
		func() { w.PopFirst() },
		func() { w = w.Skip(100) },
		func() { w.PopFirst() },
	}
	prev := w.Size()
	for i, op := range ops {
		op()
		if w.Start() < orig.Start() || w.End() > orig.End() || w.Start() > w.End() {
			t.Fatalf("op %d: bounds %v escaped %v", i, bounds(w), bounds(orig))
		}
		if w.Size() > prev {
			t.Fatalf("op %d: size grew from %d to %d", i, prev, w.Size())
		}
		prev = w.Size()
	}
}

func TestFind(t *testing.T) {
	w := New(ints(10)).Skip(3)
	i, ok := w.Find(func(v *int) bool { return *v == 5 })
	if !ok || i != 2 {
		t.Errorf("got %d %v, want 2 true", i, ok)
	}
	if _, ok := w.Find(func(v *int) bool { return *v == 1 }); ok {
		t.Errorf("elements before the window must not be found")
	}
}

func TestSnip(t *testing.T) {
	w := New(ints(5))
	a, b, ok := w.Snip(2)
	if !ok || bounds(a) != [2]int{0, 2} || bounds(b) != [2]int{2, 5} {
		t.Errorf("got %v %v %v", bounds(a), bounds(b), ok)
	}
	if _, _, ok := w.Snip(6); ok {
		t.Errorf("snipping past the end should fail")
	}
}

func isZero(v *int) bool { return *v%10 == 0 }

func TestSplitIncludingStart(t *testing.T) {
	items := []int{0, 1, 2, 10, 3, 20, 4}
	parts := New(items).SplitIncludingStart(isZero)
	want := [][2]int{{0, 3}, {3, 5}, {5, 7}}
	if len(parts) != len(want) {
		t.Fatalf("got %d parts, want %d", len(parts), len(want))
	}
	for i := range want {
		if bounds(parts[i]) != want[i] {
			t.Errorf("part %d: got %v, want %v", i, bounds(parts[i]), want[i])
		}
	}

	if got := New([]int{}).SplitIncludingStart(isZero); len(got) != 0 {
		t.Errorf("empty window should yield no parts, got %d", len(got))
	}
	if got := New([]int{10}).SplitIncludingStart(isZero); len(got) != 1 {
		t.Errorf("single element window should yield one part, got %d", len(got))
	}
}

func TestSplit(t *testing.T) {
	items := []int{10, 1, 20, 2, 30, 3, 40}
	parts := New(items).Split(isZero)
	want := [][2]int{{0, 2}, {3, 4}, {5, 6}, {7, 7}}
	if len(parts) != len(want) {
		t.Fatalf("got %d parts, want %d", len(parts), len(want))
	}
	for i := range want {
		if bounds(parts[i]) != want[i] {
			t.Errorf("part %d: got %v, want %v", i, bounds(parts[i]), want[i])
		}
	}
}

func TestSplitOnce(t *testing.T) {
	items := []int{1, 2, 10, 3, 20, 4}
	a, b, ok := New(items).SplitOnce(isZero)
	if !ok || bounds(a) != [2]int{0, 2} || bounds(b) != [2]int{3, 6} {
		t.Errorf("got %v %v %v", bounds(a), bounds(b), ok)
	}
	if _, _, ok := New([]int{1, 2}).SplitOnce(isZero); ok {
		t.Errorf("SplitOnce without a match should fail")
	}
}
