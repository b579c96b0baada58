package history

import (
	"slices"
	"testing"
)

func TestUndoRedoAreInverse(t *testing.T) {
	var h History[string]
	for _, s := range []string{"a", "b", "c"} {
		h.Push(s)
	}
	for i := 0; i < 3; i++ {
		if _, ok := h.Undo(); !ok {
			t.Fatalf("undo %d failed", i)
		}
	}
	if h.CanUndo() || h.Len() != 0 {
		t.Fatalf("committed not empty after undoing everything")
	}
	for i := 0; i < 3; i++ {
		if _, ok := h.Redo(); !ok {
			t.Fatalf("redo %d failed", i)
		}
	}
	if got := h.Committed(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("committed = %v", got)
	}
	if h.CanRedo() {
		t.Fatalf("redo buffer should be empty")
	}
}

func TestPushDiscardsRedo(t *testing.T) {
	var h History[string]
	h.Push("A")
	h.Push("B")
	h.Undo()
	h.Push("C")
	if _, ok := h.Redo(); ok {
		t.Fatalf("redo after a new commit must be a no-op")
	}
	if got := h.Committed(); !slices.Equal(got, []string{"A", "C"}) {
		t.Fatalf("committed = %v", got)
	}
}

func TestEmptyOperationsAreNoOps(t *testing.T) {
	var h History[int]
	if _, ok := h.Undo(); ok {
		t.Fatalf("undo on empty history reported success")
	}
	if _, ok := h.Redo(); ok {
		t.Fatalf("redo on empty history reported success")
	}
	if h.Len() != 0 || len(h.Committed()) != 0 {
		t.Fatalf("empty history reports items")
	}
}

func TestPredicatesFollowMembership(t *testing.T) {
	var h History[int]
	steps := []struct {
		name     string
		op       func()
		undo     bool
		redo     bool
		len, rln int
	}{
		{"push", func() { h.Push(1) }, true, false, 1, 0},
		{"push", func() { h.Push(2) }, true, false, 2, 0},
		{"undo", func() { h.Undo() }, true, true, 1, 1},
		{"undo", func() { h.Undo() }, false, true, 0, 2},
		{"redo", func() { h.Redo() }, true, true, 1, 1},
		{"clear", func() { h.Clear() }, false, false, 0, 0},
	}
	for i, s := range steps {
		s.op()
		if h.CanUndo() != s.undo || h.CanRedo() != s.redo || h.Len() != s.len || h.RedoLen() != s.rln {
			t.Fatalf("step %d (%s): undo=%v redo=%v len=%d redoLen=%d", i, s.name, h.CanUndo(), h.CanRedo(), h.Len(), h.RedoLen())
		}
	}
}

func TestItemNeverInBothStacks(t *testing.T) {
	var h History[int]
	for i := 0; i < 5; i++ {
		h.Push(i)
	}
	h.Undo()
	h.Undo()
	h.Redo()
	seen := map[int]int{}
	for _, v := range h.committed {
		seen[v]++
	}
	for _, v := range h.redo {
		seen[v]++
	}
	for v, n := range seen {
		if n != 1 {
			t.Fatalf("item %d appears %d times", v, n)
		}
	}
	if len(seen) != 5 {
		t.Fatalf("lost items: %v", seen)
	}
}

func TestCommittedIsACopy(t *testing.T) {
	var h History[int]
	h.Push(1)
	c := h.Committed()
	c[0] = 42
	if got := h.Committed(); got[0] != 1 {
		t.Fatalf("Committed exposed internal storage")
	}
}
