// Package history keeps the ordered list of committed drawing operations and
// the redo buffer.
package history

// History is a pair of stacks. An item lives in exactly one of them and only
// moves between them through Undo and Redo.
type History[T any] struct {
	committed []T
	redo      []T
}

// Push commits item and discards everything that could be redone.
func (h *History[T]) Push(item T) {
	h.committed = append(h.committed, item)
	clear(h.redo)
	h.redo = h.redo[:0]
}

// Undo moves the most recent committed item to the redo buffer.
func (h *History[T]) Undo() (T, bool) {
	item, ok := pop(&h.committed)
	if ok {
		h.redo = append(h.redo, item)
	}
	return item, ok
}

// Redo moves the most recently undone item back to the committed list.
func (h *History[T]) Redo() (T, bool) {
	item, ok := pop(&h.redo)
	if ok {
		h.committed = append(h.committed, item)
	}
	return item, ok
}

// Clear empties both stacks.
func (h *History[T]) Clear() {
	clear(h.committed)
	clear(h.redo)
	h.committed = h.committed[:0]
	h.redo = h.redo[:0]
}

func (h *History[T]) CanUndo() bool {
	return len(h.committed) > 0
}

func (h *History[T]) CanRedo() bool {
	return len(h.redo) > 0
}

// Len is the number of committed items.
func (h *History[T]) Len() int {
	return len(h.committed)
}

// RedoLen is the number of items that can be redone.
func (h *History[T]) RedoLen() int {
	return len(h.redo)
}

// Committed returns a copy of the committed items in draw order.
func (h *History[T]) Committed() []T {
	return append([]T(nil), h.committed...)
}

func pop[T any](s *[]T) (T, bool) {
	var zero T
	n := len(*s)
	if n == 0 {
		return zero, false
	}
	item := (*s)[n-1]
	(*s)[n-1] = zero
	*s = (*s)[:n-1]
	return item, true
}
