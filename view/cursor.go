package view

import "unsafe"

// Cursor is a position within a View. Moving a cursor by one element moves the
// underlying address by the view's stride. A cursor may sit anywhere in
// [-1, Len]; only positions in [0, Len) can be dereferenced.
type Cursor[T any] struct {
	view View[T]
	pos  int
}

// Begin returns a cursor at element 0.
func (v View[T]) Begin() Cursor[T] { return Cursor[T]{view: v} }

// End returns a cursor one past the last element.
func (v View[T]) End() Cursor[T] { return Cursor[T]{view: v, pos: v.length} }

// CursorAt returns a cursor at element i (negative i counts from the end).
// It panics with an *IndexError when i is out of range.
func (v View[T]) CursorAt(i int) Cursor[T] {
	j, err := v.index(i)
	if err != nil {
		panic(err)
	}
	return Cursor[T]{view: v, pos: j}
}

// View returns the view the cursor walks.
func (c Cursor[T]) View() View[T] { return c.view }

// Pos returns the element index.
func (c Cursor[T]) Pos() int { return c.pos }

// Valid reports whether the cursor can be dereferenced.
func (c Cursor[T]) Valid() bool { return c.pos >= 0 && c.pos < c.view.length }

// Next moves to the following element.
func (c *Cursor[T]) Next() { c.pos++ }

// Prev moves to the preceding element.
func (c *Cursor[T]) Prev() { c.pos-- }

// Advance moves n elements (n may be negative).
func (c *Cursor[T]) Advance(n int) { c.pos += n }

// Addr returns the address of the current element.
// It panics with an *IndexError when the cursor is not Valid.
func (c Cursor[T]) Addr() unsafe.Pointer {
	if !c.Valid() {
		panic(&IndexError{Index: c.pos, Length: c.view.length})
	}
	return c.view.addr(c.pos)
}

// Get returns a pointer to the current element.
// It panics with an *IndexError when the cursor is not Valid.
func (c Cursor[T]) Get() *T { return (*T)(c.Addr()) }

func (c Cursor[T]) same(o Cursor[T]) {
	if c.view != o.view {
		panic(ErrForeignCursor)
	}
}

// Equal reports whether both cursors are at the same position.
// It panics with ErrForeignCursor when the cursors walk different views.
func (c Cursor[T]) Equal(o Cursor[T]) bool {
	c.same(o)
	return c.pos == o.pos
}

// Less reports whether c is before o. It panics like Equal.
func (c Cursor[T]) Less(o Cursor[T]) bool {
	c.same(o)
	return c.pos < o.pos
}

// Distance returns the number of elements from c to o. It panics like Equal.
func (c Cursor[T]) Distance(o Cursor[T]) int {
	c.same(o)
	return o.pos - c.pos
}
