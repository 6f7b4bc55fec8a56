package vec

import "iter"

// Iterator walks the elements of a Vector in order.
type Iterator[T any] interface {
	// Next advances the iterator and returns true if another value was found.
	Next() bool

	// At returns the value at the current iterator position.
	At() T

	// Err returns the last error of the iterator.
	Err() error

	Close() error
}

type vectorIterator[T any] struct {
	v   *Vector[T]
	pos int
	cur T
}

// Iterator returns a new iterator positioned before the first element.
// Every call returns an independent iterator.
func (v *Vector[T]) Iterator() Iterator[T] {
	return &vectorIterator[T]{v: v}
}

func (i *vectorIterator[T]) Next() bool {
	if i.pos >= len(i.v.data) {
		return false
	}
	i.cur = i.v.data[i.pos]
	i.pos++
	return true
}

func (i *vectorIterator[T]) At() T {
	return i.cur
}

func (*vectorIterator[T]) Err() error {
	return nil
}

func (*vectorIterator[T]) Close() error {
	return nil
}

// All returns an iterator over positions and values, for use with range.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < len(v.data); i++ {
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

// RawCursor is a forward cursor over a Raw array, owned by the caller.
type RawCursor struct {
	v   *Raw
	pos int
}

// Cursor returns a new cursor positioned before the first element.
func (v *Raw) Cursor() *RawCursor {
	return &RawCursor{v: v}
}

// Next copies the next element into out and advances. It returns false
// once every element has been visited, or if out cannot hold an element.
func (c *RawCursor) Next(out []byte) bool {
	if err := c.v.Get(c.pos, out); err != nil {
		return false
	}
	c.pos++
	return true
}

// Reset moves the cursor back before the first element.
func (c *RawCursor) Reset() {
	c.pos = 0
}
