package vec

import (
	"cmp"
	"slices"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Vector is a dynamic array of T with the same growth policy and
// operations as Raw. The zero value is an empty, unallocated Vector ready
// to use. Vector is not safe for concurrent use.
type Vector[T any] struct {
	data []T // len(data) is the length, cap(data) the capacity
}

// New returns an empty, unallocated Vector.
func New[T any]() *Vector[T] {
	return &Vector[T]{}
}

// WithCapacity returns an empty Vector with room for at least n elements.
func WithCapacity[T any](n int) *Vector[T] {
	v := New[T]()
	v.Reserve(n)
	return v
}

// Zeroed returns a Vector of n zero values.
func Zeroed[T any](n int) *Vector[T] {
	v := WithCapacity[T](n)
	if n > 0 {
		v.data = v.data[:n]
	}
	return v
}

// From returns a Vector holding copies of elems.
func From[T any](elems ...T) *Vector[T] {
	v := New[T]()
	v.Push(elems...)
	return v
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return len(v.data) }

// Cap returns the number of elements the current buffer can hold.
func (v *Vector[T]) Cap() int { return cap(v.data) }

// Reserve makes room for at least n elements.
func (v *Vector[T]) Reserve(n int) {
	if n > cap(v.data) {
		v.setCapacity(grow(cap(v.data), n))
	}
}

// ShrinkToFit reallocates the buffer to hold exactly Len() elements.
// An empty Vector drops its buffer.
func (v *Vector[T]) ShrinkToFit() {
	if cap(v.data) > 0 && cap(v.data) != len(v.data) {
		v.setCapacity(len(v.data))
	}
}

// InsertAt inserts elems at pos, shifting the elements from pos onwards.
// pos may equal Len() to append.
func (v *Vector[T]) InsertAt(pos int, elems ...T) error {
	n := len(elems)
	if n == 0 {
		return errors.Wrap(ErrInvalidCount, "insert 0 elements")
	}
	l := len(v.data)
	if pos < 0 || pos > l {
		return outOfRange(pos, n, l)
	}
	if aliases(elems, v.data) {
		elems = slices.Clone(elems)
	}

	v.Reserve(l + n)
	v.data = v.data[:l+n]
	copy(v.data[pos+n:], v.data[pos:l])
	copy(v.data[pos:], elems)
	return nil
}

// Push appends elems.
func (v *Vector[T]) Push(elems ...T) {
	if len(elems) > 0 {
		_ = v.InsertAt(len(v.data), elems...)
	}
}

// RemoveAt removes n elements starting at pos. If out is not nil the
// removed elements are copied into it first.
func (v *Vector[T]) RemoveAt(pos, n int, out []T) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidCount, "remove %d elements", n)
	}
	l := len(v.data)
	if pos < 0 || pos > l-n {
		return outOfRange(pos, n, l)
	}
	if out != nil {
		if len(out) < n {
			return errors.Wrapf(ErrShortBuffer, "room for %d of %d elements", len(out), n)
		}
		copy(out, v.data[pos:pos+n])
	}
	copy(v.data[pos:], v.data[pos+n:])
	clear(v.data[l-n:])
	v.data = v.data[:l-n]
	return nil
}

// Pop removes and returns the last element.
func (v *Vector[T]) Pop() (T, bool) {
	var zero T
	l := len(v.data)
	if l == 0 {
		return zero, false
	}
	last := v.data[l-1]
	v.data[l-1] = zero
	v.data = v.data[:l-1]
	return last, true
}

// Get returns the element at pos.
func (v *Vector[T]) Get(pos int) (T, error) {
	if pos < 0 || pos >= len(v.data) {
		var zero T
		return zero, outOfRange(pos, 1, len(v.data))
	}
	return v.data[pos], nil
}

// Set overwrites the element at pos.
func (v *Vector[T]) Set(pos int, elem T) error {
	if pos < 0 || pos >= len(v.data) {
		return outOfRange(pos, 1, len(v.data))
	}
	v.data[pos] = elem
	return nil
}

// Swap exchanges the elements at i and j.
func (v *Vector[T]) Swap(i, j int) error {
	l := len(v.data)
	if i < 0 || i >= l {
		return outOfRange(i, 1, l)
	}
	if j < 0 || j >= l {
		return outOfRange(j, 1, l)
	}
	v.data[i], v.data[j] = v.data[j], v.data[i]
	return nil
}

// SortFunc sorts the elements with cmp, keeping equal elements in order.
func (v *Vector[T]) SortFunc(cmp func(a, b T) int) {
	slices.SortStableFunc(v.data, cmp)
}

// SortOrdered sorts a Vector of ordered values in the given direction.
func SortOrdered[T constraints.Ordered](v *Vector[T], order Order) {
	v.SortFunc(func(a, b T) int {
		return cmp.Compare(a, b) * int(order)
	})
}

// Data returns the elements, or nil if nothing is allocated. The slice
// aliases the Vector and is invalidated by any call that changes the
// capacity.
func (v *Vector[T]) Data() []T {
	if cap(v.data) == 0 {
		return nil
	}
	return v.data[:len(v.data):len(v.data)]
}

// At returns a pointer to the element at pos, or nil if pos is out of
// range. The pointer is invalidated by any call that changes the capacity.
func (v *Vector[T]) At(pos int) *T {
	if pos < 0 || pos >= len(v.data) {
		return nil
	}
	return &v.data[pos]
}

// Clear drops the buffer and empties the Vector.
func (v *Vector[T]) Clear() {
	v.data = nil
}

func (v *Vector[T]) setCapacity(c int) {
	if c == 0 {
		v.data = nil
		return
	}
	data := make([]T, len(v.data), c)
	copy(data, v.data)
	v.data = data
}

// aliases reports whether a and b share backing memory.
func aliases[T any](a, b []T) bool {
	if len(a) == 0 || cap(b) == 0 {
		return false
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(cap(b))*size && b0 < a0+uintptr(len(a))*size
}
