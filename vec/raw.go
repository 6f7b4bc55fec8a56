package vec

import (
	"bytes"
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// Order selects the direction of a sort.
type Order int

const (
	Ascending  Order = 1
	Descending Order = -1
)

// Raw is a dynamic array of elements of a fixed byte stride. Elements are
// stored contiguously, in order, without padding, in buf[:Len()*Stride()].
// Raw is not safe for concurrent use.
type Raw struct {
	buf      []byte // len(buf) == capacity*stride, nil when capacity == 0
	stride   int
	length   int
	capacity int
	alloc    Allocator
}

// RawOption configures a Raw array at construction time.
type RawOption func(*Raw)

// WithAllocator makes the array obtain its buffer from a instead of the Go
// heap. The buffer is never returned to a: Clear only forgets it.
func WithAllocator(a Allocator) RawOption {
	return func(v *Raw) {
		if a != nil {
			v.alloc = a
		}
	}
}

// NewRaw returns an empty array of elements of stride bytes. Nothing is
// allocated until the first Reserve or insertion. NewRaw panics if stride
// is not positive.
func NewRaw(stride int, opts ...RawOption) *Raw {
	if stride <= 0 {
		panic("vec: stride must be positive")
	}
	v := &Raw{stride: stride, alloc: Heap}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewRawWithCapacity returns an empty array with room for at least n elements.
func NewRawWithCapacity(stride, n int, opts ...RawOption) *Raw {
	v := NewRaw(stride, opts...)
	v.Reserve(n)
	return v
}

// NewRawZeroed returns an array of n zero-filled elements.
func NewRawZeroed(stride, n int, opts ...RawOption) *Raw {
	v := NewRawWithCapacity(stride, n, opts...)
	if n > 0 {
		clear(v.buf[:n*stride])
		v.length = n
	}
	return v
}

// NewRawFrom returns an array holding copies of the first n elements of src.
func NewRawFrom(stride int, src []byte, n int, opts ...RawOption) (*Raw, error) {
	v := NewRaw(stride, opts...)
	if err := v.InsertAt(0, src, n); err != nil {
		return nil, err
	}
	return v, nil
}

// Stride returns the size of one element in bytes.
func (v *Raw) Stride() int { return v.stride }

// Len returns the number of elements.
func (v *Raw) Len() int { return v.length }

// Cap returns the number of elements the current buffer can hold.
func (v *Raw) Cap() int { return v.capacity }

// Reserve makes room for at least n elements.
func (v *Raw) Reserve(n int) {
	if n > v.capacity {
		v.setCapacity(grow(v.capacity, n))
	}
}

// ShrinkToFit reallocates the buffer to hold exactly Len() elements.
// An empty array drops its buffer.
func (v *Raw) ShrinkToFit() {
	if v.capacity > 0 && v.capacity != v.length {
		v.setCapacity(v.length)
	}
}

// InsertAt inserts the first n elements of elems at pos, shifting the
// elements from pos onwards. pos may equal Len() to append.
func (v *Raw) InsertAt(pos int, elems []byte, n int) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidCount, "insert %d elements", n)
	}
	if pos < 0 || pos > v.length {
		return outOfRange(pos, n, v.length)
	}
	if n > len(elems)/v.stride {
		return errors.Wrapf(ErrShortBuffer, "%d bytes for %d elements of %d bytes", len(elems), n, v.stride)
	}
	s := v.stride
	src := elems[:n*s]
	if overlaps(src, v.buf) {
		src = bytes.Clone(src)
	}

	v.Reserve(v.length + n)
	move(v.buf[(pos+n)*s:], v.buf[pos*s:v.length*s])
	copy(v.buf[pos*s:], src)
	v.length += n
	return nil
}

// Push appends one element.
func (v *Raw) Push(elem []byte) error {
	return v.InsertAt(v.length, elem, 1)
}

// RemoveAt removes n elements starting at pos. If out is not nil the
// removed elements are copied into it first, so that resources they
// reference can be released by the caller.
func (v *Raw) RemoveAt(pos, n int, out []byte) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidCount, "remove %d elements", n)
	}
	if pos < 0 || pos > v.length-n {
		return outOfRange(pos, n, v.length)
	}
	s := v.stride
	if out != nil {
		if n > len(out)/s {
			return errors.Wrapf(ErrShortBuffer, "%d bytes for %d elements of %d bytes", len(out), n, s)
		}
		copy(out, v.buf[pos*s:(pos+n)*s])
	}
	move(v.buf[pos*s:], v.buf[(pos+n)*s:v.length*s])
	v.length -= n
	return nil
}

// Pop removes the last element, copying it into out if out is not nil.
func (v *Raw) Pop(out []byte) error {
	if v.length == 0 {
		return errors.Wrap(ErrOutOfRange, "pop from empty array")
	}
	return v.RemoveAt(v.length-1, 1, out)
}

// Get copies the element at pos into out.
func (v *Raw) Get(pos int, out []byte) error {
	if pos < 0 || pos >= v.length {
		return outOfRange(pos, 1, v.length)
	}
	if len(out) < v.stride {
		return errors.Wrapf(ErrShortBuffer, "%d bytes for an element of %d bytes", len(out), v.stride)
	}
	copy(out, v.at(pos))
	return nil
}

// Set overwrites the element at pos with the first Stride() bytes of elem.
func (v *Raw) Set(pos int, elem []byte) error {
	if pos < 0 || pos >= v.length {
		return outOfRange(pos, 1, v.length)
	}
	if len(elem) < v.stride {
		return errors.Wrapf(ErrShortBuffer, "%d bytes for an element of %d bytes", len(elem), v.stride)
	}
	copy(v.at(pos), elem)
	return nil
}

// Swap exchanges the elements at i and j using scratch, which must hold
// one element. A nil scratch is allocated on demand.
func (v *Raw) Swap(i, j int, scratch []byte) error {
	if i < 0 || i >= v.length {
		return outOfRange(i, 1, v.length)
	}
	if j < 0 || j >= v.length {
		return outOfRange(j, 1, v.length)
	}
	if scratch == nil {
		scratch = make([]byte, v.stride)
	}
	if len(scratch) < v.stride {
		return errors.Wrapf(ErrShortBuffer, "%d bytes of scratch for an element of %d bytes", len(scratch), v.stride)
	}
	if i != j {
		v.swap(i, j, scratch)
	}
	return nil
}

// Sort orders the elements by their byte content. Elements that compare
// equal are never exchanged, so sorting an already sorted array is a no-op.
//
// TODO: O(n²) exchange sort; switch to an in-place heap sort over strides.
func (v *Raw) Sort(order Order) {
	if v.length < 2 {
		return
	}
	scratch := make([]byte, v.stride)
	for i := 0; i < v.length; i++ {
		for j := i + 1; j < v.length; j++ {
			if bytes.Compare(v.at(i), v.at(j))*int(order) > 0 {
				v.swap(i, j, scratch)
			}
		}
	}
}

// Data returns the bytes of all elements, or nil if nothing is allocated.
// The slice aliases the array and is invalidated by any call that changes
// the capacity.
func (v *Raw) Data() []byte {
	if v.capacity == 0 {
		return nil
	}
	return v.buf[:v.length*v.stride]
}

// At returns the bytes of the element at pos, or nil if pos is out of range.
// The slice aliases the array and is invalidated by any call that changes
// the capacity.
func (v *Raw) At(pos int) []byte {
	if pos < 0 || pos >= v.length {
		return nil
	}
	return v.at(pos)
}

// Clear drops the buffer and empties the array. Resources referenced by
// elements must be released by the caller beforehand.
func (v *Raw) Clear() {
	v.buf = nil
	v.length = 0
	v.capacity = 0
}

func (v *Raw) at(pos int) []byte {
	off := pos * v.stride
	return v.buf[off : off+v.stride : off+v.stride]
}

func (v *Raw) swap(i, j int, scratch []byte) {
	copy(scratch, v.at(i))
	copy(v.at(i), v.at(j))
	copy(v.at(j), scratch)
}

func (v *Raw) setCapacity(c int) {
	if c == 0 {
		v.buf = nil
		v.capacity = 0
		return
	}
	if c > math.MaxInt/v.stride {
		panic(errors.Wrapf(ErrAlloc, "%d elements of %d bytes overflow", c, v.stride))
	}
	size := c * v.stride

	var b []byte
	if v.buf == nil {
		b = v.alloc.AllocBytes(size)
	} else if b = v.alloc.Realloc(v.buf, size); b == nil {
		// The allocator forgot the buffer, e.g. an arena that was reset.
		if b = v.alloc.AllocBytes(size); b != nil {
			copy(b, v.buf[:v.length*v.stride])
		}
	}
	if len(b) < size {
		panic(errors.Wrapf(ErrAlloc, "%d bytes", size))
	}
	v.buf = b[:size]
	v.capacity = c
}

// move copies src to dst like memmove: the two ranges may overlap.
func move(dst, src []byte) {
	copy(dst, src)
}

// overlaps reports whether a and b share memory.
func overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}
