// Package vec implements dynamic arrays with an explicit, amortized growth
// policy.
//
// Two flavours share the same operations and growth rules:
//
//   - Vector[T] is a generic container backed by a []T.
//   - Raw stores elements of a stride fixed at creation in a single byte
//     buffer. It exists for callers that handle heterogeneous element types
//     behind one interface, and can draw its buffer from any Allocator,
//     including an arena.
//
// # Growth
//
// Reserving room for n elements on an unallocated array allocates
// max(n, 2) slots. Otherwise capacity doubles, unless n exceeds twice the
// capacity, in which case exactly n slots are allocated. ShrinkToFit trims
// capacity to the length.
//
// # Invalid arguments
//
// Out of range positions, non-positive counts and short buffers are
// reported as errors (ErrOutOfRange, ErrInvalidCount, ErrShortBuffer) and
// never modify the array.
//
// # Aliasing
//
// Any call that changes the capacity may move the backing buffer. Slices
// and pointers obtained from Data or At must be reacquired afterwards.
//
// Iteration uses cursors owned by the caller, so several iterations over
// the same or different arrays may be interleaved.
package vec
