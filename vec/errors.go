package vec

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is returned for positions outside the valid range.
	ErrOutOfRange = errors.New("vec: position out of range")
	// ErrInvalidCount is returned for element counts <= 0.
	ErrInvalidCount = errors.New("vec: invalid element count")
	// ErrShortBuffer is returned when a caller supplied buffer cannot hold
	// the requested elements.
	ErrShortBuffer = errors.New("vec: buffer too short")
	// ErrAlloc is the panic value used when an Allocator cannot provide a
	// buffer. Allocation failure is not recoverable.
	ErrAlloc = errors.New("vec: allocation failed")
)

func outOfRange(pos, n, length int) error {
	return errors.Wrapf(ErrOutOfRange, "[%d, %d) with length %d", pos, pos+n, length)
}
