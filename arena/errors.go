package arena

import "github.com/pkg/errors"

var (
	// ErrInvalidSize is returned for allocation sizes <= 0.
	ErrInvalidSize = errors.New("arena: invalid allocation size")
	// ErrTooLarge is returned for allocation sizes above the arena limit.
	ErrTooLarge = errors.New("arena: allocation too large")
	// ErrStaleHandle is returned for handles that do not identify a live
	// allocation of the arena.
	ErrStaleHandle = errors.New("arena: stale handle")
)

func (a *Arena) checkSize(n int) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidSize, "size %d", n)
	}
	if n > a.maxAlloc {
		return errors.Wrapf(ErrTooLarge, "size %d exceeds limit %d", n, a.maxAlloc)
	}
	return nil
}
