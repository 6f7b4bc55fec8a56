package arena

import "github.com/go-kit/log"

// Option configures an Arena at construction time.
type Option func(*Arena)

// WithLogger sets the logger used for debug records on Release, Reset and
// reallocation misses. The default logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(a *Arena) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMaxAllocSize limits the size of a single allocation. Larger requests
// are rejected without touching the arena. Values <= 0 keep the default,
// which only guards against size overflow.
func WithMaxAllocSize(n int) Option {
	return func(a *Arena) {
		if n > 0 {
			a.maxAlloc = n
		}
	}
}
