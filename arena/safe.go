package arena

import (
	"runtime"
	"sync"
)

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
// Payloads returned by a SafeArena are not themselves synchronized.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewSafeArena(chunkSize int, opts ...Option) *SafeArena {
	return &SafeArena{a: NewArena(chunkSize, opts...)}
}

// AllocBytes thread-safely allocates n bytes and returns a slice pointing to them.
// Returns nil if n <= 0.
func (s *SafeArena) AllocBytes(n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// Allocate thread-safely allocates n bytes and returns their handle.
func (s *SafeArena) Allocate(n int) (Handle, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocate(n)
}

// Realloc thread-safely resizes the allocation whose payload starts at p.
func (s *SafeArena) Realloc(p []byte, n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Realloc(p, n)
}

// Resize thread-safely resizes the allocation identified by h.
func (s *SafeArena) Resize(h Handle, n int) (Handle, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Resize(h, n)
}

// Bytes thread-safely returns the payload identified by h.
func (s *SafeArena) Bytes(h Handle) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Bytes(h)
}

// Lookup thread-safely returns the handle of the payload starting at p.
func (s *SafeArena) Lookup(p []byte) (Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Lookup(p)
}

// Len thread-safely returns the number of live allocations.
func (s *SafeArena) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Len()
}

// EnsureCapacity thread-safely ensures the current chunk has at least n free bytes.
func (s *SafeArena) EnsureCapacity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.EnsureCapacity(n)
}

// Reset thread-safely forgets every allocation, keeping chunks for reuse.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely drops every allocation and chunk.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// Generic allocation functions for SafeArena

// SafeAlloc thread-safely returns a pointer to a T stored inside the arena with zeroed memory.
func SafeAlloc[T any](s *SafeArena) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alloc[T](s.a)
}

// SafeAllocZeroed is identical to SafeAlloc - provided for API consistency.
func SafeAllocZeroed[T any](s *SafeArena) *T {
	return SafeAlloc[T](s)
}

// SafeAllocUninitialized thread-safely returns a *T without zeroing memory.
func SafeAllocUninitialized[T any](s *SafeArena) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocUninitialized[T](s.a)
}

// SafeAllocSlice thread-safely allocates a slice of n elements of type T.
func SafeAllocSlice[T any](s *SafeArena, n int) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSlice[T](s.a, n)
}

// SafeAllocSliceZeroed thread-safely allocates a slice of n elements with zeroed memory.
func SafeAllocSliceZeroed[T any](s *SafeArena, n int) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSliceZeroed[T](s.a, n)
}

// SafeReallocSlice thread-safely resizes a slice allocated by s.
func SafeReallocSlice[T any](s *SafeArena, p []T, n int) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ReallocSlice[T](s.a, p, n)
}

// SafePtrAndKeepAlive thread-safely returns t and calls runtime.KeepAlive on the arena.
func SafePtrAndKeepAlive[T any](s *SafeArena, t *T) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	runtime.KeepAlive(s.a)
	return t
}
