// Package arena implements a chunked bump allocator (memory arena) that
// tracks every allocation it hands out.
// Typical usage: create one arena per unit of work, allocate many temporary
// buffers from it, then Release() (or Reset()) to drop all of them at once.
package arena

import (
	"math"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump allocator. Not goroutine-safe by default.
// Use SafeArena for concurrent access.
//
// Every allocation is recorded as a node in a singly linked list (newest
// first) and in a slot table addressed by Handle. Payloads stay valid until
// the arena is released or reset, or until the payload is reallocated.
type Arena struct {
	chunks    []chunk
	chunkSize int
	current   int // index of the chunk serving bump allocations, -1 if none

	head  *node
	slots []*node
	epoch uint32

	maxAlloc int
	logger   log.Logger
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int, opts ...Option) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{
		chunkSize: chunkSize,
		current:   -1,
		epoch:     1,
		maxAlloc:  math.MaxInt - int(ptrAlign),
		logger:    log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.grow(chunkSize)
	return a
}

// AllocBytes returns a new payload of n bytes carved from the arena's
// current chunk. The returned slice has len and cap equal to n.
// Returns nil, leaving the arena unchanged, if n <= 0 or n exceeds the
// configured maximum allocation size.
func (a *Arena) AllocBytes(n int) []byte {
	if n <= 0 || n > a.maxAlloc {
		return nil
	}
	ci, off, buf := a.bump(n)
	a.track(ci, off, buf)
	return buf
}

// Allocate is AllocBytes with an explicit result: the handle of the new
// allocation and its payload, or an error describing why nothing was
// allocated.
func (a *Arena) Allocate(n int) (Handle, []byte, error) {
	if err := a.checkSize(n); err != nil {
		return Handle{}, nil, err
	}
	ci, off, buf := a.bump(n)
	nd := a.track(ci, off, buf)
	return a.handleOf(nd), buf, nil
}

// Realloc resizes the allocation whose payload starts at p and returns the
// new payload. The allocation is found by pointer identity with a linear
// scan over the live allocations. The first min(len(p), n) bytes are
// preserved; the payload may move, in which case p must no longer be used.
//
// Realloc returns nil and leaves the arena unchanged when p is not a
// payload of this arena, or when n is not a valid allocation size.
func (a *Arena) Realloc(p []byte, n int) []byte {
	if n <= 0 || n > a.maxAlloc {
		return nil
	}
	nd := a.find(p)
	if nd == nil {
		level.Debug(a.logger).Log("msg", "realloc of unknown payload", "size", n, "allocations", len(a.slots))
		return nil
	}
	return a.resize(nd, n)
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the arena with a new chunk.
func (a *Arena) EnsureCapacity(n int) {
	if a.current < 0 {
		a.grow(n)
		return
	}
	c := &a.chunks[a.current]
	off := alignPtr(c.offset)
	if uintptr(n)+off > uintptr(len(c.buf)) {
		a.grow(n)
	}
}

// Len returns the number of live allocations.
func (a *Arena) Len() int {
	return len(a.slots)
}

// Empty reports whether the arena holds no allocations.
func (a *Arena) Empty() bool {
	return a.head == nil
}

// Reset forgets every allocation but keeps allocated chunks for reuse.
// All previously returned payloads and handles become invalid.
func (a *Arena) Reset() {
	level.Debug(a.logger).Log("msg", "arena reset", "allocations", len(a.slots), "chunks", len(a.chunks), "in_use", a.SizeInUse())
	a.dropNodes()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.current = -1
	if len(a.chunks) > 0 {
		a.current = 0
	}
}

// Release drops every allocation and every chunk. The arena returns to its
// empty state; a later allocation behaves as on a newly created arena.
func (a *Arena) Release() {
	level.Debug(a.logger).Log("msg", "arena released", "allocations", len(a.slots), "chunks", len(a.chunks), "capacity", a.Capacity())
	a.dropNodes()
	a.chunks = nil
	a.current = -1
}

// bump carves n bytes from the current chunk, growing the arena if needed.
func (a *Arena) bump(n int) (int, uintptr, []byte) {
	// Fast path: use current chunk
	if a.current >= 0 {
		c := &a.chunks[a.current]
		off := alignPtr(c.offset)
		if off+uintptr(n) <= uintptr(len(c.buf)) {
			c.offset = off + uintptr(n)
			// Use unsafe slice creation to avoid bounds checks
			return a.current, off, unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[off])), n)
		}
	}

	// Slow path: need another chunk
	return a.bumpSlow(n)
}

// bumpSlow handles allocation when the fast path fails. Chunks left over
// from a Reset are reused before a new one is allocated.
func (a *Arena) bumpSlow(n int) (int, uintptr, []byte) {
	next := -1
	for i := a.current + 1; i < len(a.chunks); i++ {
		if a.chunks[i].offset == 0 && len(a.chunks[i].buf) >= n {
			next = i
			break
		}
	}
	if next < 0 {
		a.grow(n)
		next = len(a.chunks) - 1
	}
	a.current = next

	c := &a.chunks[next]
	c.offset = uintptr(n)
	return next, 0, unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[0])), n)
}

// resize changes the payload size of nd, in place when possible.
func (a *Arena) resize(nd *node, n int) []byte {
	c := &a.chunks[nd.chunk]
	end := nd.off + uintptr(len(nd.buf))
	last := end == c.offset

	if n <= len(nd.buf) {
		nd.buf = nd.buf[:n:n]
		if last {
			c.offset = nd.off + uintptr(n)
		}
		return nd.buf
	}

	// Nothing was bumped after nd in its chunk: extend it where it is.
	if last && nd.off+uintptr(n) <= uintptr(len(c.buf)) {
		c.offset = nd.off + uintptr(n)
		nd.buf = unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[nd.off])), n)
		return nd.buf
	}

	ci, off, buf := a.bump(n)
	copy(buf, nd.buf)
	nd.buf, nd.chunk, nd.off = buf, ci, off
	return buf
}

// grow appends a new chunk of at least min bytes and makes it current.
func (a *Arena) grow(min int) {
	size := a.chunkSize
	if min > size {
		size = min
	}
	buf := make([]byte, size)
	a.chunks = append(a.chunks, chunk{buf: buf, offset: 0})
	a.current = len(a.chunks) - 1
}

const ptrAlign = unsafe.Sizeof(uintptr(0))

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	mask := ptrAlign - 1
	return (off + mask) & ^mask
}
