package vec

// Allocator provides backing buffers to a Raw array.
//
// AllocBytes returns a new buffer of n bytes. Realloc resizes a buffer
// previously returned by the same allocator, preserving its first
// min(len(p), n) bytes; it returns nil if p is unknown to the allocator.
// Both return nil for n <= 0.
//
// *arena.Arena and *arena.SafeArena satisfy this interface.
type Allocator interface {
	AllocBytes(n int) []byte
	Realloc(p []byte, n int) []byte
}

// Heap allocates buffers from the Go heap.
var Heap Allocator = heap{}

type heap struct{}

func (heap) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	return make([]byte, n)
}

func (heap) Realloc(p []byte, n int) []byte {
	if n <= 0 {
		return nil
	}
	b := make([]byte, n)
	copy(b, p)
	return b
}
