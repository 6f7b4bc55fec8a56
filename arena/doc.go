// Package arena implements a chunked bump allocator (memory arena) for Go
// that owns a batch of allocations and frees them together.
//
// # Overview
//
// The arena allocates memory in large chunks and hands out portions of
// those chunks on demand. Every allocation is tracked, so it can later be
// resized, either by its payload (pointer identity, linear scan) or by a
// Handle (constant time). There is no way to free a single allocation:
// the lifetime of every payload is the lifetime of the arena.
//
// # Basic Usage
//
//	a := arena.NewArena(0) // Use default chunk size
//	defer a.Release()      // Drop every allocation at once
//
//	// Allocate raw bytes
//	buf := a.AllocBytes(16)
//
//	// Grow it; the first 16 bytes are preserved
//	buf = a.Realloc(buf, 64)
//
//	// Handle based allocation
//	h, payload, err := a.Allocate(32)
//	h, payload, err = a.Resize(h, 128)
//
//	// Allocate typed values
//	ptr := arena.Alloc[MyStruct](a)
//	slice := arena.AllocSlice[int](a, 100)
//	slice = arena.ReallocSlice(a, slice, 200)
//
// # Reallocation
//
// A payload that was the last one bumped from its chunk grows in place
// when the chunk has room, and always shrinks in place. Otherwise a new
// region is bumped and the content copied; the old region is not reused
// until Reset or Release. Callers must switch to the returned payload.
//
// # Thread Safety
//
// The basic Arena type is not thread-safe. For concurrent access, use SafeArena:
//
//	safeArena := arena.NewSafeArena(0)
//	defer safeArena.Release()
//
//	buf := safeArena.AllocBytes(1024)
//	ptr := arena.SafeAlloc[MyStruct](safeArena)
//
// # Important Notes
//
//   - Payloads are only valid until Release, Reset, or their own reallocation
//   - Release and Reset return the arena to its empty state; it stays usable
//   - Invalid sizes and unknown payloads leave the arena unchanged
//   - Memory is not automatically zeroed unless using Alloc() or AllocSliceZeroed()
//   - Proper alignment is maintained for all allocations
//
// # Metrics and Monitoring
//
//	fmt.Println(a.Metrics())
//	prometheus.MustRegister(arena.NewCollector("requests", safeArena))
package arena
