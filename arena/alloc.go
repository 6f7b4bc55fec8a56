package arena

import (
	"runtime"
	"unsafe"
)

// Alloc returns a pointer to a T stored inside the arena with zeroed memory.
// The returned pointer is valid as long as the arena hasn't been released.
// T must not contain Go pointers: the arena's memory is not scanned by the
// garbage collector.
func Alloc[T any](a *Arena) *T {
	if zeroSized[T]() {
		return new(T)
	}
	b := allocFor[T](a, 1)
	if b == nil {
		return nil
	}
	clear(b)
	return (*T)(unsafe.Pointer(&b[0]))
}

// AllocZeroed is identical to Alloc - provided for API consistency.
func AllocZeroed[T any](a *Arena) *T {
	return Alloc[T](a)
}

// AllocUninitialized returns a *T located in the arena without zeroing memory.
// This is faster than Alloc but the memory contents are undefined after a Reset.
func AllocUninitialized[T any](a *Arena) *T {
	if zeroSized[T]() {
		return new(T)
	}
	b := allocFor[T](a, 1)
	if b == nil {
		return nil
	}
	return (*T)(unsafe.Pointer(&b[0]))
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The slice elements are not initialized.
// Returns nil if n <= 0 or the slice would exceed the arena's allocation limit.
func AllocSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	if zeroSized[T]() {
		return make([]T, n)
	}
	b := allocFor[T](a, n)
	if b == nil {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// AllocSliceZeroed allocates a slice of n elements of type T with zeroed memory.
func AllocSliceZeroed[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	if zeroSized[T]() {
		return make([]T, n)
	}
	b := allocFor[T](a, n)
	if b == nil {
		return nil
	}
	clear(b)
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// ReallocSlice resizes a slice previously returned by AllocSlice (or a
// prior ReallocSlice) to n elements. The first min(len(s), n) elements are
// preserved and s must not be used afterwards. An empty s is allocated
// fresh. Returns nil if n <= 0 or s is not a slice allocated by a.
func ReallocSlice[T any](a *Arena, s []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(s) == 0 {
		return AllocSlice[T](a, n)
	}
	if zeroSized[T]() {
		return make([]T, n)
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if n > a.maxAlloc/elemSize {
		return nil
	}
	p := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*elemSize)
	b := a.Realloc(p, n*elemSize)
	if b == nil {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// PtrAndKeepAlive returns t and calls runtime.KeepAlive on the arena.
// This is useful to prevent the arena from being garbage collected
// while the pointer is still in use in unsafe code.
func PtrAndKeepAlive[T any](a *Arena, t *T) *T {
	runtime.KeepAlive(a)
	return t
}

// allocFor reserves room for n values of a non zero-sized T, or returns
// nil if that exceeds the arena's allocation limit.
func allocFor[T any](a *Arena, n int) []byte {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if n > a.maxAlloc/elemSize {
		return nil
	}
	return a.AllocBytes(elemSize * n)
}

// zeroSized reports whether values of T occupy no memory. Those are never
// placed in the arena.
func zeroSized[T any]() bool {
	var zero T
	return unsafe.Sizeof(zero) == 0
}
