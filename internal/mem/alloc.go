package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of every buffer returned by this package.
const Alignment = 64

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	// Cap the result so appends can never run into the padding.
	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// Realloc returns a new aligned buffer of size bytes holding a copy of old[:live].
// live is clamped to both len(old) and size.
func Realloc(old []byte, live, size int) []byte {
	buf := AllocAligned(size)
	if live > len(old) {
		live = len(old)
	}
	if live > size {
		live = size
	}
	if live > 0 {
		copy(buf, old[:live])
	}
	return buf
}

// Overlaps reports whether a and b share any backing memory.
func Overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(&a[0])) //nolint:gosec // address comparison only
	b0 := uintptr(unsafe.Pointer(&b[0])) //nolint:gosec // address comparison only
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}
