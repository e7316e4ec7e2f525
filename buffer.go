package growvec

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/growvec/internal/conv"
)

// buffer owns the slot array of a Vector. len(slots) is the capacity.
//
// A buffer is charged against the acquirer that allocated it and releases
// its bytes there, even after being swapped into another vector.
type buffer[T any] struct {
	slots   []T
	mem     MemoryAcquirer
	charged int64
}

func slotBytes[T any](n int) (int64, error) {
	var zero T
	b, err := conv.MulInt(n, int(unsafe.Sizeof(zero)))
	if err != nil {
		return 0, err
	}
	return int64(b), nil
}

// resize replaces the backing array with one of exactly n slots holding a
// copy of slots[:live]. On failure the buffer is left untouched.
func (b *buffer[T]) resize(mem MemoryAcquirer, n, live int) error {
	if n < live || live > len(b.slots) {
		panic(fmt.Sprintf("growvec: resize to %d slots would drop %d live elements", n, live))
	}

	bytes, err := slotBytes[T](n)
	if err != nil {
		return &ErrAllocationFailed{Capacity: n, cause: err}
	}

	if mem != nil {
		if err := mem.AcquireMemory(bytes); err != nil {
			return &ErrAllocationFailed{Capacity: n, Bytes: bytes, cause: err}
		}
	}

	slots, err := makeSlots[T](n)
	if err != nil {
		if mem != nil {
			mem.ReleaseMemory(bytes)
		}
		return &ErrAllocationFailed{Capacity: n, Bytes: bytes, cause: err}
	}

	copy(slots, b.slots[:live])

	b.release()
	b.slots = slots
	b.mem = mem
	b.charged = bytes

	return nil
}

// release drops the backing array and returns its charge.
func (b *buffer[T]) release() {
	if b.mem != nil && b.charged > 0 {
		b.mem.ReleaseMemory(b.charged)
	}
	b.slots = nil
	b.mem = nil
	b.charged = 0
}

// makeSlots turns the runtime's makeslice panic for impossible lengths into an error.
func makeSlots[T any](n int) (slots []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return make([]T, n), nil
}
