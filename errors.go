package growvec

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation is returned when a buffer could not be allocated or grown.
	// The vector is left exactly as it was before the failing call.
	ErrAllocation = errors.New("growvec: allocation failed")

	// ErrCopy is returned when a clone could not duplicate every element.
	ErrCopy = errors.New("growvec: copy failed")

	// ErrIndexOutOfRange is returned when an index lies outside the live region.
	ErrIndexOutOfRange = errors.New("growvec: index out of range")

	// ErrZeroElementSize is returned when a RawVector is constructed with a non-positive slot width.
	ErrZeroElementSize = errors.New("growvec: element size must be positive")

	// ErrElementSize is returned when a slot value does not match the RawVector slot width.
	ErrElementSize = errors.New("growvec: element size mismatch")

	// ErrClosed is returned when mutating a vector after Close.
	ErrClosed = errors.New("growvec: vector closed")
)

// ErrIndex reports an index outside [0, Len) (or [0, Len] for inserts).
type ErrIndex struct {
	Index int
	Len   int
}

func (e *ErrIndex) Error() string {
	return fmt.Sprintf("growvec: index %d out of range [0, %d)", e.Index, e.Len)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *ErrIndex) Is(target error) bool { return target == ErrIndexOutOfRange }

// ErrAllocationFailed describes a failed buffer allocation.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrAllocationFailed struct {
	Capacity int   // requested capacity in slots
	Bytes    int64 // requested buffer size in bytes, 0 if it overflowed
	cause    error
}

func (e *ErrAllocationFailed) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("growvec: allocation of %d slots (%d bytes) failed: %v", e.Capacity, e.Bytes, e.cause)
	}
	return fmt.Sprintf("growvec: allocation of %d slots (%d bytes) failed", e.Capacity, e.Bytes)
}

// Is reports whether target is ErrAllocation.
func (e *ErrAllocationFailed) Is(target error) bool { return target == ErrAllocation }

func (e *ErrAllocationFailed) Unwrap() error { return e.cause }

// ErrSlotWidth reports a RawVector slot value of the wrong width.
type ErrSlotWidth struct {
	Expected int
	Actual   int
}

func (e *ErrSlotWidth) Error() string {
	return fmt.Sprintf("growvec: slot width mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Is reports whether target is ErrElementSize.
func (e *ErrSlotWidth) Is(target error) bool { return target == ErrElementSize }

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return &ErrIndex{Index: i, Len: n}
	}
	return nil
}

func checkInsertIndex(i, n int) error {
	if i < 0 || i > n {
		return &ErrIndex{Index: i, Len: n + 1}
	}
	return nil
}
