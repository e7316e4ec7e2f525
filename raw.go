package growvec

import (
	"bytes"
	"fmt"

	"github.com/hupe1980/growvec/internal/conv"
	"github.com/hupe1980/growvec/internal/mem"
)

// RawVector is a resizable array of fixed-width opaque slots.
//
// Every slot is exactly ElementSize bytes; callers encode their values into
// that width (typically an 8-byte handle). The whole array lives in one
// contiguous, 64-byte aligned buffer of Cap*ElementSize bytes.
//
// The deleter receives a view of the slot being discarded, under the same
// rules as Vector. It must not retain the view.
//
// A RawVector is not safe for concurrent use.
type RawVector struct {
	data     []byte
	capacity int
	size     int
	width    int
	deleter  func(slot []byte)
	opts     options

	// acquirer charged for data and the charged amount
	charger MemoryAcquirer
	charged int64

	closed bool
}

// NewRaw creates a RawVector of elementSize-byte slots with room for
// max(capacityHint, MinCapacity) slots. deleter may be nil.
func NewRaw(capacityHint, elementSize int, deleter func(slot []byte), optFns ...Option) (*RawVector, error) {
	if elementSize <= 0 {
		return nil, ErrZeroElementSize
	}

	v := &RawVector{
		width:   elementSize,
		deleter: deleter,
		opts:    applyOptions(optFns),
	}

	if err := v.resize(max(capacityHint, MinCapacity)); err != nil {
		return nil, err
	}

	return v, nil
}

// Len returns the number of live slots.
func (v *RawVector) Len() int {
	if v == nil {
		return 0
	}
	return v.size
}

// Cap returns the number of allocated slots.
func (v *RawVector) Cap() int {
	if v == nil {
		return 0
	}
	return v.capacity
}

// ElementSize returns the slot width in bytes.
func (v *RawVector) ElementSize() int {
	if v == nil {
		return 0
	}
	return v.width
}

// At returns a view of slot i, valid until the next call that may grow or mutate the vector.
func (v *RawVector) At(i int) ([]byte, bool) {
	if v == nil || i < 0 || i >= v.size {
		return nil, false
	}
	return v.slot(i), true
}

// Bytes returns a view of the live region, Len*ElementSize bytes.
func (v *RawVector) Bytes() []byte {
	if v == nil {
		return nil
	}
	n := v.size * v.width
	return v.data[:n:n]
}

// Reserve ensures capacity for n slots. See Vector.Reserve.
func (v *RawVector) Reserve(n int) (bool, error) {
	if v.closed {
		return false, ErrClosed
	}
	if n < v.capacity {
		return false, nil
	}
	if n == v.capacity {
		return true, nil
	}
	if err := v.resize(n); err != nil {
		return false, err
	}
	return true, nil
}

// Insert places slot at index i, shifting [i, Len) one slot to the right.
func (v *RawVector) Insert(i int, slot []byte) error {
	if v.closed {
		return ErrClosed
	}
	if err := v.checkWidth(slot); err != nil {
		return err
	}
	if err := checkInsertIndex(i, v.size); err != nil {
		return err
	}

	// The shift below may move the bytes slot refers to.
	if mem.Overlaps(slot, v.data) {
		slot = bytes.Clone(slot)
	}

	if err := v.grow(1); err != nil {
		return err
	}

	w := v.width
	copy(v.data[(i+1)*w:(v.size+1)*w], v.data[i*w:v.size*w])
	copy(v.data[i*w:(i+1)*w], slot)

	v.opts.metricsCollector.RecordShift(v.size - i)
	v.size++

	return nil
}

// Remove deletes slot i and closes the gap.
func (v *RawVector) Remove(i int) error {
	if v.closed {
		return ErrClosed
	}
	if err := checkIndex(i, v.size); err != nil {
		return err
	}

	v.release("remove", i, i+1)

	w := v.width
	copy(v.data[i*w:(v.size-1)*w], v.data[(i+1)*w:v.size*w])
	v.size--

	v.opts.metricsCollector.RecordShift(v.size - i)

	return nil
}

// Append copies len(slots)/ElementSize contiguous slots to the end of the vector.
// len(slots) must be a multiple of ElementSize.
func (v *RawVector) Append(slots []byte) error {
	if v.closed {
		return ErrClosed
	}
	if len(slots)%v.width != 0 {
		return &ErrSlotWidth{Expected: v.width, Actual: len(slots)}
	}

	count := len(slots) / v.width
	if count == 0 {
		return nil
	}
	if err := v.grow(count); err != nil {
		return err
	}

	copy(v.data[v.size*v.width:], slots)
	v.size += count

	return nil
}

// PushBack appends a single slot.
func (v *RawVector) PushBack(slot []byte) error {
	if v.closed {
		return ErrClosed
	}
	if err := v.checkWidth(slot); err != nil {
		return err
	}
	return v.Append(slot)
}

// Truncate discards every slot at index >= from. See Vector.Truncate.
func (v *RawVector) Truncate(from int) {
	if v.closed || from < 0 || from >= v.size {
		return
	}

	v.release("truncate", from, v.size)
	v.size = from
}

// Set overwrites slot i, passing the old slot to the deleter first.
func (v *RawVector) Set(i int, slot []byte) error {
	if v.closed {
		return ErrClosed
	}
	if err := v.checkWidth(slot); err != nil {
		return err
	}
	if err := checkIndex(i, v.size); err != nil {
		return err
	}

	v.release("set", i, i+1)
	copy(v.slot(i), slot)

	return nil
}

// Clear discards every slot. Capacity is kept for reuse.
func (v *RawVector) Clear() {
	if v.closed {
		return
	}

	v.release("clear", 0, v.size)
	v.size = 0
}

// Close passes every live slot to the deleter and releases the buffer.
// Calling Close more than once is a no-op.
func (v *RawVector) Close() {
	if v == nil || v.closed {
		return
	}

	v.release("close", 0, v.size)
	v.opts.logger.LogClose(v.size, v.capacity)

	v.releaseBuffer()
	v.size = 0
	v.closed = true
}

// Clone returns an independent RawVector with the same capacity, length,
// slot width, deleter and options, and a byte copy of the live region.
//
// The copy is shallow: if slots hold owning handles, the clone and v will
// both pass them to the deleter.
func (v *RawVector) Clone() (*RawVector, error) {
	if v.closed {
		return nil, ErrClosed
	}

	c := &RawVector{
		width:   v.width,
		deleter: v.deleter,
		opts:    v.opts,
	}
	if err := c.resize(v.capacity); err != nil {
		return nil, err
	}

	copy(c.data, v.Bytes())
	c.size = v.size

	return c, nil
}

// Swap exchanges the contents of v and other in O(1). See Vector.Swap.
//
// Swapping vectors of different slot widths panics.
func (v *RawVector) Swap(other *RawVector) {
	if v == other {
		return
	}
	if v.width != other.width {
		panic(fmt.Sprintf("growvec: swap between slot widths %d and %d", v.width, other.width))
	}
	if v.closed != other.closed {
		panic("growvec: swap between open and closed vector")
	}
	if v.closed {
		return
	}

	v.data, other.data = other.data, v.data
	v.capacity, other.capacity = other.capacity, v.capacity
	v.size, other.size = other.size, v.size
	v.charger, other.charger = other.charger, v.charger
	v.charged, other.charged = other.charged, v.charged
}

// EqualRaw reports whether a and b have the same length, the same slot
// width and byte-identical live regions.
func EqualRaw(a, b *RawVector) bool {
	if a.Len() != b.Len() || a.ElementSize() != b.ElementSize() {
		return false
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}

func (v *RawVector) slot(i int) []byte {
	lo, hi := i*v.width, (i+1)*v.width
	return v.data[lo:hi:hi]
}

func (v *RawVector) checkWidth(slot []byte) error {
	if len(slot) != v.width {
		return &ErrSlotWidth{Expected: v.width, Actual: len(slot)}
	}
	return nil
}

func (v *RawVector) grow(n int) error {
	need := v.size + n
	if need < v.size {
		return &ErrAllocationFailed{Capacity: need, cause: fmt.Errorf("length overflow: %d + %d", v.size, n)}
	}
	if need <= v.capacity {
		return nil
	}
	return v.resize(CapacityFor(v.capacity, need))
}

// resize moves the live region into a fresh buffer of exactly n slots.
// On failure the vector is left untouched.
func (v *RawVector) resize(n int) error {
	from := v.capacity
	err := v.realloc(n)

	v.opts.logger.LogGrow(from, n, err)
	v.opts.metricsCollector.RecordGrow(from, n, err)

	return err
}

func (v *RawVector) realloc(n int) error {
	size, err := conv.MulInt(n, v.width)
	if err != nil {
		return &ErrAllocationFailed{Capacity: n, cause: err}
	}
	charge := int64(size)

	acq := v.opts.memory
	if acq != nil {
		if err := acq.AcquireMemory(charge); err != nil {
			return &ErrAllocationFailed{Capacity: n, Bytes: charge, cause: err}
		}
	}

	data, err := reallocBytes(v.data, v.size*v.width, size)
	if err != nil {
		if acq != nil {
			acq.ReleaseMemory(charge)
		}
		return &ErrAllocationFailed{Capacity: n, Bytes: charge, cause: err}
	}

	v.releaseBuffer()
	v.data = data
	v.capacity = n
	v.charger = acq
	v.charged = charge

	return nil
}

func (v *RawVector) releaseBuffer() {
	if v.charger != nil && v.charged > 0 {
		v.charger.ReleaseMemory(v.charged)
	}
	v.data = nil
	v.capacity = 0
	v.charger = nil
	v.charged = 0
}

// release passes slots [lo, hi) to the deleter, if one is set.
func (v *RawVector) release(reason string, lo, hi int) {
	if v.deleter == nil || lo >= hi {
		return
	}
	for i := lo; i < hi; i++ {
		v.deleter(v.slot(i))
	}
	v.opts.logger.LogRelease(reason, hi-lo)
	v.opts.metricsCollector.RecordRelease(hi - lo)
}

// reallocBytes turns the runtime's makeslice panic for impossible sizes into an error.
func reallocBytes(old []byte, live, size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return mem.Realloc(old, live, size), nil
}
