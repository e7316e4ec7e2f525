package growvec

import (
	"fmt"
	"iter"
	"slices"
)

// Vector is a resizable array of T with amortized geometric growth.
//
// The optional deleter owns the release of whatever a stored value refers to.
// It is invoked exactly once for every value the vector discards: the old
// value on Set, the removed value on Remove, every value dropped by Truncate,
// Clear or RemoveIndices, and every live value on Close. Inserting and
// appending never invoke it.
//
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	buf     buffer[T]
	size    int
	deleter func(T)
	opts    options
	closed  bool
}

// New creates a vector with room for max(capacityHint, MinCapacity) elements.
// deleter may be nil.
//
// It returns ErrAllocation if the initial buffer cannot be allocated, for
// example because a configured MemoryAcquirer refuses it.
func New[T any](capacityHint int, deleter func(T), optFns ...Option) (*Vector[T], error) {
	v := &Vector[T]{
		deleter: deleter,
		opts:    applyOptions(optFns),
	}

	if err := v.resize(max(capacityHint, MinCapacity)); err != nil {
		return nil, err
	}

	return v, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	if v == nil {
		return 0
	}
	return v.size
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int {
	if v == nil {
		return 0
	}
	return len(v.buf.slots)
}

// Get returns the element at index i.
func (v *Vector[T]) Get(i int) (T, bool) {
	if v == nil || i < 0 || i >= v.size {
		var zero T
		return zero, false
	}
	return v.buf.slots[i], true
}

// Values returns the live region. The slice aliases the vector's buffer and is
// only valid until the next call that may grow or mutate the vector.
func (v *Vector[T]) Values() []T {
	if v == nil {
		return nil
	}
	return v.buf.slots[:v.size:v.size]
}

// All returns an iterator over index/value pairs of the live region.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, v.buf.slots[i]) {
				return
			}
		}
	}
}

// Reserve ensures capacity for n elements.
//
// It returns false if n is below the current capacity (nothing to do).
// Otherwise the buffer is resized to exactly n slots and Reserve returns true.
func (v *Vector[T]) Reserve(n int) (bool, error) {
	if v.closed {
		return false, ErrClosed
	}
	if n < v.Cap() {
		return false, nil
	}
	if n == v.Cap() {
		return true, nil
	}
	if err := v.resize(n); err != nil {
		return false, err
	}
	return true, nil
}

// Insert places x at index i, shifting [i, Len) one slot to the right.
// i may equal Len.
func (v *Vector[T]) Insert(i int, x T) error {
	if v.closed {
		return ErrClosed
	}
	if err := checkInsertIndex(i, v.size); err != nil {
		return err
	}
	if err := v.grow(1); err != nil {
		return err
	}

	s := v.buf.slots
	copy(s[i+1:v.size+1], s[i:v.size])
	s[i] = x

	v.opts.metricsCollector.RecordShift(v.size - i)
	v.size++

	return nil
}

// Remove deletes the element at index i and closes the gap.
func (v *Vector[T]) Remove(i int) error {
	if v.closed {
		return ErrClosed
	}
	if err := checkIndex(i, v.size); err != nil {
		return err
	}

	s := v.buf.slots
	v.release("remove", s[i:i+1])

	copy(s[i:v.size-1], s[i+1:v.size])

	var zero T
	s[v.size-1] = zero
	v.size--

	v.opts.metricsCollector.RecordShift(v.size - i)

	return nil
}

// Append adds xs to the end of the vector, growing at most once.
func (v *Vector[T]) Append(xs ...T) error {
	if v.closed {
		return ErrClosed
	}
	if len(xs) == 0 {
		return nil
	}
	if err := v.grow(len(xs)); err != nil {
		return err
	}

	copy(v.buf.slots[v.size:], xs)
	v.size += len(xs)

	return nil
}

// PushBack appends a single element.
func (v *Vector[T]) PushBack(x T) error {
	if v.closed {
		return ErrClosed
	}
	if err := v.grow(1); err != nil {
		return err
	}

	v.buf.slots[v.size] = x
	v.size++

	return nil
}

// Truncate discards every element at index >= from and shrinks Len to from.
// Discarded elements are passed to the deleter in index order.
// It does nothing if from is negative or not below Len.
func (v *Vector[T]) Truncate(from int) {
	if v.closed || from < 0 || from >= v.size {
		return
	}

	s := v.buf.slots
	v.release("truncate", s[from:v.size])
	clear(s[from:v.size])
	v.size = from
}

// Set overwrites the element at index i with x, passing the old value to the deleter first.
func (v *Vector[T]) Set(i int, x T) error {
	if v.closed {
		return ErrClosed
	}
	if err := checkIndex(i, v.size); err != nil {
		return err
	}

	v.release("set", v.buf.slots[i:i+1])
	v.buf.slots[i] = x

	return nil
}

// Clear discards every element. Capacity is kept for reuse.
func (v *Vector[T]) Clear() {
	if v.closed {
		return
	}

	s := v.buf.slots
	v.release("clear", s[:v.size])
	clear(s[:v.size])
	v.size = 0
}

// Close passes every live element to the deleter and releases the buffer.
// Calling Close more than once is a no-op.
func (v *Vector[T]) Close() {
	if v == nil || v.closed {
		return
	}

	v.release("close", v.buf.slots[:v.size])
	v.opts.logger.LogClose(v.size, v.Cap())

	v.buf.release()
	v.size = 0
	v.closed = true
}

// Clone returns an independent vector with the same capacity, length,
// deleter and options, holding a shallow copy of the live region.
//
// If a deleter is set, the clone and v both own the same values and both
// will pass them to the deleter. Use Clone only for values that own nothing
// or are reference counted; use CloneFunc to duplicate owned values.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	return v.clone(nil)
}

// CloneFunc is like Clone but builds every element of the copy with fn.
//
// If fn fails, the elements cloned so far are passed to the deleter, and
// an error wrapping ErrCopy and fn's error is returned.
func (v *Vector[T]) CloneFunc(fn func(T) (T, error)) (*Vector[T], error) {
	return v.clone(fn)
}

func (v *Vector[T]) clone(fn func(T) (T, error)) (*Vector[T], error) {
	if v.closed {
		return nil, ErrClosed
	}

	c := &Vector[T]{
		deleter: v.deleter,
		opts:    v.opts,
	}
	if err := c.resize(v.Cap()); err != nil {
		return nil, err
	}

	src := v.buf.slots[:v.size]
	if fn == nil {
		copy(c.buf.slots, src)
		c.size = v.size
		return c, nil
	}

	for i, x := range src {
		y, err := fn(x)
		if err != nil {
			v.opts.logger.LogCopyFailure(i, err)
			c.Close()
			return nil, fmt.Errorf("%w: element %d: %w", ErrCopy, i, err)
		}
		c.buf.slots[i] = y
		c.size = i + 1
	}

	return c, nil
}

// Swap exchanges the contents of v and other in O(1). Buffers travel with
// their contents; deleters and options stay with their vector.
//
// Swapping an open vector with a closed one panics.
func (v *Vector[T]) Swap(other *Vector[T]) {
	if v == other {
		return
	}
	if v.closed != other.closed {
		panic("growvec: swap between open and closed vector")
	}
	if v.closed {
		return
	}

	v.buf, other.buf = other.buf, v.buf
	v.size, other.size = other.size, v.size
}

// Equal reports whether a and b hold the same elements in the same order.
// It compares stored values only; referenced resources are never inspected.
func Equal[T comparable](a, b *Vector[T]) bool {
	return slices.Equal(a.Values(), b.Values())
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T any](a, b *Vector[T], eq func(T, T) bool) bool {
	return slices.EqualFunc(a.Values(), b.Values(), eq)
}

// grow makes room for n more elements using the growth sequence.
func (v *Vector[T]) grow(n int) error {
	need := v.size + n
	if need < v.size {
		return &ErrAllocationFailed{Capacity: need, cause: fmt.Errorf("length overflow: %d + %d", v.size, n)}
	}
	if need <= v.Cap() {
		return nil
	}
	return v.resize(CapacityFor(v.Cap(), need))
}

func (v *Vector[T]) resize(n int) error {
	from := v.Cap()
	err := v.buf.resize(v.opts.memory, n, v.size)

	v.opts.logger.LogGrow(from, n, err)
	v.opts.metricsCollector.RecordGrow(from, n, err)

	return err
}

// release passes vals to the deleter, if one is set.
func (v *Vector[T]) release(reason string, vals []T) {
	if v.deleter == nil || len(vals) == 0 {
		return
	}
	for _, x := range vals {
		v.deleter(x)
	}
	v.noteRelease(reason, len(vals))
}

func (v *Vector[T]) noteRelease(reason string, n int) {
	v.opts.logger.LogRelease(reason, n)
	v.opts.metricsCollector.RecordRelease(n)
}
