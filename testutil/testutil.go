package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Handles returns n distinct, non-zero pseudo-random handles.
func (r *RNG) Handles(n int) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uint64]struct{}, n)
	out := make([]uint64, 0, n)
	for len(out) < n {
		h := r.rand.Uint64()
		if h == 0 {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// DeleteTracker records the values passed to a deleter.
// It is thread-safe.
type DeleteTracker[T comparable] struct {
	mu      sync.Mutex
	order   []T
	counts  map[T]int
	doubles []T
}

// NewDeleteTracker creates an empty tracker.
func NewDeleteTracker[T comparable]() *DeleteTracker[T] {
	return &DeleteTracker[T]{counts: make(map[T]int)}
}

// Delete records x. Its method value is meant to be passed as a deleter.
func (d *DeleteTracker[T]) Delete(x T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.order = append(d.order, x)
	d.counts[x]++
	if d.counts[x] == 2 {
		d.doubles = append(d.doubles, x)
	}
}

// Count returns the total number of recorded deletions.
func (d *DeleteTracker[T]) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}

// Deleted returns the recorded values in deletion order.
func (d *DeleteTracker[T]) Deleted() []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]T, len(d.order))
	copy(out, d.order)
	return out
}

// Times returns how often x was deleted.
func (d *DeleteTracker[T]) Times(x T) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[x]
}

// DoubleDeletes returns every value deleted more than once.
func (d *DeleteTracker[T]) DoubleDeletes() []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]T, len(d.doubles))
	copy(out, d.doubles)
	return out
}

// Reset forgets all recorded deletions.
func (d *DeleteTracker[T]) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.order = nil
	d.doubles = nil
	clear(d.counts)
}
