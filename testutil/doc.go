// Package testutil provides testing utilities for growvec.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Workloads
//
//	rng := testutil.NewRNG(seed)
//	handles := rng.Handles(100)  // distinct non-zero uint64 handles
//	i := rng.Intn(v.Len() + 1)   // random insert position
//
// # Deleter Tracking
//
// DeleteTracker records every value passed to a deleter so tests can assert
// that each discarded value was released exactly once:
//
//	tr := testutil.NewDeleteTracker[uint64]()
//	v, _ := growvec.New[uint64](0, tr.Delete)
//	...
//	assert.Empty(t, tr.DoubleDeletes())
package testutil
