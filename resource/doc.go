// Package resource implements a memory budget for vector buffers.
//
// A Controller tracks the bytes held by every buffer charged against it and,
// when a limit is configured, refuses acquisitions that would exceed it.
// Acquisition is non-blocking and fails fast with ErrMemoryLimitExceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20, // 64 MiB
//	})
//
//	v, err := growvec.New[uint64](0, nil, growvec.WithMemoryAcquirer(rc))
//	if err != nil {
//	    // the initial buffer did not fit
//	}
//	defer v.Close() // returns the buffer's bytes to rc
//
// A single Controller may be shared by many vectors; it is safe for
// concurrent use even though the vectors themselves are not.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - it behaves as an unlimited
// controller that tracks nothing.
package resource
