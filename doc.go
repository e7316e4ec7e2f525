// Package growvec provides resizable arrays with amortized geometric growth
// and an optional per-element deleter.
//
// # Vectors
//
// Vector[T] stores values of any type:
//
//	v, err := growvec.New[*os.File](0, func(f *os.File) { f.Close() })
//	if err != nil {
//	    return err
//	}
//	defer v.Close() // closes every file still held
//
//	_ = v.PushBack(f1)
//	_ = v.Insert(0, f2)
//	_ = v.Set(1, f3) // closes f1
//	_ = v.Remove(0)  // closes f2
//
// RawVector stores fixed-width opaque byte slots in one contiguous buffer,
// for callers that manage their own encoding:
//
//	rv, _ := growvec.NewRaw(0, 8, nil)
//	_ = rv.PushBack(binary.LittleEndian.AppendUint64(nil, handle))
//
// # Growth
//
// Capacity starts at max(hint, MinCapacity) and grows by GrowthFactor. A bulk
// Append grows at most once, to the smallest capacity in the growth sequence
// that holds the result (see CapacityFor). Capacity never shrinks; Reserve
// resizes to an exact capacity.
//
// Growth is copy-and-replace: a new buffer is allocated and the live region
// copied into it before the old buffer is dropped. If allocation fails the
// vector is left exactly as it was and ErrAllocation is returned.
//
// # Deleter
//
// The deleter runs exactly once for every value the vector discards
// (Set, Remove, RemoveIndices, Truncate, Clear, Close) and never on insert
// or append. Clone is shallow: both vectors own the same values afterwards.
// Use CloneFunc to duplicate owned values.
//
// # Memory Budget
//
// WithMemoryAcquirer charges every buffer against a shared budget such as
// resource.Controller. During growth the old and new buffers are both held,
// so the budget must cover both.
//
// # Thread Safety
//
// Vectors are not safe for concurrent use. Any call that can grow a vector
// invalidates slices previously returned by Values, Bytes or At.
package growvec
