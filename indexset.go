package growvec

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/growvec/internal/conv"
)

// Select returns the positions of all live elements matching pred.
// Positions beyond the uint32 range are not representable and are skipped.
func (v *Vector[T]) Select(pred func(T) bool) *roaring.Bitmap {
	rb := roaring.New()
	for i, x := range v.Values() {
		if !pred(x) {
			continue
		}
		pos, err := conv.IntToUint32(i)
		if err != nil {
			break
		}
		rb.Add(pos)
	}
	return rb
}

// RemoveIndices removes every position in set in a single pass, keeping the
// survivors in order. Removed values are passed to the deleter in ascending
// position order. It returns the number of removed elements.
//
// If set names a position at or beyond Len, nothing is removed and an
// ErrIndexOutOfRange error is returned.
func (v *Vector[T]) RemoveIndices(set *roaring.Bitmap) (int, error) {
	if v.closed {
		return 0, ErrClosed
	}
	if set == nil || set.IsEmpty() {
		return 0, nil
	}

	last, err := conv.Uint32ToInt(set.Maximum())
	if err != nil || last >= v.size {
		return 0, &ErrIndex{Index: last, Len: v.size}
	}

	s := v.buf.slots
	it := set.Iterator()
	next := int(it.Next()) // set is non-empty

	w := 0
	removed := 0
	moved := 0
	for r := 0; r < v.size; r++ {
		if r == next {
			if v.deleter != nil {
				v.deleter(s[r])
			}
			removed++
			next = -1
			if it.HasNext() {
				next = int(it.Next())
			}
			continue
		}
		if w != r {
			s[w] = s[r]
			moved++
		}
		w++
	}

	clear(s[w:v.size])
	v.size = w

	if v.deleter != nil {
		v.noteRelease("remove", removed)
	}
	v.opts.metricsCollector.RecordShift(moved)

	return removed, nil
}
