package growvec

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/growvec/internal/mem"
	"github.com/hupe1980/growvec/resource"
)

func u64(x uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, x)
}

func rawValues(v *RawVector) []uint64 {
	out := make([]uint64, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		s, _ := v.At(i)
		out = append(out, binary.LittleEndian.Uint64(s))
	}
	return out
}

func newRaw(t *testing.T, capacityHint int, deleter func([]byte), opts ...Option) *RawVector {
	t.Helper()
	v, err := NewRaw(capacityHint, 8, deleter, opts...)
	require.NoError(t, err)
	return v
}

func TestRawVector(t *testing.T) {
	t.Run("PushRemoveEqual", func(t *testing.T) {
		v := newRaw(t, 0, nil)
		defer v.Close()

		require.NoError(t, v.PushBack(u64(10)))
		require.NoError(t, v.PushBack(u64(20)))
		require.NoError(t, v.PushBack(u64(30)))
		assert.Equal(t, 3, v.Len())

		require.NoError(t, v.Remove(1))
		assert.Equal(t, []uint64{10, 30}, rawValues(v))

		other := newRaw(t, 0, nil)
		defer other.Close()
		require.NoError(t, other.PushBack(u64(10)))
		require.NoError(t, other.PushBack(u64(30)))

		assert.True(t, EqualRaw(v, other))
	})

	t.Run("ZeroElementSize", func(t *testing.T) {
		v, err := NewRaw(0, 0, nil)
		assert.ErrorIs(t, err, ErrZeroElementSize)
		assert.Nil(t, v)

		_, err = NewRaw(0, -4, nil)
		assert.ErrorIs(t, err, ErrZeroElementSize)
	})

	t.Run("SizeOverflow", func(t *testing.T) {
		v, err := NewRaw(math.MaxInt/2, 4, nil)
		assert.ErrorIs(t, err, ErrAllocation)
		assert.Nil(t, v)
	})

	t.Run("Aligned", func(t *testing.T) {
		v := newRaw(t, 0, nil)
		require.NoError(t, v.PushBack(u64(1)))

		s, ok := v.At(0)
		require.True(t, ok)
		assert.Equal(t, uintptr(0), uintptr(unsafe.Pointer(&s[0]))%mem.Alignment)
		assert.Equal(t, 8, v.ElementSize())
	})

	t.Run("SlotWidth", func(t *testing.T) {
		v := newRaw(t, 0, nil)

		err := v.PushBack([]byte{1, 2, 3})
		require.ErrorIs(t, err, ErrElementSize)
		var we *ErrSlotWidth
		require.ErrorAs(t, err, &we)
		assert.Equal(t, 8, we.Expected)
		assert.Equal(t, 3, we.Actual)

		assert.ErrorIs(t, v.Append(make([]byte, 12)), ErrElementSize)
		assert.ErrorIs(t, v.Insert(0, make([]byte, 9)), ErrElementSize)

		require.NoError(t, v.Append(append(u64(1), u64(2)...)))
		assert.ErrorIs(t, v.Set(0, nil), ErrElementSize)
		assert.Equal(t, []uint64{1, 2}, rawValues(v))
	})

	t.Run("InsertPositions", func(t *testing.T) {
		v := newRaw(t, 0, nil)
		require.NoError(t, v.Append(append(u64(2), u64(4)...)))

		require.NoError(t, v.Insert(0, u64(1)))
		require.NoError(t, v.Insert(2, u64(3)))
		require.NoError(t, v.Insert(v.Len(), u64(5)))

		assert.Equal(t, []uint64{1, 2, 3, 4, 5}, rawValues(v))
		assert.ErrorIs(t, v.Insert(7, u64(0)), ErrIndexOutOfRange)
		assert.ErrorIs(t, v.Remove(5), ErrIndexOutOfRange)
	})

	t.Run("InsertOwnSlot", func(t *testing.T) {
		v := newRaw(t, 0, nil)
		require.NoError(t, v.Append(append(append(u64(1), u64(2)...), u64(3)...)))

		s, _ := v.At(1)
		require.NoError(t, v.Insert(0, s))

		assert.Equal(t, []uint64{2, 1, 2, 3}, rawValues(v))
	})

	t.Run("AppendGrowsToSequence", func(t *testing.T) {
		v := newRaw(t, 0, nil)

		require.NoError(t, v.Append(make([]byte, 8*20)))
		assert.Equal(t, 20, v.Len())
		assert.Equal(t, CapacityFor(MinCapacity, 20), v.Cap())
		assert.Len(t, v.Bytes(), 160)
	})

	t.Run("ReserveThenFill", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		v := newRaw(t, 0, nil, WithMetricsCollector(mc))

		ok, err := v.Reserve(100)
		require.NoError(t, err)
		assert.True(t, ok)
		grows := mc.GetStats().GrowCount

		for i := uint64(0); i < 100; i++ {
			require.NoError(t, v.PushBack(u64(i)))
		}
		assert.Equal(t, 100, v.Cap())
		assert.Equal(t, grows, mc.GetStats().GrowCount)

		ok, err = v.Reserve(50)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRawVector_Deleter(t *testing.T) {
	var deleted []uint64
	del := func(slot []byte) {
		deleted = append(deleted, binary.LittleEndian.Uint64(slot))
	}

	t.Run("SetThenClose", func(t *testing.T) {
		deleted = nil
		v := newRaw(t, 0, del)

		require.NoError(t, v.PushBack(u64(1)))
		require.NoError(t, v.Set(0, u64(2)))
		assert.Equal(t, []uint64{1}, deleted)

		v.Close()
		assert.Equal(t, []uint64{1, 2}, deleted)

		v.Close()
		assert.Len(t, deleted, 2)
	})

	t.Run("RemoveTruncateClear", func(t *testing.T) {
		deleted = nil
		v := newRaw(t, 0, del)
		for i := uint64(1); i <= 6; i++ {
			require.NoError(t, v.PushBack(u64(i)))
		}

		require.NoError(t, v.Remove(0))
		assert.Equal(t, []uint64{1}, deleted)

		v.Truncate(3)
		assert.Equal(t, []uint64{1, 5, 6}, deleted)
		v.Truncate(3)
		v.Truncate(99)
		assert.Len(t, deleted, 3)

		capBefore := v.Cap()
		v.Clear()
		assert.Equal(t, []uint64{1, 5, 6, 2, 3, 4}, deleted)
		assert.Equal(t, capBefore, v.Cap())
		assert.Equal(t, 0, v.Len())
	})
}

func TestRawVector_MemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100})
	v := newRaw(t, 0, nil, WithMemoryAcquirer(rc))
	assert.Equal(t, int64(64), rc.MemoryUsage())

	require.NoError(t, v.Append(make([]byte, 64)))

	err := v.PushBack(u64(9))
	require.ErrorIs(t, err, ErrAllocation)
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Equal(t, 8, v.Len())
	assert.Equal(t, 8, v.Cap())

	_, err = v.Clone()
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, int64(64), rc.MemoryUsage())

	v.Close()
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestRawVector_Clone(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	v := newRaw(t, 16, nil, WithMemoryAcquirer(rc))
	require.NoError(t, v.PushBack(u64(7)))
	require.NoError(t, v.PushBack(u64(8)))

	c, err := v.Clone()
	require.NoError(t, err)

	assert.True(t, EqualRaw(v, c))
	assert.Equal(t, v.Cap(), c.Cap())
	assert.Equal(t, int64(2*16*8), rc.MemoryUsage())

	require.NoError(t, c.Set(0, u64(1)))
	assert.False(t, EqualRaw(v, c))
	assert.Equal(t, []uint64{7, 8}, rawValues(v))

	c.Close()
	v.Close()
	assert.Equal(t, int64(0), rc.MemoryUsage())

	_, err = v.Clone()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRawVector_Swap(t *testing.T) {
	t.Run("DifferentCapacities", func(t *testing.T) {
		a := newRaw(t, 0, nil)
		require.NoError(t, a.PushBack(u64(1)))

		b := newRaw(t, 64, nil)
		for i := uint64(0); i < 40; i++ {
			require.NoError(t, b.PushBack(u64(100+i)))
		}
		want := rawValues(b)

		a.Swap(b)

		assert.Equal(t, want, rawValues(a))
		assert.Equal(t, 64, a.Cap())
		assert.Equal(t, []uint64{1}, rawValues(b))
		assert.Equal(t, MinCapacity, b.Cap())
	})

	t.Run("WidthMismatchPanics", func(t *testing.T) {
		a := newRaw(t, 0, nil)
		b, err := NewRaw(0, 4, nil)
		require.NoError(t, err)

		assert.Panics(t, func() { a.Swap(b) })
	})
}

func TestEqualRaw(t *testing.T) {
	a, err := NewRaw(0, 4, nil)
	require.NoError(t, err)
	b, err := NewRaw(0, 8, nil)
	require.NoError(t, err)

	// Different widths are never equal, even when empty.
	assert.False(t, EqualRaw(a, b))

	c, err := NewRaw(32, 4, nil)
	require.NoError(t, err)
	assert.True(t, EqualRaw(a, c))

	require.NoError(t, a.PushBack([]byte{1, 2, 3, 4}))
	require.NoError(t, c.PushBack([]byte{1, 2, 3, 5}))
	assert.False(t, EqualRaw(a, c))
}

func TestRawVector_Closed(t *testing.T) {
	v := newRaw(t, 0, nil)
	v.Close()

	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
	assert.Empty(t, v.Bytes())
	assert.ErrorIs(t, v.PushBack(u64(1)), ErrClosed)
	assert.ErrorIs(t, v.Append(u64(1)), ErrClosed)
	assert.ErrorIs(t, v.Insert(0, u64(1)), ErrClosed)
	assert.ErrorIs(t, v.Remove(0), ErrClosed)
	assert.ErrorIs(t, v.Set(0, u64(1)), ErrClosed)
	_, err := v.Reserve(10)
	assert.ErrorIs(t, err, ErrClosed)
}
