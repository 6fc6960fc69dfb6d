package array

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// box is a resource-owning element: a pointer that the test ops track.
type box struct {
	val   string
	freed bool
}

// trackingOps counts duplicates and destroys and remembers every destroyed value.
type trackingOps struct {
	dups      int
	destroyed []string
	live      map[*box]bool
}

func newTrackingOps() *trackingOps {
	return &trackingOps{live: make(map[*box]bool)}
}

func (o *trackingOps) Duplicate(b *box) *box {
	o.dups++
	c := &box{val: b.val}
	o.live[c] = true
	return c
}

func (o *trackingOps) Destroy(b *box) {
	if b == nil {
		panic("destroy called with nil element")
	}
	if b.freed {
		panic("double destroy of " + b.val)
	}
	b.freed = true
	delete(o.live, b)
	o.destroyed = append(o.destroyed, b.val)
}

func (o *trackingOps) Render(w io.Writer, b *box) error {
	_, err := fmt.Fprintf(w, "%q", b.val)
	return err
}

var intOps = Funcs[int]{}

func TestNew_Empty(t *testing.T) {
	a, err := New[int](intOps)
	require.NoError(t, err)
	require.Equal(t, 0, a.Len())

	_, err = a.Get(0)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.True(t, IsAbsent(err))
}

func TestNew_Errors(t *testing.T) {
	_, err := New[int](nil)
	require.ErrorIs(t, err, ErrNilOps)

	_, err = New[int](intOps, WithMaxLen(0))
	require.ErrorIs(t, err, ErrBadOption)

	_, err = New[int](intOps, WithCapacity(-1))
	require.ErrorIs(t, err, ErrBadOption)

	_, err = New[int](intOps, WithCapacity(10), WithMaxLen(4))
	require.ErrorIs(t, err, ErrAlloc)

	_, err = New[int](intOps, WithFormat("fancy"))
	require.ErrorIs(t, err, ErrBadOption)
}

func TestNew_CapacityDoesNotChangeLen(t *testing.T) {
	a, err := New[int](intOps, WithCapacity(16))
	require.NoError(t, err)
	require.Equal(t, 0, a.Len())
	require.Equal(t, 16, a.Stats().Cap)
}

func TestSet_GrowsWithEmptyGap(t *testing.T) {
	a, err := New[int](intOps)
	require.NoError(t, err)

	require.NoError(t, a.Set(3, 42))
	require.Equal(t, 4, a.Len())

	for i := 0; i < 3; i++ {
		_, err := a.Get(i)
		require.ErrorIs(t, err, ErrEmptySlot, "index %d", i)
		require.False(t, a.Has(i))
	}

	v, err := a.Get(3)
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.True(t, a.Has(3))
}

func TestSet_ZeroValueIsStored(t *testing.T) {
	a, err := New[int](intOps)
	require.NoError(t, err)

	require.NoError(t, a.Set(1, 0))
	v, err := a.Get(1)
	require.NoError(t, err)
	require.Equal(t, 0, v)

	_, err = a.Get(0)
	require.ErrorIs(t, err, ErrEmptySlot)
}

func TestSet_WithinLengthKeepsLength(t *testing.T) {
	a, err := New[int](intOps)
	require.NoError(t, err)

	require.NoError(t, a.Set(5, 1))
	require.NoError(t, a.Set(2, 2))
	require.Equal(t, 6, a.Len())

	require.NoError(t, a.Set(9, 3))
	require.Equal(t, 10, a.Len())
	for i := 6; i < 9; i++ {
		require.False(t, a.Has(i))
	}
	v, err := a.Get(5)
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestSet_NegativeIndex(t *testing.T) {
	a, err := New[int](intOps)
	require.NoError(t, err)

	err = a.Set(-1, 7)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Equal(t, 0, a.Len())
}

func TestSet_GrowthFailureLeavesStateUnchanged(t *testing.T) {
	ops := newTrackingOps()
	a, err := New[*box](ops, WithMaxLen(4))
	require.NoError(t, err)

	require.NoError(t, a.Set(1, &box{val: "x"}))
	before := a.Stats()

	err = a.Set(4, &box{val: "y"})
	require.ErrorIs(t, err, ErrAlloc)
	require.Equal(t, before, a.Stats())
	require.Equal(t, 1, ops.dups, "failed set must not duplicate")

	got, err := a.Get(1)
	require.NoError(t, err)
	require.Equal(t, "x", got.val)

	// Still usable up to the limit.
	require.NoError(t, a.Set(3, &box{val: "z"}))
	require.Equal(t, 4, a.Len())
}

func TestSet_HugeIndexDoesNotOverflow(t *testing.T) {
	a, err := New[int](intOps, WithMaxLen(math.MaxInt-1))
	require.NoError(t, err)

	err = a.Set(math.MaxInt, 1)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAlloc)
	require.Equal(t, 0, a.Len())
}

// wide is a large value element: 256 bytes per slot.
type wide [32]int64

func TestSet_DefaultLimitsRejectHugeIndex(t *testing.T) {
	tests := []struct {
		name string
		set  func(t *testing.T) (int, error)
	}{
		{
			name: "int",
			set: func(t *testing.T) (int, error) {
				a, err := New[int](intOps)
				require.NoError(t, err)
				err = a.Set(DefaultMaxLen-1, 1)
				return a.Len(), err
			},
		},
		{
			name: "wide",
			set: func(t *testing.T) (int, error) {
				a, err := New[wide](Funcs[wide]{})
				require.NoError(t, err)
				err = a.Set(DefaultMaxLen-1, wide{})
				return a.Len(), err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.set(t)
			require.ErrorIs(t, err, ErrAlloc)
			require.Equal(t, 0, n)
		})
	}
}

func TestSet_MaxBytes(t *testing.T) {
	size := int(unsafe.Sizeof(slot[int]{}))
	a, err := New[int](intOps, WithMaxBytes(8*size))
	require.NoError(t, err)

	require.NoError(t, a.Set(7, 1))
	require.LessOrEqual(t, a.Stats().Cap, 8)

	err = a.Set(8, 2)
	require.ErrorIs(t, err, ErrAlloc)
	require.Equal(t, 8, a.Len())
}

func TestNew_MaxBytesErrors(t *testing.T) {
	_, err := New[int](intOps, WithMaxBytes(0))
	require.ErrorIs(t, err, ErrBadOption)

	_, err = New[int](intOps, WithCapacity(4), WithMaxBytes(1))
	require.ErrorIs(t, err, ErrAlloc)
}

func TestSet_StoresIndependentCopy(t *testing.T) {
	ops := newTrackingOps()
	a, err := New[*box](ops)
	require.NoError(t, err)

	orig := &box{val: "a"}
	require.NoError(t, a.Set(0, orig))
	orig.val = "mutated"

	got, err := a.Get(0)
	require.NoError(t, err)
	require.Equal(t, "a", got.val)
	require.NotSame(t, orig, got)

	got.val = "changed"
	again, err := a.Get(0)
	require.NoError(t, err)
	require.Equal(t, "a", again.val)
	require.NotSame(t, got, again)
}

func TestSet_OverwriteDestroysPrevious(t *testing.T) {
	ops := newTrackingOps()
	a, err := New[*box](ops)
	require.NoError(t, err)

	require.NoError(t, a.Set(0, &box{val: "a"}))
	require.NoError(t, a.Set(0, &box{val: "b"}))

	require.Equal(t, []string{"a"}, ops.destroyed)
	require.Equal(t, 1, a.Stats().Overwrites)

	got, err := a.Get(0)
	require.NoError(t, err)
	require.Equal(t, "b", got.val)
}

func TestFree_DestroysOccupiedOnly(t *testing.T) {
	ops := newTrackingOps()
	a, err := New[*box](ops)
	require.NoError(t, err)

	require.NoError(t, a.Set(0, &box{val: "a"}))
	require.NoError(t, a.Set(4, &box{val: "e"}))
	require.NoError(t, a.Set(2, &box{val: "c"}))
	require.Len(t, ops.live, 3)

	a.Free()
	require.Equal(t, []string{"a", "c", "e"}, ops.destroyed)
	require.Empty(t, ops.live)

	// Second free is a no-op.
	a.Free()
	require.Len(t, ops.destroyed, 3)
}

func TestFree_NilArray(t *testing.T) {
	var a *Array[int]
	require.NotPanics(t, a.Free)
}

func TestInvalidHandle(t *testing.T) {
	tests := []struct {
		name string
		arr  func(t *testing.T) *Array[int]
	}{
		{
			name: "nil",
			arr:  func(t *testing.T) *Array[int] { return nil },
		},
		{
			name: "freed",
			arr: func(t *testing.T) *Array[int] {
				a, err := New[int](intOps)
				require.NoError(t, err)
				require.NoError(t, a.Set(0, 1))
				a.Free()
				return a
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.arr(t)

			require.Equal(t, SizeInvalid, a.Len())
			require.ErrorIs(t, a.Set(0, 1), ErrInvalidHandle)

			_, err := a.Get(0)
			require.ErrorIs(t, err, ErrInvalidHandle)
			require.True(t, IsAbsent(err))
			require.False(t, a.Has(0))

			var buf bytes.Buffer
			require.ErrorIs(t, a.Render(&buf), ErrInvalidHandle)
			require.Empty(t, buf.String())
			require.Equal(t, "<nil>", a.String())
			require.Equal(t, SizeInvalid, a.Stats().Len)
		})
	}
}

func TestGet_OutOfRange(t *testing.T) {
	a, err := New[int](intOps)
	require.NoError(t, err)
	require.NoError(t, a.Set(2, 9))

	for _, idx := range []int{-5, -1, 3, 100} {
		_, err := a.Get(idx)
		require.ErrorIs(t, err, ErrOutOfRange, "index %d", idx)
		require.False(t, a.Has(idx))
	}
}

func TestGrowth_AmortizedCapacity(t *testing.T) {
	a, err := New[int](intOps)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, a.Set(i, i*i))
	}
	st := a.Stats()
	require.Equal(t, 100, st.Len)
	require.Equal(t, 100, st.Occupied)
	require.Equal(t, 100, st.Writes)
	require.GreaterOrEqual(t, st.Cap, 100)

	for i := 0; i < 100; i++ {
		v, err := a.Get(i)
		require.NoError(t, err)
		require.Equal(t, i*i, v)
	}
}

func TestGrowth_ReusedCapacityStartsEmpty(t *testing.T) {
	a, err := New[int](intOps, WithCapacity(8))
	require.NoError(t, err)

	require.NoError(t, a.Set(0, 1))
	require.NoError(t, a.Set(6, 2))
	require.Equal(t, 8, a.Stats().Cap)

	for i := 1; i < 6; i++ {
		_, err := a.Get(i)
		assert.ErrorIs(t, err, ErrEmptySlot, "index %d", i)
	}
}

func TestIsAbsent(t *testing.T) {
	require.True(t, IsAbsent(fmt.Errorf("wrapped: %w", ErrEmptySlot)))
	require.True(t, IsAbsent(ErrOutOfRange))
	require.False(t, IsAbsent(ErrAlloc))
	require.False(t, IsAbsent(nil))
	require.False(t, IsAbsent(errors.New("other")))
}
