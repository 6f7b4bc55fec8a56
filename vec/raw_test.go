package vec

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u32(vals ...uint32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(b[4*i:], v)
	}
	return b
}

func values(t *testing.T, v *Raw) []uint32 {
	t.Helper()
	require.Equal(t, 4, v.Stride())
	out := make([]uint32, 0, v.Len())
	c := v.Cursor()
	elem := make([]byte, 4)
	for c.Next(elem) {
		out = append(out, binary.BigEndian.Uint32(elem))
	}
	return out
}

func requireValues(t *testing.T, v *Raw, want ...uint32) {
	t.Helper()
	if want == nil {
		want = []uint32{}
	}
	if diff := cmp.Diff(want, values(t, v)); diff != "" {
		t.Fatalf("unexpected elements (-want +got):\n%s", diff)
	}
}

func TestNewRaw(t *testing.T) {
	v := NewRaw(4)
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
	assert.Nil(t, v.Data())
	assert.Nil(t, v.At(0))

	assert.Panics(t, func() { NewRaw(0) })
	assert.Panics(t, func() { NewRaw(-4) })
}

func TestNewRawWithCapacity(t *testing.T) {
	v := NewRawWithCapacity(8, 10)
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 10, v.Cap())
	assert.NotNil(t, v.Data())
	assert.Empty(t, v.Data())

	assert.Equal(t, 2, NewRawWithCapacity(8, 1).Cap())
	assert.Equal(t, 0, NewRawWithCapacity(8, 0).Cap())
}

func TestNewRawZeroed(t *testing.T) {
	v := NewRawZeroed(4, 5)
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, make([]byte, 20), v.Data())

	empty := NewRawZeroed(4, 0)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, empty.Cap())
}

func TestNewRawFrom(t *testing.T) {
	src := u32(5, 6, 7, 8)
	v, err := NewRawFrom(4, src, 3)
	require.NoError(t, err)
	requireValues(t, v, 5, 6, 7)

	// The array owns a copy.
	src[0] = 0xff
	requireValues(t, v, 5, 6, 7)

	_, err = NewRawFrom(4, src, 5)
	assert.True(t, errors.Is(err, ErrShortBuffer))
	_, err = NewRawFrom(4, src, 0)
	assert.True(t, errors.Is(err, ErrInvalidCount))
}

func TestRawScenario(t *testing.T) {
	v := NewRaw(4)
	for _, x := range []uint32{1, 2, 3} {
		require.NoError(t, v.Push(u32(x)))
	}
	require.NoError(t, v.InsertAt(1, u32(9), 1))
	requireValues(t, v, 1, 9, 2, 3)

	out := make([]byte, 4)
	require.NoError(t, v.RemoveAt(0, 1, out))
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(out))
	requireValues(t, v, 9, 2, 3)
	assert.Equal(t, 3, v.Len())
}

func TestRawInsertAt(t *testing.T) {
	v, err := NewRawFrom(4, u32(1, 2, 3), 3)
	require.NoError(t, err)

	require.NoError(t, v.InsertAt(0, u32(10, 11), 2))
	requireValues(t, v, 10, 11, 1, 2, 3)
	require.NoError(t, v.InsertAt(5, u32(20), 1))
	requireValues(t, v, 10, 11, 1, 2, 3, 20)
	require.NoError(t, v.InsertAt(3, u32(30, 31, 32, 33), 3))
	requireValues(t, v, 10, 11, 1, 30, 31, 32, 2, 3, 20)
}

func TestRawInsertAtInvalid(t *testing.T) {
	v, err := NewRawFrom(4, u32(1, 2, 3), 3)
	require.NoError(t, err)
	capBefore := v.Cap()

	tests := []struct {
		name  string
		pos   int
		elems []byte
		n     int
		err   error
	}{
		{"past the end", 4, u32(9), 1, ErrOutOfRange},
		{"negative position", -1, u32(9), 1, ErrOutOfRange},
		{"zero count", 0, u32(9), 0, ErrInvalidCount},
		{"negative count", 0, u32(9), -1, ErrInvalidCount},
		{"short source", 0, u32(9), 2, ErrShortBuffer},
		{"partial element", 0, []byte{1, 2, 3}, 1, ErrShortBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.InsertAt(tt.pos, tt.elems, tt.n)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
			requireValues(t, v, 1, 2, 3)
			assert.Equal(t, capBefore, v.Cap())
		})
	}
}

func TestRawInsertFromItself(t *testing.T) {
	v, err := NewRawFrom(4, u32(1, 2, 3), 3)
	require.NoError(t, err)
	v.Reserve(10)

	// The source is shifted by the insertion itself.
	require.NoError(t, v.InsertAt(0, v.Data()[4:], 2))
	requireValues(t, v, 2, 3, 1, 2, 3)

	// Same, when the insertion has to reallocate.
	v.ShrinkToFit()
	require.NoError(t, v.InsertAt(1, v.At(4), 1))
	requireValues(t, v, 2, 3, 3, 1, 2, 3)
}

func TestRawRemoveAt(t *testing.T) {
	v, err := NewRawFrom(4, u32(1, 2, 3, 4, 5, 6), 6)
	require.NoError(t, err)

	out := make([]byte, 8)
	require.NoError(t, v.RemoveAt(2, 2, out))
	assert.Equal(t, u32(3, 4), out)
	requireValues(t, v, 1, 2, 5, 6)

	// Removing the tail, without copying out.
	require.NoError(t, v.RemoveAt(2, 2, nil))
	requireValues(t, v, 1, 2)

	for _, tc := range []struct {
		pos, n int
		out    []byte
		err    error
	}{
		{2, 1, nil, ErrOutOfRange},
		{1, 2, nil, ErrOutOfRange},
		{-1, 1, nil, ErrOutOfRange},
		{0, 0, nil, ErrInvalidCount},
		{0, 2, make([]byte, 4), ErrShortBuffer},
	} {
		err := v.RemoveAt(tc.pos, tc.n, tc.out)
		assert.True(t, errors.Is(err, tc.err), "RemoveAt(%d, %d): %v", tc.pos, tc.n, err)
		requireValues(t, v, 1, 2)
	}
}

func TestRawPushPop(t *testing.T) {
	v := NewRaw(4)
	require.NoError(t, v.Push(u32(7)))
	require.NoError(t, v.Push(u32(8)))

	out := make([]byte, 4)
	require.NoError(t, v.Pop(out))
	assert.Equal(t, u32(8), out)
	require.NoError(t, v.Pop(nil))
	assert.Equal(t, 0, v.Len())

	assert.True(t, errors.Is(v.Pop(out), ErrOutOfRange))
	assert.True(t, errors.Is(v.Push([]byte{1}), ErrShortBuffer))
}

func TestRawGetSet(t *testing.T) {
	v, err := NewRawFrom(4, u32(1, 2, 3), 3)
	require.NoError(t, err)

	out := make([]byte, 4)
	require.NoError(t, v.Get(1, out))
	assert.Equal(t, u32(2), out)

	require.NoError(t, v.Set(1, u32(42)))
	requireValues(t, v, 1, 42, 3)

	assert.True(t, errors.Is(v.Get(3, out), ErrOutOfRange))
	assert.True(t, errors.Is(v.Get(0, out[:2]), ErrShortBuffer))
	assert.True(t, errors.Is(v.Set(-1, u32(0)), ErrOutOfRange))
	assert.True(t, errors.Is(v.Set(0, []byte{0}), ErrShortBuffer))
	requireValues(t, v, 1, 42, 3)
}

func TestRawSwap(t *testing.T) {
	v, err := NewRawFrom(4, u32(1, 2, 3), 3)
	require.NoError(t, err)

	scratch := make([]byte, 4)
	require.NoError(t, v.Swap(0, 2, scratch))
	requireValues(t, v, 3, 2, 1)
	require.NoError(t, v.Swap(1, 1, scratch))
	require.NoError(t, v.Swap(0, 1, nil))
	requireValues(t, v, 2, 3, 1)

	assert.True(t, errors.Is(v.Swap(0, 3, scratch), ErrOutOfRange))
	assert.True(t, errors.Is(v.Swap(0, 1, scratch[:1]), ErrShortBuffer))
	requireValues(t, v, 2, 3, 1)
}

func TestRawSort(t *testing.T) {
	v, err := NewRawFrom(4, u32(5, 1, 4, 1, 3, 9, 2), 7)
	require.NoError(t, err)

	v.Sort(Ascending)
	requireValues(t, v, 1, 1, 2, 3, 4, 5, 9)
	v.Sort(Ascending)
	requireValues(t, v, 1, 1, 2, 3, 4, 5, 9)

	v.Sort(Descending)
	requireValues(t, v, 9, 5, 4, 3, 2, 1, 1)
	v.Sort(Descending)
	requireValues(t, v, 9, 5, 4, 3, 2, 1, 1)

	// Degenerate arrays
	NewRaw(4).Sort(Ascending)
	one, err := NewRawFrom(4, u32(1), 1)
	require.NoError(t, err)
	one.Sort(Descending)
	requireValues(t, one, 1)
}

func TestRawSortIsByteOrder(t *testing.T) {
	v, err := NewRawFrom(2, []byte{0x01, 0x00, 0x00, 0xff, 0x00, 0x01}, 3)
	require.NoError(t, err)
	v.Sort(Ascending)
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0xff, 0x01, 0x00}, v.Data())
}

func TestRawShrinkToFit(t *testing.T) {
	v := NewRaw(4)
	v.ShrinkToFit()
	assert.Equal(t, 0, v.Cap())

	for i := uint32(0); i < 10; i++ {
		require.NoError(t, v.Push(u32(i)))
	}
	require.NoError(t, v.RemoveAt(0, 3, nil))
	require.Greater(t, v.Cap(), v.Len())

	v.ShrinkToFit()
	assert.Equal(t, v.Len(), v.Cap())
	requireValues(t, v, 3, 4, 5, 6, 7, 8, 9)

	require.NoError(t, v.RemoveAt(0, 7, nil))
	v.ShrinkToFit()
	assert.Equal(t, 0, v.Cap())
	assert.Nil(t, v.Data())
}

func TestRawAtAndData(t *testing.T) {
	v, err := NewRawFrom(4, u32(1, 2), 2)
	require.NoError(t, err)

	assert.Equal(t, u32(1, 2), v.Data())
	assert.Equal(t, u32(2), v.At(1))
	assert.Len(t, v.At(1), 4)
	assert.Equal(t, 4, cap(v.At(0)))
	assert.Nil(t, v.At(2))
	assert.Nil(t, v.At(-1))

	// At aliases the array
	copy(v.At(0), u32(77))
	requireValues(t, v, 77, 2)
}

func TestRawClear(t *testing.T) {
	v, err := NewRawFrom(4, u32(1, 2, 3), 3)
	require.NoError(t, err)
	v.Clear()
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
	assert.Nil(t, v.Data())

	require.NoError(t, v.Push(u32(4)))
	requireValues(t, v, 4)
}

func TestRawCursors(t *testing.T) {
	a, err := NewRawFrom(4, u32(1, 2, 3), 3)
	require.NoError(t, err)
	b, err := NewRawFrom(4, u32(10, 20), 2)
	require.NoError(t, err)

	// Nested iteration over two arrays.
	var pairs [][2]uint32
	outer, ea, eb := a.Cursor(), make([]byte, 4), make([]byte, 4)
	for outer.Next(ea) {
		inner := b.Cursor()
		for inner.Next(eb) {
			pairs = append(pairs, [2]uint32{binary.BigEndian.Uint32(ea), binary.BigEndian.Uint32(eb)})
		}
	}
	assert.Equal(t, [][2]uint32{{1, 10}, {1, 20}, {2, 10}, {2, 20}, {3, 10}, {3, 20}}, pairs)

	// Exhausted until reset
	assert.False(t, outer.Next(ea))
	outer.Reset()
	require.True(t, outer.Next(ea))
	assert.Equal(t, u32(1), ea)

	// A short output buffer stops the cursor without advancing
	assert.False(t, outer.Next(ea[:2]))
	require.True(t, outer.Next(ea))
	assert.Equal(t, u32(2), ea)
}

// TestRawProperties runs random edits against a Raw array and a plain
// slice and checks that both agree.
func TestRawProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	v := NewRaw(4)
	var model []uint32

	for i := 0; i < 2000; i++ {
		switch op := rnd.Intn(6); op {
		case 0, 1:
			n := 1 + rnd.Intn(4)
			pos := rnd.Intn(len(model) + 1)
			elems := make([]uint32, n)
			for j := range elems {
				elems[j] = rnd.Uint32()
			}
			before := append([]uint32(nil), model...)
			require.NoError(t, v.InsertAt(pos, u32(elems...), n))
			model = append(model[:pos], append(elems, model[pos:]...)...)

			// insert then remove at the same place restores the sequence
			if rnd.Intn(4) == 0 {
				out := make([]byte, 4*n)
				require.NoError(t, v.RemoveAt(pos, n, out))
				assert.Equal(t, u32(elems...), out)
				model = before
			}
		case 2:
			if len(model) == 0 {
				continue
			}
			n := 1 + rnd.Intn(len(model))
			pos := rnd.Intn(len(model) - n + 1)
			require.NoError(t, v.RemoveAt(pos, n, nil))
			model = append(model[:pos], model[pos+n:]...)
		case 3:
			x := rnd.Uint32()
			require.NoError(t, v.Push(u32(x)))
			out := make([]byte, 4)
			require.NoError(t, v.Pop(out))
			assert.Equal(t, u32(x), out)
		case 4:
			n := rnd.Intn(64)
			l := v.Len()
			v.Reserve(n)
			assert.GreaterOrEqual(t, v.Cap(), n)
			assert.Equal(t, l, v.Len())
		case 5:
			v.ShrinkToFit()
			assert.Equal(t, v.Len(), v.Cap())
		}

		require.Equal(t, len(model), v.Len())
		require.LessOrEqual(t, v.Len(), v.Cap())
	}
	if len(model) == 0 {
		model = []uint32{}
	}
	assert.Equal(t, model, values(t, v))
	assert.True(t, bytes.Equal(u32(model...), v.Data()))
}
