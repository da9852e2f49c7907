package view

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A int32
	B int32
}

func TestFromSlice_PackedAddressing(t *testing.T) {
	s := []int64{10, 20, 30, 40}
	v := FromSlice(s)

	assert.Equal(t, 4, v.Len())
	assert.Equal(t, 8, v.Stride())
	assert.True(t, v.Packed())

	for i := range s {
		want := uintptr(v.Base()) + uintptr(v.Stride()*i)
		assert.Equal(t, want, uintptr(v.Addr(i)))
		assert.Same(t, &s[i], v.At(i))
	}
}

func TestMake_StridedAddressing(t *testing.T) {
	buf := make([]int64, 12)
	v, err := Make[int64](unsafe.Pointer(&buf[0]), 4, 24)
	require.NoError(t, err)

	assert.False(t, v.Packed())
	for i := 0; i < v.Len(); i++ {
		assert.Same(t, &buf[3*i], v.At(i))
		assert.Equal(t, uintptr(v.Base())+uintptr(24*i), uintptr(v.Addr(i)))
	}
}

func TestMake_Validation(t *testing.T) {
	buf := make([]int64, 4)
	base := unsafe.Pointer(&buf[0])

	_, err := Make[int64](base, -1, 8)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Make[int64](nil, 2, 8)
	assert.ErrorIs(t, err, ErrNilBase)

	_, err = Make[int64](base, 2, 4)
	assert.ErrorIs(t, err, ErrInvalidStride)

	_, err = Make[int64](base, 2, 12)
	assert.ErrorIs(t, err, ErrMisaligned)

	// A single element never overlaps, whatever the stride.
	v, err := Make[int64](base, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Len())

	empty, err := Make[int64](nil, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestIndexing_Bounds(t *testing.T) {
	const n = 5
	v := FromSlice([]int{0, 1, 2, 3, 4})

	for i := -n; i < n; i++ {
		e, err := v.Lookup(i)
		require.NoError(t, err, "index %d", i)
		want := i
		if want < 0 {
			want += n
		}
		assert.Equal(t, want, *e)
		assert.Equal(t, want, *v.At(i))
	}

	for _, i := range []int{n, -n - 1, 100, -100} {
		_, err := v.Lookup(i)
		require.ErrorIs(t, err, ErrOutOfRange, "index %d", i)

		var ie *IndexError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, i, ie.Index)
		assert.Equal(t, n, ie.Length)

		assert.Panics(t, func() { v.At(i) }, "index %d", i)
	}
}

func TestIndexing_Empty(t *testing.T) {
	v := FromSlice([]int(nil))
	assert.Equal(t, 0, v.Len())

	_, err := v.Lookup(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = v.Lookup(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	count := 0
	for range v.All() {
		count++
	}
	assert.Zero(t, count)
}

func TestFromBytes(t *testing.T) {
	buf := make([]int64, 6)
	for i := range buf {
		buf[i] = int64(i)
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), len(buf)*8)

	packed, err := FromBytes[int64](raw, 8)
	require.NoError(t, err)
	assert.Equal(t, 6, packed.Len())
	assert.Equal(t, int64(5), *packed.At(-1))

	every3rd, err := FromBytes[int64](raw, 24)
	require.NoError(t, err)
	assert.Equal(t, 2, every3rd.Len())
	assert.Equal(t, int64(3), *every3rd.At(1))

	_, err = FromBytes[int64](raw[:20], 8)
	assert.ErrorIs(t, err, ErrPartialElement)

	_, err = FromBytes[int64](raw[4:20], 8)
	assert.ErrorIs(t, err, ErrMisaligned)

	_, err = FromBytes[int64](raw, 4)
	assert.ErrorIs(t, err, ErrInvalidStride)

	empty, err := FromBytes[int64](nil, 8)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestSliceStepReverse(t *testing.T) {
	v := FromSlice([]int{0, 1, 2, 3, 4, 5, 6})

	sub := v.Slice(2, 5)
	assert.Equal(t, "[2, 3, 4]", sub.String())
	assert.Equal(t, 0, v.Slice(7, 7).Len())
	assert.Panics(t, func() { v.Slice(3, 2) })
	assert.Panics(t, func() { v.Slice(0, 8) })

	assert.Equal(t, "[0, 3, 6]", v.Step(3).String())
	assert.Equal(t, "[0, 2, 4, 6]", v.Step(2).String())
	assert.Equal(t, 24, v.Step(3).Stride())
	assert.Panics(t, func() { v.Step(0) })

	rev := v.Reverse()
	assert.Equal(t, "[6, 5, 4, 3, 2, 1, 0]", rev.String())
	assert.Equal(t, -v.Stride(), rev.Stride())
	assert.Equal(t, 6, *rev.At(0))
	assert.Equal(t, 0, *rev.At(-1))
	assert.Equal(t, v.String(), rev.Reverse().String())
}

func TestProject(t *testing.T) {
	pairs := []pair{{1, 10}, {2, 20}, {3, 30}}
	v := FromSlice(pairs)

	bs, err := Project[pair, int32](v, unsafe.Offsetof(pair{}.B))
	require.NoError(t, err)
	assert.Equal(t, 3, bs.Len())
	assert.Equal(t, 8, bs.Stride())
	assert.Equal(t, "[10, 20, 30]", bs.String())
	assert.Same(t, &pairs[1].B, bs.At(1))

	_, err = Project[pair, int64](v, 4)
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = Project[pair, int32](v, 2)
	assert.ErrorIs(t, err, ErrMisaligned)
}
