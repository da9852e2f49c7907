package view

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillSumDot(t *testing.T) {
	const n = 100
	a := FromSlice(make([]float64, n))
	b := FromSlice(make([]float64, n))

	Fill(a, 10.0)
	Fill(b, 42.0)

	assert.Equal(t, n*10.0, Sum(a, 0))
	assert.Equal(t, n*42.0, Sum(b, 0))
	assert.Equal(t, 1.5+n*10.0, Sum(a, 1.5))

	dot, err := Dot(a, b, 0)
	require.NoError(t, err)
	assert.Equal(t, n*10.0*42.0, dot)
}

func TestArith_Strided(t *testing.T) {
	pairs := make([]pair, 4)
	v := FromSlice(pairs)

	as, err := Project[pair, int32](v, unsafe.Offsetof(pair{}.A))
	require.NoError(t, err)
	bs, err := Project[pair, int32](v, unsafe.Offsetof(pair{}.B))
	require.NoError(t, err)

	Fill(as, 3)
	Fill(bs, 5)

	// Filling one field leaves the interleaved field untouched.
	for _, p := range pairs {
		assert.Equal(t, pair{3, 5}, p)
	}
	assert.Equal(t, int32(12), Sum(as, 0))

	dot, err := Dot(as, bs, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(60), dot)
}

func TestArith_EmptyAndMismatch(t *testing.T) {
	empty := FromSlice([]int(nil))
	assert.Equal(t, 7, Sum(empty, 7))

	dot, err := Dot(empty, empty, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, dot)

	_, err = Dot(FromSlice([]int{1}), FromSlice([]int{1, 2}), 0)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Format(&buf, FromSlice([]float64{1, 2.5})))
	assert.Equal(t, "[1, 2.5]", buf.String())

	assert.Equal(t, "[]", FromSlice([]int(nil)).String())
}
