package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocAligned(t *testing.T) {
	sizes := []int{1, 10, 24, 63, 64, 65, 100, 1024, 24 * 1000}

	for _, size := range sizes {
		buf := AllocAligned(size)
		assert.Len(t, buf, size)
		assert.Equal(t, size, cap(buf), "capacity must not expose padding for size %d", size)
		assert.True(t, IsAligned(buf, Alignment), "size %d", size)
	}

	assert.Nil(t, AllocAligned(0))
	assert.Nil(t, AllocAligned(-1))
}

func TestIsAligned(t *testing.T) {
	buf := AllocAligned(128)

	assert.True(t, IsAligned(buf, 8))
	assert.False(t, IsAligned(buf[1:], 8))
	assert.True(t, IsAligned(buf[8:], 8))
	assert.True(t, IsAligned(nil, 8))
}
