//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt64ToInt(t *testing.T) {
	got, err := Int64ToInt(24 * 1_000_000)
	assert.NoError(t, err)
	assert.Equal(t, 24_000_000, got)

	got, err = Int64ToInt(math.MaxInt64)
	assert.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)
}
