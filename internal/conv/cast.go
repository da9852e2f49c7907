package conv

import (
	"fmt"
	"math"
)

// Int64ToInt converts int64 to int safely. File sizes arrive as int64 and must fit
// the address space before they can be mapped or allocated.
func Int64ToInt(v int64) (int, error) {
	if v < math.MinInt || v > math.MaxInt {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int", v)
	}
	return int(v), nil
}
