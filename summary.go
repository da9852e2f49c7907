package tickscan

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const gib = 1 << 30

// Summary describes one scan for throughput reporting.
type Summary struct {
	RunID   uuid.UUID
	Records int
	Bytes   int64
	Elapsed time.Duration
}

// MicrosPerRecord returns the mean time per record in microseconds.
func (s Summary) MicrosPerRecord() float64 {
	if s.Records == 0 {
		return 0
	}
	return float64(s.Elapsed) / float64(time.Microsecond) / float64(s.Records)
}

// GibitPerSec returns the scan rate in gibibits per second.
func (s Summary) GibitPerSec() float64 {
	secs := s.Elapsed.Seconds()
	if secs == 0 {
		return 0
	}
	return float64(s.Bytes) / gib * 8 / secs
}

// String renders the summary as "elapsed: 0.41 = 0.0041 µs/rec  43.6 Gib/s".
func (s Summary) String() string {
	return fmt.Sprintf("elapsed: %.6g = %.6g µs/rec  %.6g Gib/s",
		s.Elapsed.Seconds(), s.MicrosPerRecord(), s.GibitPerSec())
}
