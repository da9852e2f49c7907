package aggregate

import (
	"fmt"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/tickscan/record"
)

// Stats accumulates the orders of one instrument.
type Stats struct {
	// Count is the number of orders seen.
	Count uint64
	// NetSize is the signed sum of order sizes.
	NetSize int64
	// Volume is the sum of absolute order sizes.
	Volume uint64
	// VWAPAccumulator is the sum of |size| * price.
	VWAPAccumulator float64
	// LastPrice is the price of the most recent order.
	LastPrice float32
}

func newStats(o *record.Order) Stats {
	abs := o.AbsSize()
	return Stats{
		Count:           1,
		NetSize:         int64(o.Size),
		Volume:          uint64(abs),
		VWAPAccumulator: float64(abs) * float64(o.Price),
		LastPrice:       o.Price,
	}
}

func (s *Stats) fold(o *record.Order) {
	abs := o.AbsSize()
	s.Count++
	s.NetSize += int64(o.Size)
	s.Volume += uint64(abs)
	s.VWAPAccumulator += float64(abs) * float64(o.Price)
	s.LastPrice = o.Price
}

// combine appends the statistics of a later stretch of the same stream.
func (s *Stats) combine(later Stats) {
	s.Count += later.Count
	s.NetSize += later.NetSize
	s.Volume += later.Volume
	s.VWAPAccumulator += later.VWAPAccumulator
	s.LastPrice = later.LastPrice
}

// VWAP returns the volume-weighted average price, or 0 when no volume traded.
func (s Stats) VWAP() float64 {
	if s.Volume == 0 {
		return 0
	}
	return s.VWAPAccumulator / float64(s.Volume)
}

func (s Stats) String() string {
	return fmt.Sprintf("%d volume=%d net=%d last=%g vwap=%g",
		s.Count, s.Volume, s.NetSize, s.LastPrice, s.VWAP())
}

// Table maps instrument ids to their statistics.
type Table map[uint32]Stats

// Keys returns the instrument ids in ascending order.
func (t Table) Keys() []uint32 {
	return slices.Sorted(maps.Keys(t))
}

// Instruments returns the set of instrument ids.
func (t Table) Instruments() *roaring.Bitmap {
	bm := roaring.New()
	for id := range t {
		bm.Add(id)
	}
	bm.RunOptimize()
	return bm
}

// Merge folds a table computed over a later part of the same stream into t.
// LastPrice is taken from later for instruments present in both.
func (t Table) Merge(later Table) {
	for id, s := range later {
		if cur, ok := t[id]; ok {
			cur.combine(s)
			t[id] = cur
		} else {
			t[id] = s
		}
	}
}

// TotalVolume returns the sum of |size| over all entries.
func (t Table) TotalVolume() uint64 {
	var v uint64
	for _, s := range t {
		v += s.Volume
	}
	return v
}
