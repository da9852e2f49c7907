package testutil

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hupe1980/tickscan/compress"
	"github.com/hupe1980/tickscan/record"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Orders returns n orders over instrument ids [1, instruments] with increasing
// timestamps, sizes in [-500, 500] and two-decimal prices in [1, 1000).
func (r *RNG) Orders(n, instruments int) []record.Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]record.Order, n)
	ts := uint64(1_700_000_000_000_000_000)
	for i := range out {
		ts += uint64(r.rand.Intn(1_000_000))
		price := float32(math.Round((1+r.rand.Float64()*999)*100) / 100)
		out[i] = record.Order{
			Timestamp:  ts,
			Instrument: uint32(1 + r.rand.Intn(instruments)),
			Size:       int32(r.rand.Intn(1001) - 500),
			Price:      price,
			Type:       uint32(r.rand.Intn(2)),
		}
	}
	return out
}

// OrderBytes encodes orders in wire format.
func OrderBytes(orders []record.Order) []byte {
	b := make([]byte, 0, len(orders)*record.Size)
	for _, o := range orders {
		b = record.Append(b, o)
	}
	return b
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteOrders writes orders as a record file and returns its path.
func WriteOrders(tb testing.TB, dir, name string, orders []record.Order) string {
	tb.Helper()
	return WriteFile(tb, dir, name, OrderBytes(orders))
}

// WriteCompressed writes orders through the given codec and returns the path.
func WriteCompressed(tb testing.TB, dir, name string, kind compress.Kind, orders []record.Order) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	zw, err := compress.NewWriter(kind, f)
	if err != nil {
		tb.Fatalf("compress writer: %v", err)
	}
	if _, err := zw.Write(OrderBytes(orders)); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("close %s: %v", path, err)
	}
	return path
}

// Totals is the reference per-instrument aggregate used to check scanners.
type Totals struct {
	Count    uint64
	Net      int64
	Volume   uint64
	Notional float64
	Last     float32
}

// Expected folds orders naively in order.
func Expected(orders []record.Order) map[uint32]Totals {
	out := make(map[uint32]Totals)
	for _, o := range orders {
		t := out[o.Instrument]
		abs := int64(o.Size)
		if abs < 0 {
			abs = -abs
		}
		t.Count++
		t.Net += int64(o.Size)
		t.Volume += uint64(abs)
		t.Notional += float64(abs) * float64(o.Price)
		t.Last = o.Price
		out[o.Instrument] = t
	}
	return out
}

// ExpectedVolume sums |size| over orders.
func ExpectedVolume(orders []record.Order) uint64 {
	var v uint64
	for _, o := range orders {
		s := int64(o.Size)
		if s < 0 {
			s = -s
		}
		v += uint64(s)
	}
	return v
}
