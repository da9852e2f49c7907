package record

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// GeneratorConfig controls the synthetic order stream.
type GeneratorConfig struct {
	// Instruments is the size of the instrument universe. Default 5000.
	Instruments int
	// Start is the timestamp of the stream origin. Default: now.
	Start time.Time
	// MaxGap bounds the random gap between consecutive orders. Default 10s.
	MaxGap time.Duration
	// Seed makes the stream repeatable.
	Seed int64
}

// Generator produces a plausible order stream: a fixed universe of instrument
// ids drawn from [1e6, 2e6], sizes in ±{100..500}, and a per-instrument price
// that drifts upward by at most 0.2% per order and is rounded to cents.
type Generator struct {
	rng    *rand.Rand
	ids    []uint32
	prices map[uint32]float64
	ts     uint64
	maxGap float64
}

// NewGenerator creates a Generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	if cfg.Instruments <= 0 {
		cfg.Instruments = 5000
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Now()
	}
	if cfg.MaxGap <= 0 {
		cfg.MaxGap = 10 * time.Second
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // synthetic data
	g := &Generator{
		rng:    rng,
		ids:    make([]uint32, cfg.Instruments),
		prices: make(map[uint32]float64, cfg.Instruments),
		ts:     uint64(cfg.Start.UnixNano()),
		maxGap: float64(cfg.MaxGap),
	}
	for i := range g.ids {
		id := uint32(1_000_000 + rng.Intn(1_000_001))
		g.ids[i] = id
		g.prices[id] = math.Exp(2 + 4*rng.Float64())
	}
	return g
}

// Next returns the next order in timestamp order.
func (g *Generator) Next() Order {
	g.ts += uint64(g.rng.Float64() * g.maxGap)
	id := g.ids[g.rng.Intn(len(g.ids))]

	size := int32(g.rng.Intn(10) - 4) // [-4, 5]
	if size < 1 {
		size--
	}
	size *= 100

	price := math.Round(g.prices[id]*math.Exp(g.rng.Float64()*0.002)*100) / 100
	g.prices[id] = price

	return Order{
		Timestamp:  g.ts,
		Instrument: id,
		Size:       size,
		Price:      float32(price),
	}
}

// ctxCheckInterval is how many orders are generated between context checks.
const ctxCheckInterval = 1 << 16

// WriteN writes n generated orders to w.
func (g *Generator) WriteN(w *Writer, n int) error {
	return g.WriteNContext(context.Background(), w, n)
}

// WriteNContext is WriteN with periodic cancellation checks. On cancellation
// the orders written so far stay in w.
func (g *Generator) WriteNContext(ctx context.Context, w *Writer, n int) error {
	for i := 0; i < n; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := w.Write(g.Next()); err != nil {
			return err
		}
	}
	return nil
}
