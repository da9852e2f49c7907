package aggregate

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/tickscan/internal/resource"
	"github.com/hupe1980/tickscan/record"
	"github.com/hupe1980/tickscan/testutil"
	"github.com/hupe1980/tickscan/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []record.Order {
	return []record.Order{
		{Timestamp: 1, Instrument: 1, Size: 5, Price: 10.0},
		{Timestamp: 2, Instrument: 1, Size: -3, Price: 12.0},
		{Timestamp: 3, Instrument: 2, Size: 2, Price: 5.0},
	}
}

func TestAggregator_Example(t *testing.T) {
	agg := New()
	require.NoError(t, agg.RunView(view.FromSlice(sample())))

	table := agg.Table()
	require.Len(t, table, 2)

	assert.Equal(t, Stats{Count: 2, NetSize: 2, Volume: 8, VWAPAccumulator: 86.0, LastPrice: 12.0}, table[1])
	assert.Equal(t, Stats{Count: 1, NetSize: 2, Volume: 2, VWAPAccumulator: 10.0, LastPrice: 5.0}, table[2])
	assert.InDelta(t, 10.75, table[1].VWAP(), 1e-12)
	assert.Equal(t, []uint32{1, 2}, table.Keys())
	assert.Equal(t, uint64(10), table.TotalVolume())
	assert.Equal(t, uint64(10), TotalVolumeView(view.FromSlice(sample())))
}

func TestAggregator_Empty(t *testing.T) {
	agg := New()
	assert.Nil(t, agg.Table())
	require.NoError(t, agg.Run(view.View[record.Order]{}.Values()))
	assert.NotNil(t, agg.Table())
	assert.Empty(t, agg.Table())
	assert.Equal(t, uint64(0), TotalVolumeView(view.View[record.Order]{}))
}

func TestAggregator_SingleUse(t *testing.T) {
	agg := New()
	v := view.FromSlice(sample())
	require.NoError(t, agg.RunView(v))
	assert.ErrorIs(t, agg.RunView(v), ErrConsumed)
	assert.True(t, agg.Done())
}

func TestAggregator_Busy(t *testing.T) {
	agg := New()
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = agg.Run(func(yield func(*record.Order) bool) {
			close(started)
			<-release
		})
	}()

	<-started
	assert.ErrorIs(t, agg.Run(view.FromSlice(sample()).Values()), ErrBusy)
	close(release)
	wg.Wait()
	assert.ErrorIs(t, agg.Run(view.FromSlice(sample()).Values()), ErrConsumed)
}

func TestAggregator_Idempotent(t *testing.T) {
	orders := testutil.NewRNG(99).Orders(5000, 40)
	v := view.FromSlice(orders)

	a, b := New(), New()
	require.NoError(t, a.RunView(v))
	require.NoError(t, b.RunView(v))
	assert.Equal(t, a.Table(), b.Table())
}

func TestAggregator_MatchesReference(t *testing.T) {
	orders := testutil.NewRNG(5).Orders(20000, 100)
	want := testutil.Expected(orders)

	agg := New()
	require.NoError(t, agg.RunView(view.FromSlice(orders)))
	got := agg.Table()

	require.Len(t, got, len(want))
	for id, w := range want {
		s := got[id]
		assert.Equal(t, w.Count, s.Count)
		assert.Equal(t, w.Net, s.NetSize)
		assert.Equal(t, w.Volume, s.Volume)
		assert.Equal(t, w.Notional, s.VWAPAccumulator)
		assert.Equal(t, w.Last, s.LastPrice)
	}
	assert.Equal(t, testutil.ExpectedVolume(orders), TotalVolumeView(view.FromSlice(orders)))
}

func TestAggregator_Reverse(t *testing.T) {
	agg := New()
	require.NoError(t, agg.RunView(view.FromSlice(sample()).Reverse()))
	assert.Equal(t, float32(10.0), agg.Table()[1].LastPrice)
}

func TestWithInstruments(t *testing.T) {
	agg := New(WithInstruments(roaring.BitmapOf(2)))
	require.NoError(t, agg.RunView(view.FromSlice(sample())))

	table := agg.Table()
	assert.Equal(t, []uint32{2}, table.Keys())
	assert.Equal(t, []uint32{2}, table.Instruments().ToArray())
}

func TestTable_Merge(t *testing.T) {
	orders := sample()

	head, tail := New(), New()
	require.NoError(t, head.RunView(view.FromSlice(orders[:1])))
	require.NoError(t, tail.RunView(view.FromSlice(orders[1:])))

	merged := head.Table()
	merged.Merge(tail.Table())

	whole := New()
	require.NoError(t, whole.RunView(view.FromSlice(orders)))
	assert.Equal(t, whole.Table(), merged)
}

func TestRunContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := New()
	err := agg.RunContext(ctx, view.FromSlice(sample()))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, agg.RunContext(context.Background(), view.FromSlice(sample())), ErrConsumed)
}

func TestParallel_MatchesSerial(t *testing.T) {
	// Integer prices keep the float sums exact in any order.
	orders := testutil.NewRNG(77).Orders(100_000, 64)
	for i := range orders {
		orders[i].Price = float32(1 + i%50)
	}
	v := view.FromSlice(orders)

	serial := New()
	require.NoError(t, serial.RunView(v))

	rc := resource.NewController(resource.Config{MaxWorkers: 2})
	for _, workers := range []int{0, 1, 3, 8} {
		got, err := Parallel(context.Background(), v, workers, WithController(rc))
		require.NoError(t, err)
		assert.Equal(t, serial.Table(), got, "workers=%d", workers)
	}
}

func TestParallel_Cancelled(t *testing.T) {
	orders := testutil.NewRNG(1).Orders(100_000, 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parallel(ctx, view.FromSlice(orders), 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParallel_Filter(t *testing.T) {
	orders := testutil.NewRNG(2).Orders(50_000, 16)
	keep := roaring.BitmapOf(3, 5, 7)

	got, err := Parallel(context.Background(), view.FromSlice(orders), 4, WithInstruments(keep))
	require.NoError(t, err)
	assert.True(t, slices.Equal([]uint32{3, 5, 7}, got.Keys()))
}

func TestStats_VWAPZeroVolume(t *testing.T) {
	s := newStats(&record.Order{Instrument: 1, Size: 0, Price: 3})
	assert.Equal(t, 0.0, s.VWAP())
	assert.Equal(t, "1 volume=0 net=0 last=3 vwap=0", s.String())
}

// cancelAfter reports cancellation once Err has been called n times.
type cancelAfter struct {
	context.Context
	n int
}

func (c *cancelAfter) Err() error {
	if c.n <= 0 {
		return context.Canceled
	}
	c.n--
	return nil
}

func TestTotalVolumeContext(t *testing.T) {
	orders := make([]record.Order, 3*ctxCheckInterval)
	for i := range orders {
		orders[i] = record.Order{Instrument: 1, Size: -2}
	}
	v := view.FromSlice(orders)

	total, err := TotalVolumeContext(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, TotalVolumeView(v), total)
	assert.Equal(t, uint64(6*ctxCheckInterval), total)

	total, err = TotalVolumeContext(&cancelAfter{Context: context.Background(), n: 2}, v)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(4*ctxCheckInterval), total)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	total, err = TotalVolumeContext(ctx, v)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, total)
}
