package aggregate

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/tickscan/internal/resource"
	"github.com/hupe1980/tickscan/record"
	"github.com/hupe1980/tickscan/view"
)

var (
	// ErrConsumed is returned by Run on an Aggregator that already completed a pass.
	ErrConsumed = errors.New("aggregate: aggregator already consumed")
	// ErrBusy is returned by Run while another Run on the same Aggregator is in progress.
	ErrBusy = errors.New("aggregate: aggregator is running")
)

const (
	stateIdle int32 = iota
	stateRunning
	stateDone
)

// ctxCheckInterval is how many records are folded between context checks.
const ctxCheckInterval = 1 << 16

// Option configures an Aggregator or a parallel scan.
type Option func(*options)

type options struct {
	filter *roaring.Bitmap
	rc     *resource.Controller
}

// WithInstruments restricts aggregation to the given instrument ids.
// Orders for other instruments are skipped. A nil bitmap disables filtering.
func WithInstruments(ids *roaring.Bitmap) Option {
	return func(o *options) { o.filter = ids }
}

// WithController makes Parallel acquire a worker slot from rc for each chunk.
func WithController(rc *resource.Controller) Option {
	return func(o *options) { o.rc = rc }
}

// Aggregator performs one streaming pass over orders.
// It moves from idle to running to done and cannot be restarted.
type Aggregator struct {
	opts  options
	state atomic.Int32
	table Table
}

// New returns an idle Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{table: make(Table)}
	for _, fn := range opts {
		fn(&a.opts)
	}
	return a
}

// Run folds every order produced by seq. The first order of an instrument
// creates its entry; later ones update it in place. Entries are never removed.
func (a *Aggregator) Run(seq iter.Seq[*record.Order]) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.state.Store(stateDone)

	filter := a.opts.filter
	for o := range seq {
		if filter != nil && !filter.Contains(o.Instrument) {
			continue
		}
		a.add(o)
	}
	return nil
}

// RunView folds every order of v in index order.
func (a *Aggregator) RunView(v view.View[record.Order]) error {
	return a.Run(v.Values())
}

// RunContext is RunView with periodic cancellation checks.
// A cancelled pass still moves the Aggregator to done; its table is partial.
func (a *Aggregator) RunContext(ctx context.Context, v view.View[record.Order]) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.state.Store(stateDone)

	filter := a.opts.filter
	for i, o := range v.All() {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if filter != nil && !filter.Contains(o.Instrument) {
			continue
		}
		a.add(o)
	}
	return nil
}

func (a *Aggregator) begin() error {
	if a.state.CompareAndSwap(stateIdle, stateRunning) {
		return nil
	}
	if a.state.Load() == stateRunning {
		return ErrBusy
	}
	return ErrConsumed
}

func (a *Aggregator) add(o *record.Order) {
	if s, ok := a.table[o.Instrument]; ok {
		s.fold(o)
		a.table[o.Instrument] = s
		return
	}
	a.table[o.Instrument] = newStats(o)
}

// Done reports whether a pass has completed.
func (a *Aggregator) Done() bool {
	return a.state.Load() == stateDone
}

// Table returns the aggregated statistics, or nil before a pass has completed.
func (a *Aggregator) Table() Table {
	if !a.Done() {
		return nil
	}
	return a.table
}

// TotalVolume sums |size| over seq in constant memory.
func TotalVolume(seq iter.Seq[*record.Order]) uint64 {
	var v uint64
	for o := range seq {
		v += uint64(o.AbsSize())
	}
	return v
}

// TotalVolumeView sums |size| over v.
func TotalVolumeView(v view.View[record.Order]) uint64 {
	return TotalVolume(v.Values())
}

// TotalVolumeContext is TotalVolumeView with periodic cancellation checks.
// A cancelled pass returns the context error and a partial sum.
func TotalVolumeContext(ctx context.Context, v view.View[record.Order]) (uint64, error) {
	var total uint64
	for i, o := range v.All() {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return total, err
			}
		}
		total += uint64(o.AbsSize())
	}
	return total, nil
}
