package aggregate

import (
	"context"
	"runtime"

	"github.com/hupe1980/tickscan/record"
	"github.com/hupe1980/tickscan/view"
	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest number of records worth handing to a worker.
const minChunk = 1 << 14

// Parallel aggregates v using up to workers goroutines and returns the merged
// table. workers <= 0 means GOMAXPROCS. Small views are aggregated serially.
func Parallel(ctx context.Context, v view.View[record.Order], workers int, opts ...Option) (Table, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	n := v.Len()
	chunks := min(workers, max(1, n/minChunk))
	if chunks <= 1 {
		a := New(opts...)
		if err := a.RunContext(ctx, v); err != nil {
			return nil, err
		}
		return a.Table(), nil
	}

	var o options
	for _, fn := range opts {
		fn(&o)
	}

	tables := make([]Table, chunks)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	per := (n + chunks - 1) / chunks
	for i := range chunks {
		lo := i * per
		hi := min(lo+per, n)
		if lo >= hi {
			continue
		}
		part := v.Slice(lo, hi)
		g.Go(func() error {
			if err := o.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer o.rc.ReleaseWorker()

			a := New(opts...)
			if err := a.RunContext(gctx, part); err != nil {
				return err
			}
			tables[i] = a.Table()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := tables[0]
	for _, t := range tables[1:] {
		out.Merge(t)
	}
	return out, nil
}
