// Package aggregate folds order streams into per-instrument statistics.
//
// An Aggregator makes a single pass over any sequence of orders and keeps one
// Stats entry per distinct instrument id, so memory grows with the number of
// instruments and not with the number of records:
//
//	agg := aggregate.New()
//	if err := agg.RunView(src.View()); err != nil { ... }
//	for _, id := range agg.Table().Keys() { ... }
//
// Each Aggregator is single use. Parallel splits a view into contiguous
// chunks, aggregates them concurrently and merges the partial tables in file
// order, so counts, volumes and last prices match the serial pass exactly.
// VWAP accumulators are floating-point sums and may differ in the last bits.
package aggregate
