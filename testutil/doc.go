// Package testutil provides helpers for tests and benchmarks.
//
// It generates reproducible order streams and writes them as record files,
// plain or compressed:
//
//	rng := testutil.NewRNG(seed)
//	orders := rng.Orders(1000, 50)
//	path := testutil.WriteOrders(t, t.TempDir(), "orders.dat", orders)
//
// The reference aggregation in Expected is a deliberately naive map fold that
// the optimised scanners are checked against.
package testutil
