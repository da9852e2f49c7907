package benchmark_test

import (
	"context"
	"fmt"
	"testing"
	"unsafe"

	"github.com/hupe1980/tickscan"
	"github.com/hupe1980/tickscan/aggregate"
	"github.com/hupe1980/tickscan/compress"
	"github.com/hupe1980/tickscan/record"
	"github.com/hupe1980/tickscan/testutil"
	"github.com/hupe1980/tickscan/view"
)

const benchOrders = 1 << 20

func writeBenchFile(b *testing.B, name string, kind compress.Kind) string {
	b.Helper()
	orders := testutil.NewRNG(1).Orders(benchOrders, 5000)
	if kind == compress.None {
		return testutil.WriteOrders(b, b.TempDir(), name, orders)
	}
	return testutil.WriteCompressed(b, b.TempDir(), name, kind, orders)
}

func BenchmarkOpen(b *testing.B) {
	cases := []struct {
		name string
		file string
		kind compress.Kind
		mode tickscan.Mode
	}{
		{"mapped", "orders.bin", compress.None, tickscan.ModeMapped},
		{"buffered", "orders.bin", compress.None, tickscan.ModeBuffered},
		{"zstd", "orders.bin.zst", compress.Zstd, tickscan.ModeCompressed},
		{"lz4", "orders.bin.lz4", compress.LZ4, tickscan.ModeCompressed},
		{"s2", "orders.bin.s2", compress.S2, tickscan.ModeCompressed},
	}
	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			path := writeBenchFile(b, tc.file, tc.kind)
			b.SetBytes(benchOrders * record.Size)
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				sc, err := tickscan.Open(context.Background(), path, tickscan.WithMode(tc.mode))
				if err != nil {
					b.Fatal(err)
				}
				_ = sc.Close()
			}
		})
	}
}

func BenchmarkStats(b *testing.B) {
	path := writeBenchFile(b, "orders.bin", compress.None)
	ctx := context.Background()

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			sc, err := tickscan.Open(ctx, path, tickscan.WithWorkers(workers))
			if err != nil {
				b.Fatal(err)
			}
			defer sc.Close()

			b.SetBytes(sc.Size())
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				if _, _, err := sc.Stats(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkTotalVolume(b *testing.B) {
	path := writeBenchFile(b, "orders.bin", compress.None)
	sc, err := tickscan.Open(context.Background(), path)
	if err != nil {
		b.Fatal(err)
	}
	defer sc.Close()

	v := sc.View()
	b.Run("view", func(b *testing.B) {
		b.SetBytes(sc.Size())
		for b.Loop() {
			_ = aggregate.TotalVolumeView(v)
		}
	})
	b.Run("net-size-field", func(b *testing.B) {
		sizes, err := view.Project[record.Order, int32](v, unsafe.Offsetof(record.Order{}.Size))
		if err != nil {
			b.Fatal(err)
		}
		b.SetBytes(sc.Size())
		for b.Loop() {
			_ = view.Sum(sizes, int32(0))
		}
	})
}
