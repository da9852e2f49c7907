package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/compress"
	"github.com/hupe1980/tickscan/record"
	"github.com/hupe1980/tickscan/testutil"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func quietConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n"), 0o644))
	return path
}

func TestStats(t *testing.T) {
	orders := testutil.NewRNG(7).Orders(2000, 5)
	path := testutil.WriteOrders(t, t.TempDir(), "orders.bin", orders)
	cfg := quietConfig(t)

	for _, workers := range []string{"1", "3"} {
		t.Run("workers="+workers, func(t *testing.T) {
			code, out, errOut := runCmd(t, "-config", cfg, "stats", "-workers", workers, path)
			require.Equal(t, exitOK, code, errOut)

			want := testutil.Expected(orders)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			assert.Len(t, lines, len(want))
			for id, tot := range want {
				assert.Contains(t, out, fmt.Sprintf("%d: %d volume=%d net=%d last=%g", id, tot.Count, tot.Volume, tot.Net, tot.Last))
			}
			assert.Contains(t, errOut, "µs/rec")
		})
	}
}

func TestStats_Instruments(t *testing.T) {
	orders := []record.Order{
		{Timestamp: 1, Instrument: 1, Size: 3, Price: 10},
		{Timestamp: 2, Instrument: 2, Size: -2, Price: 5},
		{Timestamp: 3, Instrument: 1, Size: -5, Price: 11},
	}
	path := testutil.WriteOrders(t, t.TempDir(), "orders.bin", orders)

	code, out, errOut := runCmd(t, "-config", quietConfig(t), "stats", "-instruments", "2", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, "2: 1 volume=2 net=-2 last=5 vwap=5\n", out)
}

func TestVolume_Compressed(t *testing.T) {
	orders := testutil.NewRNG(3).Orders(500, 4)
	path := testutil.WriteCompressed(t, t.TempDir(), "orders.bin.zst", compress.Zstd, orders)

	code, out, errOut := runCmd(t, "-config", quietConfig(t), "volume", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Equal(t, fmt.Sprintf("total volume = %d\n", testutil.ExpectedVolume(orders)), out)
}

func TestGenerateThenScan(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t)

	for _, name := range []string{"gen.bin", "gen.bin.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			code, _, errOut := runCmd(t, "-config", cfg, "generate", "-n", "1000", "-seed", "11", "-instruments", "20", path)
			require.Equal(t, exitOK, code, errOut)

			code, out, errOut := runCmd(t, "-config", cfg, "volume", path)
			require.Equal(t, exitOK, code, errOut)
			assert.True(t, strings.HasPrefix(out, "total volume = "))
		})
	}

	info, err := os.Stat(filepath.Join(dir, "gen.bin"))
	require.NoError(t, err)
	assert.Equal(t, int64(1000*record.Size), info.Size())
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	orders := testutil.NewRNG(5).Orders(300, 6)
	path := testutil.WriteOrders(t, dir, "orders.bin", orders)

	code, out, errOut := runCmd(t, "-config", quietConfig(t), "export", "-codec", "zstd", path)
	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "orders.parquet")

	data, err := os.ReadFile(filepath.Join(dir, "orders.parquet"))
	require.NoError(t, err)
	assert.Equal(t, "PAR1", string(data[:4]))
}

func TestUsageErrors(t *testing.T) {
	cfg := quietConfig(t)
	path := testutil.WriteOrders(t, t.TempDir(), "orders.bin", nil)

	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"-config", cfg, "frobnicate", path}},
		{"missing file arg", []string{"-config", cfg, "stats"}},
		{"bad mode", []string{"-config", cfg, "stats", "-mode", "turbo", path}},
		{"bad instruments", []string{"-config", cfg, "stats", "-instruments", "x", path}},
		{"bad flag", []string{"-config", cfg, "volume", "-nope", path}},
		{"bad config", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml"), "stats", path}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCmd(t, tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, out)
		})
	}
}

func TestFailures(t *testing.T) {
	dir := t.TempDir()
	cfg := quietConfig(t)
	truncated := testutil.WriteFile(t, dir, "short.bin", make([]byte, record.Size+5))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"-config", cfg, "stats", filepath.Join(dir, "nope.bin")}, "no such file"},
		{"truncated", []string{"-config", cfg, "volume", truncated}, "trailing bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCmd(t, tt.args...)
			assert.Equal(t, exitFailure, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestStats_JSON(t *testing.T) {
	orders := []record.Order{
		{Timestamp: 1, Instrument: 2, Size: -2, Price: 5},
	}
	path := testutil.WriteOrders(t, t.TempDir(), "orders.bin", orders)

	for _, format := range []string{"json", "go-json"} {
		code, out, errOut := runCmd(t, "-config", quietConfig(t), "stats", "-format", format, path)
		require.Equal(t, exitOK, code, errOut)
		assert.JSONEq(t, `[{"instrument":2,"count":1,"net_size":-2,"volume":2,"vwap_accumulator":10,"vwap":5,"last_price":5}]`, out)
	}

	code, _, _ := runCmd(t, "-config", quietConfig(t), "stats", "-format", "xml", path)
	assert.Equal(t, exitUsage, code)
}

func TestParquetName(t *testing.T) {
	assert.Equal(t, "orders.parquet", parquetName("orders.bin"))
	assert.Equal(t, "orders.parquet", parquetName("orders.bin.zst"))
	assert.Equal(t, "dir/orders.parquet", parquetName("dir/orders.bin.lz4"))
	assert.Equal(t, "orders.parquet", parquetName("orders"))
}

// failingBlob accepts limit bytes and then fails every write.
type failingBlob struct {
	limit   int
	written int
	closed  bool
	aborted bool
}

var errDiskFull = errors.New("disk full")

func (b *failingBlob) Write(p []byte) (int, error) {
	if b.written+len(p) > b.limit {
		return 0, errDiskFull
	}
	b.written += len(p)
	return len(p), nil
}

func (b *failingBlob) Sync() error  { return nil }
func (b *failingBlob) Close() error { b.closed = true; return nil }
func (b *failingBlob) Abort() error { b.aborted = true; return nil }

var _ blobstore.WritableBlob = (*failingBlob)(nil)

func TestWriteOrders_AbortsOnError(t *testing.T) {
	gen := func() *record.Generator { return record.NewGenerator(record.GeneratorConfig{Seed: 1}) }

	t.Run("write error", func(t *testing.T) {
		blob := &failingBlob{limit: 10 * record.Size}
		_, err := writeOrders(context.Background(), blob, compress.None, gen(), 100_000)
		require.ErrorIs(t, err, errDiskFull)
		assert.True(t, blob.aborted)
		assert.False(t, blob.closed)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		blob := &failingBlob{limit: 1 << 30}
		_, err := writeOrders(ctx, blob, compress.Zstd, gen(), 1000)
		require.ErrorIs(t, err, context.Canceled)
		assert.True(t, blob.aborted)
		assert.False(t, blob.closed)
	})

	t.Run("success publishes", func(t *testing.T) {
		blob := &failingBlob{limit: 1 << 30}
		n, err := writeOrders(context.Background(), blob, compress.None, gen(), 50)
		require.NoError(t, err)
		assert.Equal(t, int64(50), n)
		assert.True(t, blob.closed)
		assert.False(t, blob.aborted)
	})
}

func TestGenerate_CanceledLeavesNoFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "gen.bin")
	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"-config", quietConfig(t), "generate", "-n", "1000", path}, &stdout, &stderr)
	assert.Equal(t, exitFailure, code)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
