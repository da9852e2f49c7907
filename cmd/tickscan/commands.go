package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/tickscan"
	"github.com/hupe1980/tickscan/aggregate"
	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/codec"
	"github.com/hupe1980/tickscan/compress"
	"github.com/hupe1980/tickscan/export"
	"github.com/hupe1980/tickscan/record"
	"github.com/hupe1980/tickscan/source"
)

// scanFlags are shared by the commands that read a record file.
type scanFlags struct {
	mode        string
	compression string
	workers     int
	instruments string
}

func (e *env) bindScanFlags(fs *flag.FlagSet) *scanFlags {
	sf := &scanFlags{}
	fs.StringVar(&sf.mode, "mode", e.cfg.Scan.Mode, "load mode: auto, mapped, buffered, compressed")
	fs.StringVar(&sf.compression, "compression", e.cfg.Scan.Compression, "override compression detected from the extension")
	fs.IntVar(&sf.workers, "workers", e.cfg.Scan.Workers, "parallel aggregation workers")
	fs.StringVar(&sf.instruments, "instruments", "", "comma separated instrument ids to keep")
	return sf
}

func (e *env) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// parse parses args and requires exactly one positional FILE argument.
func parse(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s needs exactly one FILE argument", errUsage, fs.Name())
	}
	return fs.Arg(0), nil
}

func (e *env) scanOptions(sf *scanFlags) ([]tickscan.Option, error) {
	mode, err := tickscan.ParseMode(sf.mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	advice, err := source.ParseAdvice(e.cfg.Scan.Advice)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if sf.workers < 1 {
		return nil, fmt.Errorf("%w: -workers must be >= 1", errUsage)
	}

	opts := []tickscan.Option{
		tickscan.WithMode(mode),
		tickscan.WithAdvice(advice),
		tickscan.WithWorkers(sf.workers),
		tickscan.WithMemoryLimit(e.cfg.Scan.MemoryLimit),
		tickscan.WithIOLimit(e.cfg.Storage.IOLimit),
		tickscan.WithLogger(e.log),
	}
	if sf.compression != "" {
		kind, err := compress.ParseKind(sf.compression)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		opts = append(opts, tickscan.WithCompression(kind))
	}

	ids := e.cfg.Scan.Instruments
	if sf.instruments != "" {
		ids, err = parseIDs(sf.instruments)
		if err != nil {
			return nil, fmt.Errorf("%w: -instruments: %v", errUsage, err)
		}
	}
	if len(ids) > 0 {
		opts = append(opts, tickscan.WithInstruments(ids...))
	}
	return opts, nil
}

func parseIDs(s string) ([]uint32, error) {
	parts := strings.Split(s, ",")
	ids := make([]uint32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint32(id))
	}
	return ids, nil
}

func (e *env) open(ctx context.Context, name string, opts []tickscan.Option) (*tickscan.Scanner, error) {
	if !remote(e.cfg.Storage) {
		return tickscan.Open(ctx, name, opts...)
	}
	store, err := openStore(ctx, e.cfg.Storage)
	if err != nil {
		return nil, err
	}
	return tickscan.OpenBlob(ctx, store, name, opts...)
}

func (e *env) stats(ctx context.Context, args []string) error {
	fs := e.newFlagSet("stats")
	sf := e.bindScanFlags(fs)
	format := fs.String("format", "text", "output format: text or a codec name (json, go-json)")
	name, err := parse(fs, args)
	if err != nil {
		return err
	}
	var c codec.Codec
	if *format != "text" {
		var ok bool
		if c, ok = codec.ByName(*format); !ok {
			return fmt.Errorf("%w: unknown format %q", errUsage, *format)
		}
	}

	table, sum, err := e.runStats(ctx, name, sf)
	if err != nil {
		return err
	}

	if c != nil {
		if err := export.WriteJSON(e.stdout, table, c); err != nil {
			return err
		}
	} else {
		for _, id := range table.Keys() {
			fmt.Fprintf(e.stdout, "%d: %s\n", id, table[id])
		}
	}
	fmt.Fprintln(e.stderr, sum)
	return nil
}

func (e *env) runStats(ctx context.Context, name string, sf *scanFlags) (aggregate.Table, tickscan.Summary, error) {
	opts, err := e.scanOptions(sf)
	if err != nil {
		return nil, tickscan.Summary{}, err
	}
	sc, err := e.open(ctx, name, opts)
	if err != nil {
		return nil, tickscan.Summary{}, err
	}
	defer func() { _ = sc.Close() }()

	return sc.Stats(ctx)
}

func (e *env) volume(ctx context.Context, args []string) error {
	fs := e.newFlagSet("volume")
	sf := e.bindScanFlags(fs)
	name, err := parse(fs, args)
	if err != nil {
		return err
	}
	opts, err := e.scanOptions(sf)
	if err != nil {
		return err
	}
	sc, err := e.open(ctx, name, opts)
	if err != nil {
		return err
	}
	defer func() { _ = sc.Close() }()

	total, sum, err := sc.TotalVolume(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "total volume = %d\n", total)
	fmt.Fprintln(e.stderr, sum)
	return nil
}

func (e *env) generate(ctx context.Context, args []string) error {
	fs := e.newFlagSet("generate")
	n := fs.Int("n", 1_000_000, "number of orders")
	seed := fs.Int64("seed", e.cfg.Generate.Seed, "random seed")
	instruments := fs.Int("instruments", e.cfg.Generate.Instruments, "instrument universe size")
	kindName := fs.String("compress", e.cfg.Generate.Compression, "compression: none, zstd, lz4, s2 (none infers from the extension)")
	name, err := parse(fs, args)
	if err != nil {
		return err
	}
	if *n < 0 {
		return fmt.Errorf("%w: -n must be >= 0", errUsage)
	}
	kind, err := compress.ParseKind(*kindName)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if kind == compress.None {
		kind = compress.KindFromPath(name)
	}

	store, err := openStore(ctx, e.cfg.Storage)
	if err != nil {
		return err
	}
	blob, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	gen := record.NewGenerator(record.GeneratorConfig{
		Instruments: *instruments,
		MaxGap:      e.cfg.Generate.MaxGap,
		Seed:        *seed,
	})
	count, err := writeOrders(ctx, blob, kind, gen, *n)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	e.log.InfoContext(ctx, "generated orders", "file", name, "records", count, "compression", kind.String())
	return nil
}

// writeOrders streams n generated orders into blob and publishes it. On any
// error the blob is aborted so no partial file is left behind.
func writeOrders(ctx context.Context, blob blobstore.WritableBlob, kind compress.Kind, gen *record.Generator, n int) (int64, error) {
	cw, err := compress.NewWriter(kind, blob)
	if err != nil {
		return 0, errors.Join(err, blob.Abort())
	}

	w := record.NewWriter(cw)
	err = gen.WriteNContext(ctx, w, n)
	if err == nil {
		err = w.Flush()
	}
	if cerr := cw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, errors.Join(err, blob.Abort())
	}
	if err := blob.Close(); err != nil {
		return 0, err
	}
	return w.Count(), nil
}

// parquetName derives "orders.parquet" from "orders.bin" or "orders.bin.zst".
func parquetName(name string) string {
	base := name
	if compress.KindFromPath(base) != compress.None {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".parquet"
}

func (e *env) export(ctx context.Context, args []string) error {
	fs := e.newFlagSet("export")
	sf := e.bindScanFlags(fs)
	out := fs.String("o", "", "output parquet file (default FILE.parquet)")
	codec := fs.String("codec", e.cfg.Export.Compression, "parquet compression: snappy, gzip, zstd, none")
	name, err := parse(fs, args)
	if err != nil {
		return err
	}
	if _, err := export.ParseCompression(*codec); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *out == "" {
		*out = parquetName(name)
	}

	table, sum, err := e.runStats(ctx, name, sf)
	if err != nil {
		return err
	}

	if !remote(e.cfg.Storage) {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		if err := export.WriteParquet(f, table, export.WithCompression(*codec)); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	} else {
		store, err := openStore(ctx, e.cfg.Storage)
		if err != nil {
			return err
		}
		if err := export.ToBlob(ctx, store, *out, table, export.WithCompression(*codec)); err != nil {
			return err
		}
	}

	fmt.Fprintf(e.stdout, "exported %d instruments to %s\n", len(table), *out)
	fmt.Fprintln(e.stderr, sum)
	return nil
}
