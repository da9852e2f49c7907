package tickscan

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/tickscan/aggregate"
	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/compress"
	"github.com/hupe1980/tickscan/internal/endian"
	"github.com/hupe1980/tickscan/internal/resource"
	"github.com/hupe1980/tickscan/record"
	"github.com/hupe1980/tickscan/source"
	"github.com/hupe1980/tickscan/view"
)

// Mode selects how record data is loaded.
type Mode int

const (
	// ModeAuto maps plain files and decompresses compressed ones.
	ModeAuto Mode = iota
	// ModeMapped maps the file read-only. For blobs it views bytes the store
	// already holds in memory without copying them.
	ModeMapped
	// ModeBuffered reads the file into a private buffer.
	ModeBuffered
	// ModeCompressed decompresses the file into a private buffer.
	ModeCompressed
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeMapped:
		return "mapped"
	case ModeBuffered:
		return "buffered"
	case ModeCompressed:
		return "compressed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ModeAuto, nil
	case "mapped", "mmap":
		return ModeMapped, nil
	case "buffered", "buffer":
		return ModeBuffered, nil
	case "compressed":
		return ModeCompressed, nil
	}
	return ModeAuto, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Scanner is an open record file ready to be scanned.
// Scans may run concurrently; Close must not race with them.
type Scanner struct {
	src    source.Source[record.Order]
	name   string
	mode   Mode
	opts   options
	rc     *resource.Controller
	log    *Logger
	closed atomic.Bool
}

// Open loads the record file at path.
func Open(ctx context.Context, path string, optFns ...Option) (*Scanner, error) {
	o := applyOptions(optFns)
	rc := o.controller()
	log := o.logger.WithFile(path)

	start := time.Now()
	src, mode, err := openPath(path, o, rc)
	o.metricsCollector.RecordOpen(mode, sizeOf(src), time.Since(start), err)
	if err != nil {
		log.LogOpen(ctx, mode, 0, 0, err)
		return nil, err
	}
	log.LogOpen(ctx, mode, src.Len(), src.Size(), nil)

	return &Scanner{src: src, name: path, mode: mode, opts: o, rc: rc, log: log}, nil
}

func openPath(path string, o options, rc *resource.Controller) (source.Source[record.Order], Mode, error) {
	if !endian.NativeIsWire() {
		return nil, o.mode, ErrForeignByteOrder
	}

	kind := compress.KindFromPath(path)
	if o.compressionSet {
		kind = o.compression
	}

	mode := o.mode
	if mode == ModeAuto {
		mode = ModeMapped
		if kind != compress.None {
			mode = ModeCompressed
		}
	}

	switch mode {
	case ModeMapped:
		src, err := source.OpenMapped[record.Order](path, source.WithAdvice(o.advice))
		if err != nil {
			return nil, mode, err
		}
		return src, mode, nil
	case ModeBuffered:
		src, err := source.OpenBuffered[record.Order](path, source.WithController(rc))
		if err != nil {
			return nil, mode, err
		}
		return src, mode, nil
	case ModeCompressed:
		src, err := source.OpenCompressed[record.Order](path, kind, source.WithController(rc))
		if err != nil {
			return nil, mode, err
		}
		return src, mode, nil
	default:
		return nil, mode, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
}

// OpenBlob loads the named record file from store. Blobs whose bytes are
// already in memory (LocalStore, MemoryStore) are viewed in place unless
// WithMode(ModeBuffered) asks for a private copy; other blobs are downloaded.
// Names with a compression extension are decompressed on the fly.
func OpenBlob(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Scanner, error) {
	o := applyOptions(optFns)
	rc := o.controller()
	log := o.logger.WithFile(name)

	start := time.Now()
	src, mode, err := openBlob(ctx, store, name, o, rc)
	o.metricsCollector.RecordOpen(mode, sizeOf(src), time.Since(start), err)
	if err != nil {
		log.LogOpen(ctx, mode, 0, 0, err)
		return nil, err
	}
	log.LogOpen(ctx, mode, src.Len(), src.Size(), nil)

	return &Scanner{src: src, name: name, mode: mode, opts: o, rc: rc, log: log}, nil
}

func openBlob(ctx context.Context, store blobstore.BlobStore, name string, o options, rc *resource.Controller) (source.Source[record.Order], Mode, error) {
	if !endian.NativeIsWire() {
		return nil, ModeBuffered, ErrForeignByteOrder
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, ModeBuffered, fmt.Errorf("tickscan: open blob %s: %w", name, err)
	}

	kind := compress.KindFromPath(name)
	if o.compressionSet {
		kind = o.compression
	}

	if kind == compress.None && (o.mode == ModeAuto || o.mode == ModeMapped) {
		src, ok, err := source.PinBlob[record.Order](name, blob)
		if err != nil {
			_ = blob.Close()
			return nil, ModeMapped, err
		}
		if ok {
			return src, ModeMapped, nil
		}
	}
	defer func() { _ = blob.Close() }()

	if kind != compress.None {
		br := blobstore.NewReader(ctx, blob)
		defer func() { _ = br.Close() }()

		var r io.Reader = br
		if rc != nil {
			r = resource.NewRateLimitedReader(ctx, r, rc)
		}
		src, err := source.ReadCompressed[record.Order](name, r, kind, source.WithController(rc))
		if err != nil {
			return nil, ModeCompressed, err
		}
		return src, ModeCompressed, nil
	}

	src, err := source.FromBlob[record.Order](ctx, blob, source.WithController(rc))
	if err != nil {
		return nil, ModeBuffered, err
	}
	return src, ModeBuffered, nil
}

func sizeOf(src source.Source[record.Order]) int64 {
	if src == nil {
		return 0
	}
	return src.Size()
}

// Name returns the path or blob name the scanner was opened with.
func (s *Scanner) Name() string { return s.name }

// Mode returns how the data was loaded.
func (s *Scanner) Mode() Mode { return s.mode }

// Len returns the number of records.
func (s *Scanner) Len() int { return s.src.Len() }

// Size returns the data size in bytes.
func (s *Scanner) Size() int64 { return s.src.Size() }

// View returns the records. The view is invalid after Close.
func (s *Scanner) View() view.View[record.Order] { return s.src.View() }

// Fingerprint returns the xxhash64 of the record bytes.
func (s *Scanner) Fingerprint() uint64 { return source.Fingerprint(s.src) }

// Stats aggregates per-instrument statistics in one pass. With WithWorkers
// the file is split into chunks that are aggregated concurrently.
func (s *Scanner) Stats(ctx context.Context) (aggregate.Table, Summary, error) {
	var table aggregate.Table
	sum, err := s.scan(ctx, "stats", func(v view.View[record.Order]) error {
		var aggOpts []aggregate.Option
		if s.opts.instruments != nil {
			aggOpts = append(aggOpts, aggregate.WithInstruments(s.opts.instruments))
		}
		if s.opts.workers > 1 {
			aggOpts = append(aggOpts, aggregate.WithController(s.rc))
			t, err := aggregate.Parallel(ctx, v, s.opts.workers, aggOpts...)
			table = t
			return err
		}
		a := aggregate.New(aggOpts...)
		if err := a.RunContext(ctx, v); err != nil {
			return err
		}
		table = a.Table()
		return nil
	})
	if err != nil {
		return nil, sum, err
	}
	return table, sum, nil
}

// TotalVolume sums |size| over all records.
func (s *Scanner) TotalVolume(ctx context.Context) (uint64, Summary, error) {
	var total uint64
	sum, err := s.scan(ctx, "volume", func(v view.View[record.Order]) error {
		var err error
		total, err = aggregate.TotalVolumeContext(ctx, v)
		return err
	})
	if err != nil {
		return 0, sum, err
	}
	return total, sum, nil
}

func (s *Scanner) scan(ctx context.Context, kind string, fn func(view.View[record.Order]) error) (Summary, error) {
	sum := Summary{RunID: uuid.New(), Records: s.src.Len(), Bytes: s.src.Size()}
	log := s.log.WithRun(sum.RunID)

	if s.closed.Load() {
		return sum, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	start := time.Now()
	err := fn(s.src.View())
	sum.Elapsed = time.Since(start)

	s.opts.metricsCollector.RecordScan(sum.Records, sum.Bytes, sum.Elapsed, err)
	log.LogScan(ctx, kind, sum, err)
	return sum, err
}

// Close releases the underlying source. It is idempotent.
func (s *Scanner) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	err := s.src.Close()
	s.log.LogClose(context.Background(), err)
	return err
}
