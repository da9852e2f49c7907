package tickscan

import (
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/tickscan/compress"
	"github.com/hupe1980/tickscan/internal/resource"
	"github.com/hupe1980/tickscan/source"
)

type options struct {
	mode             Mode
	advice           source.Advice
	compression      compress.Kind
	compressionSet   bool
	memoryLimit      int64
	ioLimit          int64
	workers          int
	instruments      *roaring.Bitmap
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Open and OpenBlob.
type Option func(*options)

// WithMode selects how a file is loaded. The default, ModeAuto, maps plain
// files and decompresses files with a known compression extension.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithAdvice passes an access-pattern hint to the kernel for mapped files.
// Scans are sequential, so AdviceSequential is the default.
func WithAdvice(a source.Advice) Option {
	return func(o *options) {
		o.advice = a
	}
}

// WithCompression overrides the compression detected from the file extension.
func WithCompression(k compress.Kind) Option {
	return func(o *options) {
		o.compression = k
		o.compressionSet = true
	}
}

// WithMemoryLimit caps the bytes held by buffered sources opened with the same
// options. 0 means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithIOLimit throttles blob downloads to the given bytes per second.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithWorkers enables parallel aggregation with up to n goroutines.
// n <= 1 keeps the serial single-pass scan.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithInstruments restricts Stats to the given instrument ids.
func WithInstruments(ids ...uint32) Option {
	return func(o *options) {
		o.instruments = roaring.BitmapOf(ids...)
	}
}

// WithInstrumentSet is WithInstruments for a prepared bitmap.
func WithInstrumentSet(ids *roaring.Bitmap) Option {
	return func(o *options) {
		o.instruments = ids
	}
}

// WithMetricsCollector sets a custom metrics collector for monitoring.
//
//	metrics := &tickscan.BasicMetricsCollector{}
//	sc, _ := tickscan.Open(ctx, "orders.dat", tickscan.WithMetricsCollector(metrics))
//	// ... scan ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		mode:             ModeAuto,
		advice:           source.AdviceSequential,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// controller returns nil when no limit is configured.
func (o options) controller() *resource.Controller {
	if o.memoryLimit <= 0 && o.ioLimit <= 0 && o.workers <= 1 {
		return nil
	}
	return resource.NewController(resource.Config{
		MemoryLimitBytes:   o.memoryLimit,
		MaxWorkers:         int64(max(o.workers, 1)),
		IOLimitBytesPerSec: o.ioLimit,
	})
}
