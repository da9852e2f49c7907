package tickscan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    scanCounter   prometheus.Counter
//	    scanHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordScan(records int, bytes int64, d time.Duration, err error) {
//	    p.scanCounter.Inc()
//	    p.scanHistogram.Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordOpen is called after each source construction.
	// bytes is the size of the loaded data, err is nil if successful.
	RecordOpen(mode Mode, bytes int64, duration time.Duration, err error)

	// RecordScan is called after each aggregation or volume pass.
	RecordScan(records int, bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(Mode, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordScan(int, int64, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OpenCount       atomic.Int64
	OpenErrors      atomic.Int64
	OpenBytes       atomic.Int64
	OpenTotalNanos  atomic.Int64
	ScanCount       atomic.Int64
	ScanErrors      atomic.Int64
	ScanRecords     atomic.Int64
	ScanBytes       atomic.Int64
	ScanTotalNanos  atomic.Int64
	MappedOpens     atomic.Int64
	BufferedOpens   atomic.Int64
	CompressedOpens atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(mode Mode, bytes int64, duration time.Duration, err error) {
	b.OpenCount.Add(1)
	b.OpenTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OpenErrors.Add(1)
		return
	}
	b.OpenBytes.Add(bytes)
	switch mode {
	case ModeMapped:
		b.MappedOpens.Add(1)
	case ModeBuffered:
		b.BufferedOpens.Add(1)
	case ModeCompressed:
		b.CompressedOpens.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(records int, bytes int64, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	b.ScanTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ScanErrors.Add(1)
		return
	}
	b.ScanRecords.Add(int64(records))
	b.ScanBytes.Add(bytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	scans := b.ScanCount.Load()
	var avg int64
	if scans > 0 {
		avg = b.ScanTotalNanos.Load() / scans
	}
	return BasicMetricsStats{
		OpenCount:     b.OpenCount.Load(),
		OpenErrors:    b.OpenErrors.Load(),
		OpenBytes:     b.OpenBytes.Load(),
		ScanCount:     scans,
		ScanErrors:    b.ScanErrors.Load(),
		ScanRecords:   b.ScanRecords.Load(),
		ScanAvgNanos:  avg,
		MappedOpens:   b.MappedOpens.Load(),
		BufferedOpens: b.BufferedOpens.Load(),
	}
}

// BasicMetricsStats is a point-in-time copy of BasicMetricsCollector.
type BasicMetricsStats struct {
	OpenCount     int64
	OpenErrors    int64
	OpenBytes     int64
	ScanCount     int64
	ScanErrors    int64
	ScanRecords   int64
	ScanAvgNanos  int64
	MappedOpens   int64
	BufferedOpens int64
}
