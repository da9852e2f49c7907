package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultScanMode          = "auto"
	DefaultAdvice            = "sequential"
	DefaultWorkers           = 1
	DefaultBackend           = "local"
	DefaultGenInstruments    = 5000
	DefaultGenMaxGap         = 10 * time.Second
	DefaultGenCompression    = "none"
	DefaultExportCompression = "snappy"
)

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}

	if c.Scan.Mode == "" {
		c.Scan.Mode = DefaultScanMode
	}
	if c.Scan.Advice == "" {
		c.Scan.Advice = DefaultAdvice
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = DefaultWorkers
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultBackend
	}

	if c.Generate.Instruments == 0 {
		c.Generate.Instruments = DefaultGenInstruments
	}
	if c.Generate.MaxGap == 0 {
		c.Generate.MaxGap = DefaultGenMaxGap
	}
	if c.Generate.Compression == "" {
		c.Generate.Compression = DefaultGenCompression
	}

	if c.Export.Compression == "" {
		c.Export.Compression = DefaultExportCompression
	}
}
