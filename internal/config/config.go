package config

import "time"

// Config is the root configuration of the tickscan command.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Scan     ScanConfig     `yaml:"scan"`
	Storage  StorageConfig  `yaml:"storage"`
	Generate GenerateConfig `yaml:"generate"`
	Export   ExportConfig   `yaml:"export"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ScanConfig controls how record files are loaded and aggregated.
type ScanConfig struct {
	Mode        string   `yaml:"mode"`   // auto, mapped, buffered, compressed
	Advice      string   `yaml:"advice"` // default, sequential, random, willneed
	Compression string   `yaml:"compression"`
	Workers     int      `yaml:"workers"`
	MemoryLimit int64    `yaml:"memory_limit"`
	Instruments []uint32 `yaml:"instruments"`
}

// StorageConfig selects where record files are read from.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // local, s3, minio
	IOLimit int64       `yaml:"io_limit"`
	S3      S3Config    `yaml:"s3"`
	MinIO   MinIOConfig `yaml:"minio"`
}

// S3Config holds Amazon S3 settings. Credentials come from the default AWS chain.
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// MinIOConfig holds settings for MinIO and other S3-compatible services.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Secure    bool   `yaml:"secure"`
}

// GenerateConfig controls synthetic data generation.
type GenerateConfig struct {
	Instruments int           `yaml:"instruments"`
	MaxGap      time.Duration `yaml:"max_gap"`
	Seed        int64         `yaml:"seed"`
	Compression string        `yaml:"compression"`
}

// ExportConfig controls Parquet export.
type ExportConfig struct {
	Compression string `yaml:"compression"`
}
