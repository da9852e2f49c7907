package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/tickscan/compress"
	"github.com/hupe1980/tickscan/export"
	"github.com/hupe1980/tickscan/internal/mmap"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	if !slices.Contains([]string{"auto", "mapped", "buffered", "compressed"}, c.Scan.Mode) {
		return fmt.Errorf("scan.mode must be one of auto, mapped, buffered, compressed, got %q", c.Scan.Mode)
	}
	if _, err := mmap.ParseAccessPattern(c.Scan.Advice); err != nil {
		return fmt.Errorf("scan.advice: %w", err)
	}
	if c.Scan.Compression != "" {
		if _, err := compress.ParseKind(c.Scan.Compression); err != nil {
			return fmt.Errorf("scan.compression: %w", err)
		}
	}
	if c.Scan.Workers < 1 {
		return errors.New("scan.workers must be >= 1")
	}
	if c.Scan.MemoryLimit < 0 {
		return errors.New("scan.memory_limit must be >= 0")
	}

	if err := c.Storage.validate(); err != nil {
		return err
	}

	if c.Generate.Instruments < 1 {
		return errors.New("generate.instruments must be >= 1")
	}
	if c.Generate.MaxGap < 0 {
		return errors.New("generate.max_gap must be >= 0")
	}
	if _, err := compress.ParseKind(c.Generate.Compression); err != nil {
		return fmt.Errorf("generate.compression: %w", err)
	}

	if _, err := export.ParseCompression(c.Export.Compression); err != nil {
		return fmt.Errorf("export.compression: %w", err)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if s.IOLimit < 0 {
		return errors.New("storage.io_limit must be >= 0")
	}
	switch s.Backend {
	case "local":
		return nil
	case "s3":
		if s.S3.Bucket == "" {
			return errors.New("storage.s3.bucket is required")
		}
		return nil
	case "minio":
		if s.MinIO.Endpoint == "" {
			return errors.New("storage.minio.endpoint is required")
		}
		if s.MinIO.Bucket == "" {
			return errors.New("storage.minio.bucket is required")
		}
		return nil
	default:
		return fmt.Errorf("storage.backend must be local, s3 or minio, got %q", s.Backend)
	}
}
