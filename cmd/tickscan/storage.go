package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/blobstore/minio"
	"github.com/hupe1980/tickscan/blobstore/s3"
	"github.com/hupe1980/tickscan/internal/config"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// remote reports whether names refer to objects rather than local paths.
func remote(cfg config.StorageConfig) bool {
	return cfg.Backend != "local"
}

// openStore builds the blob store for the configured backend. The local
// store is rooted at the working directory so names behave like paths.
func openStore(ctx context.Context, cfg config.StorageConfig) (blobstore.BlobStore, error) {
	switch cfg.Backend {
	case "local":
		return blobstore.NewLocalStore(""), nil
	case "s3":
		opts := []s3.Option{s3.WithPrefix(cfg.S3.Prefix)}
		if cfg.S3.Region != "" {
			opts = append(opts, s3.WithRegion(cfg.S3.Region))
		}
		if cfg.S3.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.S3.Endpoint))
		}
		return s3.New(ctx, cfg.S3.Bucket, opts...)
	case "minio":
		client, err := miniogo.New(cfg.MinIO.Endpoint, &miniogo.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.Secure,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return minio.NewStore(client, cfg.MinIO.Bucket, cfg.MinIO.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
