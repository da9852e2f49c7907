// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "market-data",
//	    s3.WithPrefix("ticks/2024-01-02/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	sc, err := tickscan.OpenBlob(ctx, store, "orders.dat")
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart uploads for large record files
//   - CRC32C checksums on upload
//   - Automatic pagination for listing
package s3
