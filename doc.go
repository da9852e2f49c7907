// Package tickscan scans files of fixed-size order records at memory speed.
//
// A record file is a raw concatenation of 24-byte little-endian order records
// (timestamp, instrument, signed size, price, type) with no header. tickscan
// maps or loads such a file, exposes it as a zero-copy strided view and folds it
// into per-instrument statistics in a single sequential pass.
//
// # Quick Start
//
//	ctx := context.Background()
//	sc, err := tickscan.Open(ctx, "orders.dat")
//	if err != nil { ... }
//	defer sc.Close()
//
//	table, summary, err := sc.Stats(ctx)
//	for _, id := range table.Keys() {
//	    s := table[id]
//	    fmt.Printf("%d: %d volume=%d vwap=%g\n", id, s.Count, s.Volume, s.VWAP())
//	}
//	fmt.Fprintln(os.Stderr, summary)
//
// # Loading modes
//
// Plain files are memory mapped by default. WithMode(ModeBuffered) reads the
// file into a private aligned buffer instead, which isolates the scan from
// concurrent writers. Files ending in .zst, .lz4 or .s2 are decompressed into a
// buffer. OpenBlob loads files from any blobstore.BlobStore, including S3 and
// MinIO.
//
// # Parallel scans
//
// WithWorkers(n) splits the view into contiguous chunks and aggregates them
// concurrently. Chunk tables are merged in file order, so last prices are
// identical to a serial scan.
//
// # Errors
//
// All validation happens in Open: a file whose size is not a multiple of 24
// bytes fails with ErrTruncated, a short read with ErrShortRead. Big-endian
// hosts are rejected with ErrForeignByteOrder because records are read in place.
package tickscan
