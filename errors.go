package tickscan

import (
	"errors"

	"github.com/hupe1980/tickscan/aggregate"
	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/record"
	"github.com/hupe1980/tickscan/source"
)

// Sentinel errors re-exported for callers that only import the root package.
var (
	// ErrTruncated: the file is not a whole number of 24-byte records.
	ErrTruncated = source.ErrTruncated
	// ErrShortRead: fewer bytes were read than the file size.
	ErrShortRead = source.ErrShortRead
	// ErrForeignByteOrder: the host cannot read little-endian records in place.
	ErrForeignByteOrder = record.ErrForeignByteOrder
	// ErrNotFound: the blob does not exist.
	ErrNotFound = blobstore.ErrNotFound
	// ErrConsumed: an aggregation pass was started twice.
	ErrConsumed = aggregate.ErrConsumed

	// ErrClosed is returned by Scanner methods after Close.
	ErrClosed = errors.New("tickscan: scanner is closed")
	// ErrInvalidMode is returned for an unknown open mode.
	ErrInvalidMode = errors.New("tickscan: invalid mode")
)
