package source

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated reports a file whose size is not a multiple of the record size.
	ErrTruncated = errors.New("source: truncated record")
	// ErrShortRead reports a read that returned fewer bytes than the file size.
	ErrShortRead = errors.New("source: short read")
	// ErrClosed is returned when using a closed source.
	ErrClosed = errors.New("source: closed")
	// ErrZeroSize is returned for element types with no size.
	ErrZeroSize = errors.New("source: zero-sized element type")
)

// LayoutError describes a file that cannot be viewed as whole records.
type LayoutError struct {
	Name     string
	Size     int64
	ElemSize int
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("source: %s: %d bytes is not a multiple of the %d-byte record size (%d trailing bytes)",
		e.Name, e.Size, e.ElemSize, e.Size%int64(e.ElemSize))
}

func (e *LayoutError) Unwrap() error { return ErrTruncated }

// ShortReadError describes a read that stopped before the expected size.
// Err is the underlying read error, if any.
type ShortReadError struct {
	Name string
	Got  int64
	Want int64
	Err  error
}

func (e *ShortReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source: %s: read %d of %d bytes: %v", e.Name, e.Got, e.Want, e.Err)
	}
	return fmt.Sprintf("source: %s: read %d of %d bytes", e.Name, e.Got, e.Want)
}

func (e *ShortReadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrShortRead, e.Err}
	}
	return []error{ErrShortRead}
}
