package view

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is wrapped by every *IndexError.
	ErrOutOfRange = errors.New("view: index out of range")
	// ErrInvalidLength is returned for negative element counts.
	ErrInvalidLength = errors.New("view: invalid length")
	// ErrInvalidStride is returned when elements of a multi-element view would overlap.
	ErrInvalidStride = errors.New("view: stride smaller than element size")
	// ErrNilBase is returned when a non-empty view is built on a nil address.
	ErrNilBase = errors.New("view: nil base address")
	// ErrMisaligned is returned when the base address does not satisfy the element alignment.
	ErrMisaligned = errors.New("view: misaligned base address")
	// ErrPartialElement is returned when a byte region is not a whole number of strides.
	ErrPartialElement = errors.New("view: byte length is not a multiple of the stride")
	// ErrInvalidField is returned when a projected field does not fit inside the element.
	ErrInvalidField = errors.New("view: field outside element")
	// ErrForeignCursor is the panic value when cursors of different views are compared.
	ErrForeignCursor = errors.New("view: cursors belong to different views")
	// ErrLengthMismatch is returned by pairwise operations on views of different lengths.
	ErrLengthMismatch = errors.New("view: length mismatch")
)

// IndexError reports an access outside [0, Length).
// Index is the index as passed by the caller, before negative normalisation.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("view: index %d out of range for length %d", e.Index, e.Length)
}

func (e *IndexError) Unwrap() error { return ErrOutOfRange }
