package record

import (
	"bufio"
	"io"
)

// Writer appends encoded orders to an underlying io.Writer.
// Call Flush when done; Writer does not close the underlying writer.
type Writer struct {
	w     *bufio.Writer
	buf   [Size]byte
	count int64
}

// NewWriter returns a Writer with a 64 KiB buffer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, 64<<10)}
}

// Write encodes and buffers one order.
func (w *Writer) Write(o Order) error {
	_ = Encode(w.buf[:], o)
	if _, err := w.w.Write(w.buf[:]); err != nil {
		return err
	}
	w.count++
	return nil
}

// WriteAll writes every order in orders.
func (w *Writer) WriteAll(orders []Order) error {
	for _, o := range orders {
		if err := w.Write(o); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of orders written so far.
func (w *Writer) Count() int64 { return w.count }

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error { return w.w.Flush() }
