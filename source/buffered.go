package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/compress"
	"github.com/hupe1980/tickscan/internal/conv"
	"github.com/hupe1980/tickscan/internal/mem"
	"github.com/hupe1980/tickscan/internal/resource"
	"github.com/hupe1980/tickscan/view"
)

// Buffered is a Source backed by a private, 64-byte aligned heap buffer.
// It must not be copied after construction.
type Buffered[T any] struct {
	_        noCopy
	name     string
	buf      []byte
	v        view.View[T]
	rc       *resource.Controller
	reserved int64
	closed   atomic.Bool
}

// OpenBuffered reads the whole file at path into memory.
// The number of bytes read must equal the size reported by stat.
func OpenBuffered[T any](path string, opts ...Option) (*Buffered[T], error) {
	o := applyOptions(opts)

	f, err := o.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("source: stat %s: %w", path, err)
	}

	return readExact[T](path, f, fi.Size(), o)
}

// ReadBuffered reads exactly size bytes from r into a new buffered source.
func ReadBuffered[T any](r io.Reader, size int64, opts ...Option) (*Buffered[T], error) {
	return readExact[T]("reader", r, size, applyOptions(opts))
}

// FromBlob copies a blob into a new buffered source. Reads are throttled by
// the controller's IO limit when one is configured.
func FromBlob[T any](ctx context.Context, b blobstore.Blob, opts ...Option) (*Buffered[T], error) {
	o := applyOptions(opts)
	br := blobstore.NewReader(ctx, b)
	defer func() { _ = br.Close() }()

	var r io.Reader = br
	if o.rc != nil {
		r = resource.NewRateLimitedReader(ctx, r, o.rc)
	}
	return readExact[T]("blob", r, b.Size(), o)
}

// OpenCompressed decompresses the file at path into a new buffered source.
// The decompressed stream must be a whole number of records.
func OpenCompressed[T any](path string, kind compress.Kind, opts ...Option) (*Buffered[T], error) {
	o := applyOptions(opts)

	f, err := o.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	hint := int64(0)
	if fi, err := f.Stat(); err == nil {
		hint = fi.Size()
	}
	return decode[T](path, f, hint, kind, o)
}

// ReadCompressed decompresses r into a new buffered source. name is used in errors.
func ReadCompressed[T any](name string, r io.Reader, kind compress.Kind, opts ...Option) (*Buffered[T], error) {
	return decode[T](name, r, 0, kind, applyOptions(opts))
}

func decode[T any](name string, r io.Reader, hint int64, kind compress.Kind, o options) (*Buffered[T], error) {
	zr, err := compress.NewReader(kind, r)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", name, err)
	}
	defer func() { _ = zr.Close() }()

	buf, err := readAllAligned(zr, hint)
	if err != nil {
		return nil, fmt.Errorf("source: decompress %s (%s): %w", name, kind, err)
	}

	return adopt[T](name, buf, o)
}

func readExact[T any](name string, r io.Reader, size int64, o options) (*Buffered[T], error) {
	n, err := conv.Int64ToInt(size)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("source: %s: invalid size %d", name, size)
	}
	if es := view.SizeOf[T](); es > 0 && size%int64(es) != 0 {
		return nil, &LayoutError{Name: name, Size: size, ElemSize: es}
	}

	if err := o.rc.AcquireMemory(size); err != nil {
		return nil, fmt.Errorf("source: %s: %w", name, err)
	}

	buf := mem.AllocAligned(n)
	got, err := io.ReadFull(r, buf)
	if got != n {
		o.rc.ReleaseMemory(size)
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			err = nil
		}
		return nil, &ShortReadError{Name: name, Got: int64(got), Want: size, Err: err}
	}

	v, err := layout[T](name, buf)
	if err != nil {
		o.rc.ReleaseMemory(size)
		return nil, err
	}
	return &Buffered[T]{name: name, buf: buf, v: v, rc: o.rc, reserved: size}, nil
}

// adopt wraps an already filled aligned buffer.
func adopt[T any](name string, buf []byte, o options) (*Buffered[T], error) {
	v, err := layout[T](name, buf)
	if err != nil {
		return nil, err
	}
	size := int64(len(buf))
	if err := o.rc.AcquireMemory(size); err != nil {
		return nil, fmt.Errorf("source: %s: %w", name, err)
	}
	return &Buffered[T]{name: name, buf: buf, v: v, rc: o.rc, reserved: size}, nil
}

// readAllAligned is io.ReadAll over 64-byte aligned storage.
func readAllAligned(r io.Reader, hint int64) ([]byte, error) {
	capacity := 64 << 10
	if h, err := conv.Int64ToInt(hint); err == nil && h > 0 && h < math.MaxInt/4 {
		capacity = max(capacity, h*4)
	}
	buf := mem.AllocAligned(capacity)
	n := 0
	for {
		if n == len(buf) {
			grown := mem.AllocAligned(len(buf) * 2)
			copy(grown, buf)
			buf = grown
		}
		m, err := r.Read(buf[n:])
		n += m
		if errors.Is(err, io.EOF) {
			return buf[:n:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (s *Buffered[T]) sealed() {}

// View returns a packed view over the buffered records.
func (s *Buffered[T]) View() view.View[T] {
	if s.closed.Load() {
		return view.View[T]{}
	}
	return s.v
}

// Len returns the number of records.
func (s *Buffered[T]) Len() int { return s.v.Len() }

// Size returns the buffer's byte length.
func (s *Buffered[T]) Size() int64 { return int64(len(s.buf)) }

// Bytes returns the buffer, or nil after Close.
func (s *Buffered[T]) Bytes() []byte {
	if s.closed.Load() {
		return nil
	}
	return s.buf
}

// Name returns the path or a description of where the data came from.
func (s *Buffered[T]) Name() string { return s.name }

// Close returns the buffer's memory reservation. It is idempotent.
func (s *Buffered[T]) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.rc.ReleaseMemory(s.reserved)
	return nil
}
