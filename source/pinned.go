package source

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/internal/mem"
	"github.com/hupe1980/tickscan/view"
)

// Pinned is a Source that views the bytes of an open blob in place.
// It owns the blob and closes it on Close.
// It must not be copied after construction.
type Pinned[T any] struct {
	_      noCopy
	name   string
	b      blobstore.Blob
	data   []byte
	v      view.View[T]
	closed atomic.Bool
}

// PinBlob views b without copying when b implements blobstore.Mappable and
// its bytes are aligned for T. It reports false when the blob has to be copied
// instead. Only a successful pin takes ownership of b; otherwise the caller
// still closes it.
func PinBlob[T any](name string, b blobstore.Blob) (*Pinned[T], bool, error) {
	mb, ok := b.(blobstore.Mappable)
	if !ok {
		return nil, false, nil
	}
	data, err := mb.Bytes()
	if err != nil {
		return nil, false, fmt.Errorf("source: pin %s: %w", name, err)
	}
	var zero T
	if !mem.IsAligned(data, unsafe.Alignof(zero)) {
		return nil, false, nil
	}

	v, err := layout[T](name, data)
	if err != nil {
		return nil, false, err
	}
	return &Pinned[T]{name: name, b: b, data: data, v: v}, true, nil
}

func (s *Pinned[T]) sealed() {}

// View returns a packed view over the blob's records.
func (s *Pinned[T]) View() view.View[T] {
	if s.closed.Load() {
		return view.View[T]{}
	}
	return s.v
}

// Len returns the number of records.
func (s *Pinned[T]) Len() int { return s.v.Len() }

// Size returns the blob's byte length.
func (s *Pinned[T]) Size() int64 { return int64(len(s.data)) }

// Bytes returns the blob's bytes, or nil after Close.
func (s *Pinned[T]) Bytes() []byte {
	if s.closed.Load() {
		return nil
	}
	return s.data
}

// Name returns the blob name.
func (s *Pinned[T]) Name() string { return s.name }

// Close releases the blob. It is idempotent.
func (s *Pinned[T]) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.b.Close()
}
