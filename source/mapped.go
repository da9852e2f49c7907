package source

import (
	"fmt"
	"sync/atomic"

	"github.com/hupe1980/tickscan/internal/mmap"
	"github.com/hupe1980/tickscan/view"
)

// releaseMapping unmaps and closes a mapping. Tests replace it to simulate failures.
var releaseMapping = (*mmap.Mapping).Close

// Mapped is a Source backed by a shared read-only memory mapping.
// It must not be copied after construction.
type Mapped[T any] struct {
	_      noCopy
	m      *mmap.Mapping
	v      view.View[T]
	closed atomic.Bool
}

// OpenMapped maps the file at path and views it as packed T.
func OpenMapped[T any](path string, opts ...Option) (*Mapped[T], error) {
	o := applyOptions(opts)

	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: map %s: %w", path, err)
	}

	v, err := layout[T](path, m.Bytes())
	if err != nil {
		mustRelease(m)
		return nil, err
	}

	if o.advice != AdviceNormal {
		if err := m.Advise(o.advice); err != nil {
			mustRelease(m)
			return nil, fmt.Errorf("source: advise %s: %w", path, err)
		}
	}

	return &Mapped[T]{m: m, v: v}, nil
}

func (s *Mapped[T]) sealed() {}

// View returns a packed view over the mapped records.
func (s *Mapped[T]) View() view.View[T] {
	if s.closed.Load() {
		return view.View[T]{}
	}
	return s.v
}

// Len returns the number of records.
func (s *Mapped[T]) Len() int { return s.v.Len() }

// Size returns the mapped byte length.
func (s *Mapped[T]) Size() int64 { return int64(s.m.Size()) }

// Bytes returns the mapped bytes, or nil after Close.
func (s *Mapped[T]) Bytes() []byte { return s.m.Bytes() }

// Name returns the mapped file's path.
func (s *Mapped[T]) Name() string { return s.m.Name() }

// Close unmaps the file. It is idempotent. A failed unmap leaves the process
// in an unknown state and panics.
func (s *Mapped[T]) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	mustRelease(s.m)
	return nil
}

func mustRelease(m *mmap.Mapping) {
	if err := releaseMapping(m); err != nil {
		panic(fmt.Sprintf("source: release mapping %s: %v", m.Name(), err))
	}
}
