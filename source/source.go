package source

import (
	"github.com/cespare/xxhash/v2"
	"github.com/hupe1980/tickscan/view"
)

// Source is a read-only collection of T backed by file contents.
// It is implemented by *Mapped, *Buffered and *Pinned only.
type Source[T any] interface {
	// View returns a packed view over all records. It is empty after Close.
	View() view.View[T]
	// Len returns the number of records.
	Len() int
	// Size returns the byte length of the backing data.
	Size() int64
	// Bytes returns the raw backing data. It must not be modified.
	Bytes() []byte
	// Close releases the backing storage. It is idempotent.
	Close() error

	sealed()
}

var (
	_ Source[uint64] = (*Mapped[uint64])(nil)
	_ Source[uint64] = (*Buffered[uint64])(nil)
	_ Source[uint64] = (*Pinned[uint64])(nil)
)

// Fingerprint returns the xxhash64 of the source bytes.
// Two sources with equal fingerprints aggregate to equal results.
func Fingerprint[T any](src Source[T]) uint64 {
	return xxhash.Sum64(src.Bytes())
}

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527 for details.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// layout views b as packed T, rejecting partial trailing records.
func layout[T any](name string, b []byte) (view.View[T], error) {
	es := view.SizeOf[T]()
	if es == 0 {
		return view.View[T]{}, ErrZeroSize
	}
	if len(b)%es != 0 {
		return view.View[T]{}, &LayoutError{Name: name, Size: int64(len(b)), ElemSize: es}
	}
	return view.FromBytes[T](b, es)
}
