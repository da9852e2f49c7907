package record

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/tickscan/internal/endian"
	"github.com/hupe1980/tickscan/internal/mem"
	"github.com/hupe1980/tickscan/view"
)

var (
	// ErrShortBuffer is returned when fewer than Size bytes are available to decode.
	ErrShortBuffer = errors.New("record: buffer shorter than one record")
	// ErrForeignByteOrder is returned by Cast on hosts whose byte order differs from the wire format.
	ErrForeignByteOrder = errors.New("record: host byte order differs from wire format")
)

// Decode reads one Order from the first Size bytes of b.
func Decode(b []byte) (Order, error) {
	if len(b) < Size {
		return Order{}, fmt.Errorf("%w: %d bytes", ErrShortBuffer, len(b))
	}
	e := endian.Wire
	return Order{
		Timestamp:  e.Uint64(b[OffsetTimestamp:]),
		Instrument: e.Uint32(b[OffsetInstrument:]),
		Size:       int32(e.Uint32(b[OffsetSize:])),
		Price:      math.Float32frombits(e.Uint32(b[OffsetPrice:])),
		Type:       e.Uint32(b[OffsetType:]),
	}, nil
}

// Encode writes o into the first Size bytes of b.
func Encode(b []byte, o Order) error {
	if len(b) < Size {
		return fmt.Errorf("%w: %d bytes", ErrShortBuffer, len(b))
	}
	e := endian.Wire
	e.PutUint64(b[OffsetTimestamp:], o.Timestamp)
	e.PutUint32(b[OffsetInstrument:], o.Instrument)
	e.PutUint32(b[OffsetSize:], uint32(o.Size))
	e.PutUint32(b[OffsetPrice:], math.Float32bits(o.Price))
	e.PutUint32(b[OffsetType:], o.Type)
	return nil
}

// Append appends the encoding of o to b.
func Append(b []byte, o Order) []byte {
	e := endian.Wire
	b = e.AppendUint64(b, o.Timestamp)
	b = e.AppendUint32(b, o.Instrument)
	b = e.AppendUint32(b, uint32(o.Size))
	b = e.AppendUint32(b, math.Float32bits(o.Price))
	return e.AppendUint32(b, o.Type)
}

// Cast reinterprets b as packed Orders without copying. b must be 8-byte aligned,
// a whole number of records, and the host must be little-endian.
// The view borrows b.
func Cast(b []byte) (view.View[Order], error) {
	if !endian.NativeIsWire() {
		return view.View[Order]{}, ErrForeignByteOrder
	}
	if !mem.IsAligned(b, 8) {
		return view.View[Order]{}, view.ErrMisaligned
	}
	return view.FromBytes[Order](b, Size)
}
