// Package record defines Order, the fixed 24-byte binary order record, together
// with its wire codec, a buffered writer and a synthetic generator.
//
// Wire layout (little-endian, no header, records back to back):
//
//	offset  size  field
//	     0     8  timestamp   uint64, nanoseconds
//	     8     4  instrument  uint32
//	    12     4  size        int32, signed (negative = sell)
//	    16     4  price       float32, IEEE-754
//	    20     4  type        uint32, flags
//
// Order's in-memory layout is identical to the wire layout on little-endian
// hosts, which is what lets sources hand out views over file bytes without decoding.
package record

import (
	"fmt"
	"unsafe"
)

// Order is one order event. Field order and widths are part of the file format.
type Order struct {
	Timestamp  uint64
	Instrument uint32
	Size       int32
	Price      float32
	Type       uint32
}

// Size is the encoded size of an Order in bytes.
const Size = 24

// Field offsets within an encoded Order.
const (
	OffsetTimestamp  = 0
	OffsetInstrument = 8
	OffsetSize       = 12
	OffsetPrice      = 16
	OffsetType       = 20
)

// Compile-time layout checks: each expression is a negative array length
// (and fails to build) when the struct drifts from the wire format.
var (
	_ [Size - unsafe.Sizeof(Order{})]struct{}
	_ [unsafe.Sizeof(Order{}) - Size]struct{}
	_ [OffsetInstrument - unsafe.Offsetof(Order{}.Instrument)]struct{}
	_ [unsafe.Offsetof(Order{}.Instrument) - OffsetInstrument]struct{}
	_ [OffsetSize - unsafe.Offsetof(Order{}.Size)]struct{}
	_ [unsafe.Offsetof(Order{}.Size) - OffsetSize]struct{}
	_ [OffsetPrice - unsafe.Offsetof(Order{}.Price)]struct{}
	_ [unsafe.Offsetof(Order{}.Price) - OffsetPrice]struct{}
	_ [OffsetType - unsafe.Offsetof(Order{}.Type)]struct{}
	_ [unsafe.Offsetof(Order{}.Type) - OffsetType]struct{}
)

// AbsSize returns |Size| widened so that math.MinInt32 does not overflow.
func (o *Order) AbsSize() int64 {
	s := int64(o.Size)
	if s < 0 {
		return -s
	}
	return s
}

// String renders the order as "[timestamp] instrument: size@price (type)".
func (o Order) String() string {
	return fmt.Sprintf("[%d] %d: %d@%g (%d)", o.Timestamp, o.Instrument, o.Size, o.Price, o.Type)
}
