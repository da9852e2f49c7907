// Package endian answers two questions for record codecs: which byte order the
// wire format uses, and whether the host shares it so records can be read in place.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// Engine combines ByteOrder and AppendByteOrder from encoding/binary.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Wire is the byte order of record files: the little-endian layout written by
// x86 producers.
var Wire Engine = binary.LittleEndian

var native = detect()

func detect() Engine {
	var i uint16 = 0x0100
	if (*[2]byte)(unsafe.Pointer(&i))[0] == 0x01 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Native returns the host byte order.
func Native() Engine {
	return native
}

// NativeIsWire reports whether in-memory values already have the wire layout,
// which is the precondition for zero-copy record access.
func NativeIsWire() bool {
	return native == Wire
}
