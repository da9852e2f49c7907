package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestNative(t *testing.T) {
	var v uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&v))[0]

	switch first {
	case 0x01:
		require.Equal(t, binary.BigEndian, Native())
		require.False(t, NativeIsWire())
	case 0x02:
		require.Equal(t, binary.LittleEndian, Native())
		require.True(t, NativeIsWire())
	default:
		require.Failf(t, "unexpected byte value", "got: %v", first)
	}
}

func TestWireAppend(t *testing.T) {
	buf := Wire.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint32(0x01020304), Wire.Uint32(buf))
}
