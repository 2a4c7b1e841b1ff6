package pcapng

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packEPB builds an Enhanced Packet Block body around the given packet data.
func packEPB(order binary.ByteOrder, interfaceID uint32, ts uint64, data []byte, options ...[]byte) []byte {
	b := make([]byte, epbFixedLen)
	order.PutUint32(b[0:4], interfaceID)
	order.PutUint32(b[4:8], uint32(ts>>32))
	order.PutUint32(b[8:12], uint32(ts))
	order.PutUint32(b[12:16], uint32(len(data)))
	order.PutUint32(b[16:20], uint32(len(data)))
	b = append(b, data...)
	b = append(b, make([]byte, optionPadding(len(data)))...)
	for _, opt := range options {
		b = append(b, opt...)
	}
	return b
}

func TestDecodeEnhancedPacket(t *testing.T) {
	order := binary.LittleEndian
	data := []byte{0x45, 0x00, 0x00, 0x1C, 0xAB}

	drop := make([]byte, 8)
	order.PutUint64(drop, 2)
	flags := make([]byte, 4)
	order.PutUint32(flags, 1)

	b := packEPB(order, 0, 0x0001_0000_0002, data,
		packOption(order, epbFlags, flags),
		packOption(order, epbDropCount, drop),
		packEndOfOptions(order),
	)

	block, rest, err := DecodeEnhancedPacket(b, order)
	require.NoError(t, err)
	assert.Empty(t, rest)

	assert.Equal(t, uint32(0), block.InterfaceID)
	assert.Equal(t, uint64(0x0001_0000_0002), block.Timestamp())
	assert.Equal(t, uint32(5), block.CapturedLen)
	assert.Equal(t, uint32(5), block.OriginalLen)
	assert.Equal(t, data, block.Data)

	require.Len(t, block.Options, 2)
	assert.Equal(t, EpbFlags(1), block.Options[0])
	assert.Equal(t, EpbDropCount(2), block.Options[1])
}

func TestDecodeEnhancedPacketShortHeader(t *testing.T) {
	_, _, err := DecodeEnhancedPacket(make([]byte, 8), binary.BigEndian)
	require.Error(t, err)

	needed, ok := Incomplete(err)
	require.True(t, ok)
	assert.Equal(t, 12, needed)
}

func TestDecodeEnhancedPacketTruncatedData(t *testing.T) {
	order := binary.LittleEndian
	b := packEPB(order, 0, 0, make([]byte, 16))
	b = b[:epbFixedLen+10] // captured length says 16, only 10 present

	_, _, err := DecodeEnhancedPacket(b, order)
	require.Error(t, err)

	needed, ok := Incomplete(err)
	require.True(t, ok)
	assert.Equal(t, 6, needed)
}

func TestDecodeEnhancedPacketUnknownOptionCode(t *testing.T) {
	order := binary.LittleEndian
	b := packEPB(order, 0, 0, []byte{1, 2, 3, 4},
		packOption(order, 99, nil),
		packEndOfOptions(order),
	)

	_, _, err := DecodeEnhancedPacket(b, order)
	require.Error(t, err)

	var invalid *InvalidFieldError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Field, "enhanced packet option")
}

func TestDecodeEnhancedPacketZeroCopy(t *testing.T) {
	order := binary.LittleEndian
	b := packEPB(order, 0, 0, []byte{1, 2, 3, 4})

	block, _, err := DecodeEnhancedPacket(b, order)
	require.NoError(t, err)
	assert.Same(t, &b[epbFixedLen], &block.Data[0])
}
