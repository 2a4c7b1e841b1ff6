package pcapng

import "encoding/binary"

// epbFixedLen is the fixed part of an Enhanced Packet Block body:
// u32 interface ID + u32 timestamp high + u32 timestamp low +
// u32 captured length + u32 original length.
const epbFixedLen = 20

// Enhanced Packet Block option codes.
const (
	epbFlags     = 2
	epbHash      = 3
	epbDropCount = 4
)

// EnhancedPacket is one decoded Enhanced Packet Block: a single captured
// packet together with the interface it arrived on.
type EnhancedPacket struct {
	// InterfaceID indexes the Interface Description Blocks seen earlier in
	// the same section.
	InterfaceID uint32

	// TimestampHigh and TimestampLow form a 64-bit timestamp whose unit is
	// fixed by the interface's if_tsresol option.
	TimestampHigh uint32
	TimestampLow  uint32

	// CapturedLen is the number of packet octets stored in Data; OriginalLen
	// is the packet's length on the wire.
	CapturedLen uint32
	OriginalLen uint32

	// Data is the captured packet, aliasing the decoded buffer.
	Data []byte

	Options []PacketOption
}

// Timestamp returns the packet timestamp in the interface's timestamp units.
func (p EnhancedPacket) Timestamp() uint64 {
	return uint64(p.TimestampHigh)<<32 | uint64(p.TimestampLow)
}

// PacketOption is one decoded Enhanced Packet Block option.
type PacketOption interface {
	isPacketOption()
}

// EpbFlags carries link-layer information about the packet (direction,
// reception kind, FCS length, link-layer errors).
type EpbFlags uint32

// EpbHash is a hash of the packet, first byte identifying the algorithm.
type EpbHash []byte

// EpbDropCount is the number of packets lost between this packet and the
// preceding one on the same interface.
type EpbDropCount uint64

func (EpbFlags) isPacketOption() {}
func (EpbHash) isPacketOption() {}
func (EpbDropCount) isPacketOption() {}

// DecodeEnhancedPacket decodes one Enhanced Packet Block body from b under
// the given byte order and returns the block plus the unconsumed remainder.
func DecodeEnhancedPacket(b []byte, order binary.ByteOrder) (EnhancedPacket, []byte, error) {
	if err := need(b, epbFixedLen); err != nil {
		return EnhancedPacket{}, nil, err
	}

	block := EnhancedPacket{
		InterfaceID:   order.Uint32(b[0:4]),
		TimestampHigh: order.Uint32(b[4:8]),
		TimestampLow:  order.Uint32(b[8:12]),
		CapturedLen:   order.Uint32(b[12:16]),
		OriginalLen:   order.Uint32(b[16:20]),
	}

	captured := int(block.CapturedLen)
	if err := need(b, epbFixedLen+captured); err != nil {
		return EnhancedPacket{}, nil, err
	}
	block.Data = b[epbFixedLen : epbFixedLen+captured]

	// Packet data is padded to a 4-byte boundary like an option payload.
	next := epbFixedLen + captured + optionPadding(captured)
	if next > len(b) {
		next = len(b)
	}

	opts, rest, err := decodeOptions(b[next:], order, func(payload []byte, code, _ uint16) (PacketOption, error) {
		return decodePacketOption(payload, code, order)
	})
	if err != nil {
		return EnhancedPacket{}, nil, err
	}

	block.Options = opts
	return block, rest, nil
}

func decodePacketOption(payload []byte, code uint16, order binary.ByteOrder) (PacketOption, error) {
	switch code {
	case optComment:
		s, err := optionString(payload, "opt_comment")
		return Comment(s), err
	case epbFlags:
		v, err := optionUint32(payload, order, "epb_flags")
		return EpbFlags(v), err
	case epbHash:
		return EpbHash(payload), nil
	case epbDropCount:
		v, err := optionUint64(payload, order, "epb_dropcount")
		return EpbDropCount(v), err
	default:
		return nil, &InvalidFieldError{Field: "enhanced packet option type invalid"}
	}
}
