package pcapng

import (
	"encoding/binary"
	"fmt"

	"github.com/google/gopacket/layers"
)

// idbFixedLen is the fixed part of an Interface Description Block body:
// u16 link type + u32 snaplen.
const idbFixedLen = 6

// LinkType is a link-layer header type code from the tcpdump.org registry.
// It is kept at full width so registry codes above 255 (gopacket's
// layers.LinkType is a uint8) survive decoding unchanged.
type LinkType uint32

// String resolves the code through gopacket's registry where it applies.
// gopacket's metadata tables only cover single-byte codes.
func (lt LinkType) String() string {
	if lt <= 0xFF {
		return layers.LinkType(lt).String()
	}
	return fmt.Sprintf("UnknownLinkType(%d)", uint32(lt))
}

// Interface Description Block option codes, per the pcapng registry.
const (
	ifName        = 2
	ifDescription = 3
	ifIPv4Addr    = 4
	ifIPv6Addr    = 5
	ifMACAddr     = 6
	ifEUIAddr     = 7
	ifSpeed       = 8
	ifTsResol     = 9
	ifTzone       = 10
	ifFilter      = 11
	ifOS          = 12
	ifFCSLen      = 13
	ifTsOffset    = 14
	ifHardware    = 15
)

// InterfaceDescription is one decoded Interface Description Block: the
// container for information describing an interface on which packet data was
// captured.
type InterfaceDescription struct {
	// LinkType identifies the link-layer framing of packets captured on this
	// interface, per the tcpdump.org link-layer header type registry.
	// Unrecognized registry values are preserved as their numeric code.
	LinkType LinkType

	// SnapLen is the maximum number of octets captured from each packet.
	// Zero means no limit.
	SnapLen uint32

	// Options holds the decoded options in wire order.
	Options []InterfaceOption
}

// InterfaceOption is one decoded Interface Description Block option.
//
// String and byte-slice variants alias the decoded buffer.
type InterfaceOption interface {
	isInterfaceOption()
}

// IfName is the name of the device used to capture data.
type IfName string

// IfDescription is a description of the capture device.
type IfDescription string

// IfIPv4Addr is an IPv4 address and netmask of the interface (8 bytes).
type IfIPv4Addr []byte

// IfIPv6Addr is an IPv6 address and prefix length of the interface (17 bytes).
type IfIPv6Addr []byte

// IfMACAddr is the interface hardware MAC address (48 bits).
type IfMACAddr []byte

// IfEUIAddr is the interface hardware EUI address (64 bits).
type IfEUIAddr uint64

// IfSpeed is the interface speed in bits per second.
type IfSpeed uint64

// IfTsResol identifies the resolution of packet timestamps.
type IfTsResol uint8

// IfTzone identifies the time zone for GMT support.
type IfTzone uint32

// IfFilter identifies the filter used to capture traffic.
type IfFilter []byte

// IfOS names the operating system of the machine hosting the interface.
type IfOS string

// IfFCSLen is the length of the frame check sequence in bits.
type IfFCSLen uint8

// IfTsOffset is an offset in seconds added to each packet timestamp to
// obtain the absolute timestamp.
type IfTsOffset uint64

// IfHardware describes the interface hardware.
type IfHardware string

func (IfName) isInterfaceOption() {}
func (IfDescription) isInterfaceOption() {}
func (IfIPv4Addr) isInterfaceOption() {}
func (IfIPv6Addr) isInterfaceOption() {}
func (IfMACAddr) isInterfaceOption() {}
func (IfEUIAddr) isInterfaceOption() {}
func (IfSpeed) isInterfaceOption() {}
func (IfTsResol) isInterfaceOption() {}
func (IfTzone) isInterfaceOption() {}
func (IfFilter) isInterfaceOption() {}
func (IfOS) isInterfaceOption() {}
func (IfFCSLen) isInterfaceOption() {}
func (IfTsOffset) isInterfaceOption() {}
func (IfHardware) isInterfaceOption() {}

// Name returns the if_name option, or "" when absent.
func (d InterfaceDescription) Name() string {
	for _, opt := range d.Options {
		if v, ok := opt.(IfName); ok {
			return string(v)
		}
	}
	return ""
}

// Description returns the if_description option, or "" when absent.
func (d InterfaceDescription) Description() string {
	for _, opt := range d.Options {
		if v, ok := opt.(IfDescription); ok {
			return string(v)
		}
	}
	return ""
}

// TimestampResolution returns the number of timestamp ticks per second for
// packets captured on this interface, derived from if_tsresol. The default
// is microsecond resolution. An if_tsresol with the most significant bit set
// selects a power-of-two resolution.
func (d InterfaceDescription) TimestampResolution() uint64 {
	resol := uint8(6)
	for _, opt := range d.Options {
		if v, ok := opt.(IfTsResol); ok {
			resol = uint8(v)
		}
	}

	if resol&0x80 != 0 {
		return 1 << (resol & 0x7F)
	}
	ticks := uint64(1)
	for i := uint8(0); i < resol; i++ {
		ticks *= 10
	}
	return ticks
}

// DecodeInterfaceDescription decodes one Interface Description Block body
// from b and returns the block together with the unconsumed remainder, so
// the caller can continue with the next block.
func DecodeInterfaceDescription(b []byte, order binary.ByteOrder) (InterfaceDescription, []byte, error) {
	if err := need(b, idbFixedLen); err != nil {
		return InterfaceDescription{}, nil, err
	}

	linktype := LinkType(order.Uint16(b[0:2]))
	snaplen := order.Uint32(b[2:6])

	opts, rest, err := decodeOptions(b[idbFixedLen:], order, func(payload []byte, code, _ uint16) (InterfaceOption, error) {
		return decodeInterfaceOption(payload, code, order)
	})
	if err != nil {
		return InterfaceDescription{}, nil, err
	}

	block := InterfaceDescription{
		LinkType: linktype,
		SnapLen:  snaplen,
		Options:  opts,
	}
	return block, rest, nil
}

// decodeInterfaceOption interprets one IDB option payload by code.
// Codes outside the registry are a terminal failure; forward compatibility
// with unknown codes is deliberately not attempted.
func decodeInterfaceOption(payload []byte, code uint16, order binary.ByteOrder) (InterfaceOption, error) {
	switch code {
	case optComment:
		s, err := optionString(payload, "opt_comment")
		return Comment(s), err
	case ifName:
		s, err := optionString(payload, "if_name")
		return IfName(s), err
	case ifDescription:
		s, err := optionString(payload, "if_description")
		return IfDescription(s), err
	case ifIPv4Addr:
		return IfIPv4Addr(payload), nil
	case ifIPv6Addr:
		return IfIPv6Addr(payload), nil
	case ifMACAddr:
		return IfMACAddr(payload), nil
	case ifEUIAddr:
		v, err := optionUint64(payload, order, "if_euiaddr")
		return IfEUIAddr(v), err
	case ifSpeed:
		v, err := optionUint64(payload, order, "if_speed")
		return IfSpeed(v), err
	case ifTsResol:
		v, err := optionUint8(payload, "if_tsresol")
		return IfTsResol(v), err
	case ifTzone:
		v, err := optionUint32(payload, order, "if_tzone")
		return IfTzone(v), err
	case ifFilter:
		return IfFilter(payload), nil
	case ifOS:
		s, err := optionString(payload, "if_os")
		return IfOS(s), err
	case ifFCSLen:
		v, err := optionUint8(payload, "if_fcslen")
		return IfFCSLen(v), err
	case ifTsOffset:
		v, err := optionUint64(payload, order, "if_tsoffset")
		return IfTsOffset(v), err
	case ifHardware:
		s, err := optionString(payload, "if_hardware")
		return IfHardware(s), err
	default:
		return nil, &InvalidFieldError{Field: "interface description option type invalid"}
	}
}
