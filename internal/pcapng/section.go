package pcapng

import "encoding/binary"

const (
	// shbFixedLen is the fixed part of a Section Header Block body:
	// u32 byte-order magic + u16 major + u16 minor + i64 section length.
	shbFixedLen = 16

	// ByteOrderMagic is the SHB magic read back as 0x1A2B3C4D when the
	// reader's byte order matches the writer's.
	ByteOrderMagic = 0x1A2B3C4D
)

// Section Header Block option codes.
const (
	shbHardware = 2
	shbOS       = 3
	shbUserAppl = 4
)

// SectionHeader is one decoded Section Header Block. It opens a section and
// fixes the byte order for every block that follows it.
type SectionHeader struct {
	MajorVersion uint16
	MinorVersion uint16

	// SectionLength is the length in bytes of the section that follows,
	// or -1 when the writer did not record it.
	SectionLength int64

	Options []SectionOption
}

// SectionOption is one decoded Section Header Block option.
type SectionOption interface {
	isSectionOption()
}

// ShbHardware describes the hardware the capture was made on.
type ShbHardware string

// ShbOS names the operating system the capture was made on.
type ShbOS string

// ShbUserAppl names the application that wrote the capture.
type ShbUserAppl string

func (ShbHardware) isSectionOption() {}
func (ShbOS) isSectionOption() {}
func (ShbUserAppl) isSectionOption() {}

// DecodeSectionHeader decodes one Section Header Block body from b under the
// given byte order and returns the block plus the unconsumed remainder.
// The byte-order magic must read back as ByteOrderMagic under that order,
// otherwise the field is invalid.
func DecodeSectionHeader(b []byte, order binary.ByteOrder) (SectionHeader, []byte, error) {
	if err := need(b, shbFixedLen); err != nil {
		return SectionHeader{}, nil, err
	}

	if order.Uint32(b[0:4]) != ByteOrderMagic {
		return SectionHeader{}, nil, &InvalidFieldError{Field: "section header byte-order magic invalid"}
	}

	major := order.Uint16(b[4:6])
	minor := order.Uint16(b[6:8])
	sectionLen := int64(order.Uint64(b[8:16]))

	opts, rest, err := decodeOptions(b[shbFixedLen:], order, func(payload []byte, code, _ uint16) (SectionOption, error) {
		return decodeSectionOption(payload, code)
	})
	if err != nil {
		return SectionHeader{}, nil, err
	}

	block := SectionHeader{
		MajorVersion:  major,
		MinorVersion:  minor,
		SectionLength: sectionLen,
		Options:       opts,
	}
	return block, rest, nil
}

func decodeSectionOption(payload []byte, code uint16) (SectionOption, error) {
	switch code {
	case optComment:
		s, err := optionString(payload, "opt_comment")
		return Comment(s), err
	case shbHardware:
		s, err := optionString(payload, "shb_hardware")
		return ShbHardware(s), err
	case shbOS:
		s, err := optionString(payload, "shb_os")
		return ShbOS(s), err
	case shbUserAppl:
		s, err := optionString(payload, "shb_userappl")
		return ShbUserAppl(s), err
	default:
		return nil, &InvalidFieldError{Field: "section header option type invalid"}
	}
}
