package pcapng

// Block type codes from the pcapng registry. A pcapng stream is a sequence
// of self-delimited blocks; each block kind instantiates the same TLV option
// mechanism with its own option code space.
const (
	BlockTypeInterfaceDescription = 0x00000001
	BlockTypeEnhancedPacket       = 0x00000006
	BlockTypeSectionHeader        = 0x0A0D0D0A
)

// Comment is the opt_comment option. Its code (1) is shared by every block
// kind, so the same type satisfies each block's option interface.
type Comment string

func (Comment) isInterfaceOption() {}
func (Comment) isSectionOption()   {}
func (Comment) isPacketOption()    {}
