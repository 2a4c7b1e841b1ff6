// Package reader walks a pcapng stream block by block.
//
// The reader handles the generic block framing (type, total length, body,
// trailing total length), detects the section byte order from the Section
// Header Block magic, and hands each block body to the matching decoder in
// internal/pcapng. Block kinds without a decoder are skipped over via the
// framing; malformed framing or block contents abort the stream.
package reader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"firestige.xyz/strix/internal/log"
	"firestige.xyz/strix/internal/pcapng"
)

const (
	// blockFramingLen is the per-block overhead: type, total length and the
	// trailing repeated total length.
	blockFramingLen = 12

	// byteOrderMagicSwapped is pcapng.ByteOrderMagic read under the wrong
	// byte order.
	byteOrderMagicSwapped = 0x4D3C2B1A

	// maxBlockLen caps a single block so corrupt length fields cannot make
	// the reader allocate unbounded buffers.
	maxBlockLen = 16 << 20
)

// Block is one decoded pcapng block: a pcapng.SectionHeader,
// pcapng.InterfaceDescription or pcapng.EnhancedPacket.
type Block interface{}

// Reader reads successive blocks from a pcapng stream.
//
// Decoded blocks borrow from per-block buffers owned by the Reader's caller
// after Next returns, so every block stays valid for as long as it is
// retained.
type Reader struct {
	br    *bufio.Reader
	order binary.ByteOrder

	interfaces []pcapng.InterfaceDescription
}

// NewReader wraps r for block-by-block reading. The stream must begin with
// a Section Header Block; its byte-order magic fixes the byte order for the
// whole section.
func NewReader(r io.Reader) (*Reader, error) {
	nr := &Reader{br: bufio.NewReader(r)}
	if err := nr.sniffByteOrder(); err != nil {
		return nil, err
	}
	return nr, nil
}

// ByteOrder returns the byte order of the current section.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// Interfaces returns the Interface Description Blocks decoded so far in the
// current section, in the order they appeared. Enhanced packets index into
// this list via their InterfaceID.
func (r *Reader) Interfaces() []pcapng.InterfaceDescription {
	return r.interfaces
}

// Next returns the next decoded block, or io.EOF at a clean end of stream.
// A stream ending in the middle of a block yields io.ErrUnexpectedEOF.
func (r *Reader) Next() (Block, error) {
	for {
		// A new Section Header Block may switch the byte order mid-stream
		// (multi-section files), so re-sniff before framing it.
		head, err := r.br.Peek(8)
		if err != nil {
			if err == io.EOF {
				if len(head) == 0 {
					return nil, io.EOF
				}
				return nil, io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("failed to read block header: %w", err)
		}
		if binary.BigEndian.Uint32(head[0:4]) == pcapng.BlockTypeSectionHeader {
			if err := r.sniffByteOrder(); err != nil {
				return nil, err
			}
		}

		blockType, body, err := r.readBlock()
		if err != nil {
			return nil, err
		}

		switch blockType {
		case pcapng.BlockTypeSectionHeader:
			shb, _, err := pcapng.DecodeSectionHeader(body, r.order)
			if err != nil {
				return nil, err
			}
			r.interfaces = nil
			return shb, nil

		case pcapng.BlockTypeInterfaceDescription:
			idb, _, err := pcapng.DecodeInterfaceDescription(body, r.order)
			if err != nil {
				return nil, err
			}
			r.interfaces = append(r.interfaces, idb)
			return idb, nil

		case pcapng.BlockTypeEnhancedPacket:
			epb, _, err := pcapng.DecodeEnhancedPacket(body, r.order)
			if err != nil {
				return nil, err
			}
			return epb, nil

		default:
			log.GetLogger().Debugf("skipping block type 0x%08x (%d bytes)", blockType, len(body))
		}
	}
}

// sniffByteOrder peeks the byte-order magic inside the upcoming Section
// Header Block. The SHB type code is a byte-order palindrome, so only the
// magic disambiguates.
func (r *Reader) sniffByteOrder() error {
	head, err := r.br.Peek(blockFramingLen)
	if err != nil {
		return fmt.Errorf("failed to read section header: %w", err)
	}

	if binary.BigEndian.Uint32(head[0:4]) != pcapng.BlockTypeSectionHeader {
		return &pcapng.InvalidFieldError{Field: "stream does not begin with a section header block"}
	}

	switch binary.BigEndian.Uint32(head[8:12]) {
	case pcapng.ByteOrderMagic:
		r.order = binary.BigEndian
	case byteOrderMagicSwapped:
		r.order = binary.LittleEndian
	default:
		return &pcapng.InvalidFieldError{Field: "section header byte-order magic invalid"}
	}
	return nil
}

// readBlock consumes one block's framing and returns its type and body.
// The body is a fresh buffer, so values decoded from it remain valid after
// the next readBlock call.
func (r *Reader) readBlock() (uint32, []byte, error) {
	head := make([]byte, 8)
	if _, err := io.ReadFull(r.br, head); err != nil {
		if err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("failed to read block header: %w", err)
	}

	blockType := r.order.Uint32(head[0:4])
	totalLen := int(r.order.Uint32(head[4:8]))
	if totalLen < blockFramingLen {
		return 0, nil, &pcapng.InvalidFieldError{Field: "block total length invalid"}
	}
	if totalLen > maxBlockLen {
		return 0, nil, &pcapng.InvalidFieldError{Field: "block total length exceeds limit"}
	}

	rest := make([]byte, totalLen-8)
	if _, err := io.ReadFull(r.br, rest); err != nil {
		return 0, nil, fmt.Errorf("failed to read block body: %w", err)
	}

	trailer := r.order.Uint32(rest[len(rest)-4:])
	if int(trailer) != totalLen {
		return 0, nil, &pcapng.InvalidFieldError{Field: "block trailing length mismatch"}
	}

	return blockType, rest[:len(rest)-4], nil
}
