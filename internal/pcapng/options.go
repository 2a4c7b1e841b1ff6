// Package pcapng decodes pcapng capture-file blocks from in-memory byte
// slices.
//
// All decoders are zero-copy: string and byte-slice values in decoded blocks
// alias the input buffer and are invalidated when that buffer is freed or
// reused. Decoders are parameterized by a binary.ByteOrder chosen once per
// section (from the section header's byte-order magic), never re-detected
// per block.
//
// Every decoder distinguishes two failure shapes: *IncompleteError when the
// input is a truncated prefix (retryable with more data) and
// *InvalidFieldError when the data is malformed (terminal). A block is
// either fully decoded or not returned at all.
package pcapng

import "encoding/binary"

const (
	// optEndOfOpt terminates an option list (opt_endofopt).
	optEndOfOpt = 0

	// optComment is shared by every block kind (opt_comment).
	optComment = 1

	// optionHeaderLen is the fixed TLV header: u16 code + u16 length.
	optionHeaderLen = 4
)

// optionPadding returns the number of pad bytes after an option payload.
// Options are padded so each record starts on a 4-byte boundary.
func optionPadding(length int) int {
	return (4 - (length & 3)) & 3
}

// interpreter decodes one option payload into the block kind's option type.
// It receives the raw payload, the option code and the declared length, and
// its errors propagate verbatim as terminal decode failures.
type interpreter[T any] func(payload []byte, code, length uint16) (T, error)

// decodeOptions scans b as a TLV option list and returns the decoded options
// in wire order together with the unconsumed remainder of b.
//
// The scan stops at an opt_endofopt record (whose 4-byte header is consumed)
// or at the end of the slice. A record whose header or payload extends past
// the slice yields an IncompleteError with the exact number of missing
// bytes, so a streaming caller can buffer more input and retry.
func decodeOptions[T any](b []byte, order binary.ByteOrder, interp interpreter[T]) ([]T, []byte, error) {
	var opts []T

	for len(b) > 0 {
		if err := need(b, optionHeaderLen); err != nil {
			return nil, nil, err
		}

		code := order.Uint16(b[0:2])
		length := int(order.Uint16(b[2:4]))

		if code == optEndOfOpt {
			return opts, b[optionHeaderLen:], nil
		}

		if err := need(b, optionHeaderLen+length); err != nil {
			return nil, nil, err
		}
		payload := b[optionHeaderLen : optionHeaderLen+length]

		// Skip forward to the next 4-byte boundary. Padding bytes are not
		// validated, and a slice ending inside the padding still counts as
		// fully consumed.
		next := optionHeaderLen + length + optionPadding(length)
		if next > len(b) {
			next = len(b)
		}
		b = b[next:]

		opt, err := interp(payload, code, uint16(length))
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, opt)
	}

	return opts, b, nil
}
