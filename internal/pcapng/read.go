package pcapng

import (
	"encoding/binary"
	"unicode/utf8"

	"firestige.xyz/strix/internal/zerocopy"
)

// need is the shared bounded-read check. Every fixed-width read of the
// block layouts goes through it so truncation is always reported as an
// IncompleteError carrying the exact deficit.
func need(b []byte, n int) error {
	if len(b) < n {
		return &IncompleteError{Needed: n - len(b)}
	}
	return nil
}

// The option* helpers decode one option payload of a declared kind. The
// payload slice is already bounds-checked by the option scanner, so a payload
// shorter than the option's fixed width is corruption, not truncation.

// optionString validates payload as UTF-8 and returns a zero-copy view.
func optionString(payload []byte, field string) (string, error) {
	if !utf8.Valid(payload) {
		return "", &InvalidFieldError{Field: field + " is not valid UTF-8"}
	}
	return zerocopy.String(payload), nil
}

func optionUint8(payload []byte, field string) (uint8, error) {
	if len(payload) < 1 {
		return 0, &InvalidFieldError{Field: field + " payload too short"}
	}
	return payload[0], nil
}

func optionUint32(payload []byte, order binary.ByteOrder, field string) (uint32, error) {
	if len(payload) < 4 {
		return 0, &InvalidFieldError{Field: field + " payload too short"}
	}
	return order.Uint32(payload), nil
}

func optionUint64(payload []byte, order binary.ByteOrder, field string) (uint64, error) {
	if len(payload) < 8 {
		return 0, &InvalidFieldError{Field: field + " payload too short"}
	}
	return order.Uint64(payload), nil
}
