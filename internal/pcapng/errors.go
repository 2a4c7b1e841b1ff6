package pcapng

import (
	"errors"
	"fmt"
)

// IncompleteError reports that the input slice is a valid prefix of a block
// which is not yet whole. Needed is the exact number of additional bytes
// required to make the current read succeed, so a streaming caller knows how
// much more to fetch before retrying.
type IncompleteError struct {
	Needed int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("pcapng: incomplete buffer, need %d more bytes", e.Needed)
}

// InvalidFieldError reports structurally malformed or semantically invalid
// data. Field is a static description identifying which field or option
// failed. Unlike IncompleteError it is never resolved by supplying more
// input.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return "pcapng: invalid field: " + e.Field
}

// Incomplete reports whether err signals a truncated buffer, and if so, how
// many more bytes the decoder needs.
func Incomplete(err error) (int, bool) {
	var ie *IncompleteError
	if errors.As(err, &ie) {
		return ie.Needed, true
	}
	return 0, false
}
