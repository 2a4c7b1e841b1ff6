// Package zerocopy provides allocation-free views over caller-owned buffers.
//
// Every value produced here aliases the source buffer. It is invalidated the
// moment the buffer is freed, reused, or mutated; callers must keep the
// buffer alive at least as long as any derived value.
package zerocopy

import "unsafe"

// String returns a string view over b without copying.
//
// The returned string shares b's backing array. Mutating b afterwards
// breaks the string-immutability assumption, so callers must treat the
// buffer as read-only for the lifetime of the result.
func String(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
