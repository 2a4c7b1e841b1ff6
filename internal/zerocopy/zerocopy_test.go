package zerocopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	b := []byte("hello")
	s := String(b)
	assert.Equal(t, "hello", s)

	// The string is a view, not a copy.
	b[0] = 'H'
	assert.Equal(t, "Hello", s)
}

func TestStringEmpty(t *testing.T) {
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "", String([]byte{}))
}
