package cmd

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/strix/internal/pcapng"
)

// writeCapture writes a minimal little-endian capture (section header plus
// one Ethernet interface) and returns its path.
func writeCapture(t *testing.T) string {
	t.Helper()
	order := binary.LittleEndian

	frame := func(blockType uint32, body []byte) []byte {
		total := len(body) + 12
		b := make([]byte, 8, total)
		order.PutUint32(b[0:4], blockType)
		order.PutUint32(b[4:8], uint32(total))
		b = append(b, body...)
		tail := make([]byte, 4)
		order.PutUint32(tail, uint32(total))
		return append(b, tail...)
	}
	option := func(code uint16, value []byte) []byte {
		pad := (4 - (len(value) & 3)) & 3
		b := make([]byte, 4+len(value)+pad)
		order.PutUint16(b[0:2], code)
		order.PutUint16(b[2:4], uint16(len(value)))
		copy(b[4:], value)
		return b
	}
	terminator := make([]byte, 4)

	shb := make([]byte, 16)
	order.PutUint32(shb[0:4], pcapng.ByteOrderMagic)
	order.PutUint16(shb[4:6], 1)
	shb = append(shb, option(3, []byte("Linux"))...)
	shb = append(shb, terminator...)

	idb := make([]byte, 6)
	order.PutUint16(idb[0:2], 1) // Ethernet
	order.PutUint32(idb[2:6], 65535)
	idb = append(idb, option(2, []byte("eth0"))...)
	idb = append(idb, terminator...)

	var capture []byte
	capture = append(capture, frame(pcapng.BlockTypeSectionHeader, shb)...)
	capture = append(capture, frame(pcapng.BlockTypeInterfaceDescription, idb)...)

	path := filepath.Join(t.TempDir(), "test.pcapng")
	require.NoError(t, os.WriteFile(path, capture, 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestInfoCommand(t *testing.T) {
	path := writeCapture(t)

	out, err := runCommand(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1.0")
	assert.Contains(t, out, "little-endian")
	assert.Contains(t, out, "Linux")
}

func TestInterfacesCommandYAML(t *testing.T) {
	path := writeCapture(t)

	out, err := runCommand(t, "interfaces", path, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "eth0")
	assert.Contains(t, out, "Ethernet")
}

func TestInfoCommandMissingFile(t *testing.T) {
	_, err := runCommand(t, "info", filepath.Join(t.TempDir(), "absent.pcapng"))
	assert.Error(t, err)
}
