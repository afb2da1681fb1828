package section

import (
	"bytes"
	"encoding/binary"

	cbinary "github.com/simonhull/cratemeta/internal/binary"
)

// Raw encodes a section with an arbitrary payload.
func Raw(tag string, payload []byte) []byte {
	buf := &bytes.Buffer{}
	buf.Grow(HeaderSize + len(payload))
	buf.WriteString(tag)
	binary.Write(buf, binary.BigEndian, uint32(len(payload)))
	buf.Write(payload)
	return buf.Bytes()
}

// String encodes a UTF-16BE string section.
func String(tag, s string) []byte {
	return Raw(tag, cbinary.EncodeUTF16BE(s))
}

// Uint encodes v as a big-endian integer section of the given width.
func Uint(tag string, v uint64, width int) []byte {
	payload := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		payload[i] = byte(v)
		v >>= 8
	}
	return Raw(tag, payload)
}

// Container encodes a section whose payload is the concatenated children.
func Container(tag string, children ...[]byte) []byte {
	return Raw(tag, bytes.Join(children, nil))
}
