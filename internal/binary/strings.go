package binary

import (
	"bytes"
	"unicode/utf16"
)

// CString returns the bytes of b up to the first NUL and whether a
// terminator was found. Without a terminator the whole slice is returned.
func CString(b []byte) (string, bool) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i]), true
	}
	return string(b), false
}

// DecodeUTF16BE decodes UTF-16 big-endian text, stopping at the first zero
// code unit. A trailing odd byte is dropped.
func DecodeUTF16BE(data []byte) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}

	u16 := make([]uint16, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		unit := uint16(data[i])<<8 | uint16(data[i+1])
		if unit == 0 {
			break
		}
		u16 = append(u16, unit)
	}

	return string(utf16.Decode(u16))
}

// DecodeUTF16LE decodes UTF-16 little-endian text, stopping at the first
// zero code unit.
func DecodeUTF16LE(data []byte) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}

	u16 := make([]uint16, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		unit := uint16(data[i]) | uint16(data[i+1])<<8
		if unit == 0 {
			break
		}
		u16 = append(u16, unit)
	}

	return string(utf16.Decode(u16))
}

// EncodeUTF16BE encodes s as UTF-16 big-endian without a terminator.
func EncodeUTF16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}
