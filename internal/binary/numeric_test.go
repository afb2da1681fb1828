package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/simonhull/cratemeta/internal/types"
)

func TestReadUintN(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint64
	}{
		{name: "zero width", data: nil, want: 0},
		{name: "one byte", data: []byte{0x01}, want: 1},
		{name: "three bytes", data: []byte{0x01, 0x02, 0x03}, want: 0x010203},
		{name: "four bytes", data: []byte{0x00, 0x00, 0x01, 0x00}, want: 256},
		{name: "eight bytes", data: []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}, want: 0x123456789ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := NewBytesReader(tt.data, "test.crate")
			got, err := ReadUintN(sr, 0, len(tt.data), "uint")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadUintN() = 0x%x, want 0x%x", got, tt.want)
			}
		})
	}
}

func TestReadUintN_OutOfBounds(t *testing.T) {
	sr := NewBytesReader([]byte{0x01, 0x02}, "test.crate")

	_, err := ReadUintN(sr, 1, 4, "uint")
	var oob *types.OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected OutOfBoundsError, got %v", err)
	}
	if oob.Length != 4 || oob.Offset != 1 {
		t.Errorf("unexpected error fields: %+v", oob)
	}
}

func TestReadFloat32(t *testing.T) {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, float32(128.5))
	binary.Write(buf, binary.BigEndian, float32(-1.25))

	sr := NewBytesReader(buf.Bytes(), "test.mp3")

	first, err := ReadFloat32(sr, 0, "first")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 128.5 {
		t.Errorf("expected 128.5, got %v", first)
	}

	second, err := ReadFloat32(sr, 4, "second")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != -1.25 {
		t.Errorf("expected -1.25, got %v", second)
	}

	if _, err := ReadFloat32(sr, 6, "short"); err == nil {
		t.Error("expected error for short float read")
	}
}

func TestChainReader_Float32(t *testing.T) {
	data := make([]byte, 8)
	binary.BigEndian.PutUint32(data, math.Float32bits(1.5))
	binary.BigEndian.PutUint32(data[4:], 16)

	cr := NewChainReader(NewReader(NewBytesReader(data, "test.mp3"), 0))
	pos := cr.Float32("position")
	beats := ReadChained[uint32](cr, "beats")

	if err := cr.Error(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos != 1.5 || beats != 16 {
		t.Errorf("got (%v, %d), want (1.5, 16)", pos, beats)
	}

	_ = cr.Float32("past end")
	if cr.Error() == nil {
		t.Error("expected error reading past end")
	}
}

func TestDecodeUTF16BE(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "empty", data: nil, want: ""},
		{name: "ascii", data: EncodeUTF16BE("Music/Song.mp3"), want: "Music/Song.mp3"},
		{name: "stops at zero unit", data: append(EncodeUTF16BE("ab"), 0x00, 0x00, 0x00, 0x63), want: "ab"},
		{name: "odd trailing byte", data: append(EncodeUTF16BE("x"), 0x41), want: "x"},
		{name: "surrogate pair", data: EncodeUTF16BE("🎵"), want: "🎵"},
		{name: "accented", data: EncodeUTF16BE("Café del Mar"), want: "Café del Mar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeUTF16BE(tt.data); got != tt.want {
				t.Errorf("DecodeUTF16BE() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeUTF16LE(t *testing.T) {
	data := []byte{'H', 0, 'i', 0, 0, 0, 'x', 0}
	if got := DecodeUTF16LE(data); got != "Hi" {
		t.Errorf("DecodeUTF16LE() = %q, want %q", got, "Hi")
	}
}

func TestCString(t *testing.T) {
	s, ok := CString([]byte("CUE\x00rest"))
	if !ok || s != "CUE" {
		t.Errorf("CString() = (%q, %v), want (CUE, true)", s, ok)
	}

	s, ok = CString([]byte("unterminated"))
	if ok || s != "unterminated" {
		t.Errorf("CString() = (%q, %v), want (unterminated, false)", s, ok)
	}
}
