package binary

import (
	"encoding/binary"
	"math"
)

// ReadFloat32 reads a big-endian IEEE 754 single-precision float at the given offset.
//
// Example:
//
//	bpm, err := binary.ReadFloat32(sr, offset+4, "beatgrid bpm")
func ReadFloat32(sr *SafeReader, off int64, what string) (float32, error) {
	bits, err := Read[uint32](sr, off, what)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadUintN reads an n-byte big-endian unsigned integer at the given offset.
//
// n may be anything from 0 to 8; a zero-width read yields 0. Callers must
// reject wider values themselves since they cannot fit in a uint64.
func ReadUintN(sr *SafeReader, off int64, n int, what string) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	buf, err := sr.Bytes(off, n, what)
	if err != nil {
		return 0, err
	}
	return UintN(buf), nil
}

// UintN composes up to 8 big-endian bytes into a uint64.
func UintN(b []byte) uint64 {
	if len(b) == 8 {
		return binary.BigEndian.Uint64(b)
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
