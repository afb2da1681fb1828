// Package beatgrid decodes "Serato BeatGrid" payloads.
//
// Layout: a 2-byte version, a big-endian u32 marker count, then one 8-byte
// record per marker. Each record is a big-endian f32 beat position followed
// by either a u32 beat count to the next marker or, for the last record
// only, an f32 BPM.
package beatgrid

import (
	stdbinary "encoding/binary"
	"fmt"
	"math"

	"github.com/simonhull/cratemeta/internal/binary"
	"github.com/simonhull/cratemeta/internal/types"
)

// Descriptor identifies the payload among a file's embedded objects.
const Descriptor = "Serato BeatGrid"

const (
	countOffset   = 2
	markersOffset = 6
	recordSize    = 8
)

// Decode decodes a beat grid payload.
func Decode(payload []byte) ([]types.BeatGridMarker, error) {
	sr := binary.NewBytesReader(payload, Descriptor)

	count, err := binary.Read[uint32](sr, countOffset, "marker count")
	if err != nil {
		return nil, fmt.Errorf("read beatgrid header: %w", err)
	}
	if count == 0 {
		return []types.BeatGridMarker{}, nil
	}

	need := int64(count) * recordSize
	if remaining := sr.Size() - markersOffset; need > remaining {
		return nil, &types.TruncatedSectionError{
			Path:      Descriptor,
			Tag:       "markers",
			Offset:    markersOffset,
			Length:    uint32(min(need, int64(^uint32(0)))),
			Remaining: remaining,
		}
	}

	markers := make([]types.BeatGridMarker, 0, count)
	cr := binary.NewChainReader(binary.NewReader(sr, markersOffset))
	for i := range count {
		position := cr.Float32("marker position")
		if i == count-1 {
			markers = append(markers, types.NewTerminalMarker(position, cr.Float32("marker bpm")))
		} else {
			markers = append(markers, types.NewBeatMarker(position, binary.ReadChained[uint32](cr, "marker beats")))
		}
	}
	if err := cr.Error(); err != nil {
		return nil, err
	}

	return markers, nil
}

// Encode produces a payload in the same form Decode accepts. The last
// marker must be terminal and all others must not be.
func Encode(markers []types.BeatGridMarker) ([]byte, error) {
	out := make([]byte, markersOffset, markersOffset+len(markers)*recordSize+1)
	out[0] = 0x01
	stdbinary.BigEndian.PutUint32(out[countOffset:], uint32(len(markers)))

	for i, m := range markers {
		last := i == len(markers)-1
		if m.IsTerminal() != last || (!last && m.BeatsToNext == nil) {
			return nil, fmt.Errorf("marker %d: terminal=%v, want %v", i, m.IsTerminal(), last)
		}
		rec := make([]byte, recordSize)
		stdbinary.BigEndian.PutUint32(rec, math.Float32bits(m.Position))
		if last {
			stdbinary.BigEndian.PutUint32(rec[4:], math.Float32bits(*m.BPM))
		} else {
			stdbinary.BigEndian.PutUint32(rec[4:], *m.BeatsToNext)
		}
		out = append(out, rec...)
	}

	// Trailing footer byte
	return append(out, 0x00), nil
}
