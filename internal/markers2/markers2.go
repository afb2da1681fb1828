// Package markers2 decodes "Serato Markers2" payloads: cue points, saved
// loops, the track color and the BPM lock flag.
//
// The payload is base64 text. Decoded, it starts with the magic 0x01 0x01
// followed by a flat list of elements, each a NUL-terminated ASCII name, a
// 4-byte big-endian length and the element bytes.
package markers2

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/simonhull/cratemeta/internal/binary"
	"github.com/simonhull/cratemeta/internal/types"
)

// Descriptor identifies the payload among a file's embedded objects.
const Descriptor = "Serato Markers2"

// Magic opens both the GEOB body and the decoded payload.
var Magic = []byte{0x01, 0x01}

// Element layouts. Offsets are relative to the element's data.
const (
	colorSize = 4

	cueIndexOffset = 1
	cuePosOffset   = 2
	cueColorOffset = 7
	cueNameOffset  = 12

	loopIndexOffset  = 1
	loopStartOffset  = 2
	loopEndOffset    = 6
	loopColorOffset  = 14
	loopLockedOffset = 19
	loopNameOffset   = 20
)

// Decoder decodes Markers2 payloads.
type Decoder struct {
	// Logger receives debug output for unknown elements. Nil discards.
	Logger *slog.Logger
}

// Decode decodes one payload with a default Decoder.
func Decode(payload []byte) (*types.Markers, error) {
	return (&Decoder{}).Decode(payload)
}

// Decode decodes one payload.
//
// A bad base64 body, a wrong magic or an element that claims more bytes than
// remain fails the whole payload. Known elements too short for their layout
// are skipped with a warning; unknown elements are ignored.
func (d *Decoder) Decode(payload []byte) (*types.Markers, error) {
	inner, err := decodeBody(payload)
	if err != nil {
		return nil, err
	}

	if !bytes.HasPrefix(inner, Magic) {
		return nil, &types.MalformedHeaderError{
			Path:   Descriptor,
			What:   "markers2 magic",
			Reason: fmt.Sprintf("got % x, expected % x", inner[:min(len(inner), 2)], Magic),
		}
	}

	m := &types.Markers{}
	sr := binary.NewBytesReader(inner, Descriptor)

	for offset := int64(len(Magic)); offset < sr.Size(); {
		name, ok := binary.CString(inner[offset:])
		if !ok || name == "" {
			break
		}

		elemStart := offset
		offset += int64(len(name)) + 1

		if sr.Size()-offset < 4 {
			return nil, &types.TruncatedSectionError{
				Path:      Descriptor,
				Tag:       name,
				Offset:    elemStart,
				Remaining: sr.Size() - offset,
			}
		}
		length, err := binary.Read[uint32](sr, offset, name+" length")
		if err != nil {
			return nil, err
		}
		offset += 4

		if remaining := sr.Size() - offset; int64(length) > remaining {
			return nil, &types.TruncatedSectionError{
				Path:      Descriptor,
				Tag:       name,
				Offset:    elemStart,
				Length:    length,
				Remaining: remaining,
			}
		}

		data := inner[offset : offset+int64(length)]
		if err := d.decodeElement(m, name, data); err != nil {
			m.Warnings = append(m.Warnings, types.Warning{
				Stage:   "markers2",
				Message: err.Error(),
				Offset:  elemStart,
			})
		}

		offset += int64(length)
	}

	return m, nil
}

func (d *Decoder) decodeElement(m *types.Markers, name string, data []byte) error {
	switch name {
	case "COLOR":
		if len(data) < colorSize {
			return shortElement(name, len(data), colorSize)
		}
		c := argbAt(data, 0)
		m.Color = &c

	case "CUE":
		if len(data) < cueNameOffset {
			return shortElement(name, len(data), cueNameOffset)
		}
		sr := binary.NewBytesReader(data, name)
		pos, err := binary.Read[uint32](sr, cuePosOffset, "cue position")
		if err != nil {
			return err
		}
		cueName, _ := binary.CString(data[cueNameOffset:])
		m.CuePoints = append(m.CuePoints, types.CuePoint{
			Index:    data[cueIndexOffset],
			Position: pos,
			Color: types.RGB{
				R: data[cueColorOffset],
				G: data[cueColorOffset+1],
				B: data[cueColorOffset+2],
			},
			Name: cueName,
		})

	case "LOOP":
		if len(data) < loopNameOffset {
			return shortElement(name, len(data), loopNameOffset)
		}
		cr := binary.NewChainReader(binary.NewReader(binary.NewBytesReader(data, name), loopStartOffset))
		start := binary.ReadChained[uint32](cr, "loop start")
		end := binary.ReadChained[uint32](cr, "loop end")
		if err := cr.Error(); err != nil {
			return err
		}
		loopName, _ := binary.CString(data[loopNameOffset:])
		m.Loops = append(m.Loops, types.Loop{
			Index:  data[loopIndexOffset],
			Start:  start,
			End:    end,
			Color:  argbAt(data, loopColorOffset),
			Locked: data[loopLockedOffset] == 1,
			Name:   loopName,
		})

	case "BPMLOCK":
		if len(data) < 1 {
			return shortElement(name, len(data), 1)
		}
		m.BPMLock = data[0] != 0

	default:
		d.logger().Debug("ignoring unknown markers2 element", "name", name, "length", len(data))
	}

	return nil
}

func (d *Decoder) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

func argbAt(data []byte, off int) types.ARGB {
	return types.ARGB{A: data[off], R: data[off+1], G: data[off+2], B: data[off+3]}
}

func shortElement(name string, got, want int) error {
	return fmt.Errorf("%s element is %d bytes (need at least %d), skipped", name, got, want)
}

// decodeBody extracts and decodes the base64 text at the start of payload.
func decodeBody(payload []byte) ([]byte, error) {
	// The GEOB body carries its own 0x01 0x01 version ahead of the text.
	// Those bytes are outside the base64 alphabet, so stripping them is safe.
	payload = bytes.TrimPrefix(payload, Magic)

	text, _ := binary.CString(payload)

	clean := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '\n', '\r', '=':
		default:
			clean = append(clean, c)
		}
	}
	// The vendor sometimes leaves a single dangling character.
	if len(clean)%4 == 1 {
		clean = append(clean, 'A')
	}

	inner := make([]byte, base64.RawStdEncoding.DecodedLen(len(clean)))
	n, err := base64.RawStdEncoding.Decode(inner, clean)
	if err != nil {
		return nil, &types.CorruptedFileError{
			Path:   Descriptor,
			Reason: fmt.Sprintf("invalid base64: %v", err),
		}
	}

	return inner[:n], nil
}

// Encode produces a payload in the same form Decode accepts.
func Encode(inner []byte) []byte {
	return append([]byte(base64.StdEncoding.EncodeToString(inner)), 0)
}
