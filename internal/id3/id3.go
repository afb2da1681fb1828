// Package id3 reads the ID3v2 frames a DJ library cares about: the general
// encapsulated objects (GEOB) that carry cue and beat grid payloads, and a
// handful of text frames.
package id3

import (
	"bytes"
	"encoding/binary"
	"fmt"

	binutil "github.com/simonhull/cratemeta/internal/binary"
	"github.com/simonhull/cratemeta/internal/types"
)

const (
	headerSize      = 10
	frameHeaderSize = 10

	flagExtendedHeader = 0x40
)

// Header represents an ID3v2 tag header
type Header struct {
	Version  byte // Major version (3 or 4)
	Revision byte // Minor version
	Flags    byte
	Size     uint32 // Tag size (excluding header), synchsafe
}

// Frame represents a single ID3v2 frame
type Frame struct {
	ID    string // 4-character frame ID (e.g., "TIT2", "GEOB")
	Size  uint32
	Flags uint16
	Data  []byte
}

// Object is a decoded GEOB frame.
type Object struct {
	MIME        string
	Filename    string
	Description string
	Data        []byte
}

// Tag holds the frames read from one file.
type Tag struct {
	Header Header

	Title  string
	Artist string
	Album  string
	Genre  string
	Key    string
	BPM    string

	// Objects maps a GEOB description to its data. A later frame with the
	// same description replaces an earlier one.
	Objects map[string][]byte

	// Warnings for frames that could not be read
	Warnings []types.Warning
}

// Object returns the data of the GEOB frame with the given description.
func (t *Tag) Object(description string) ([]byte, bool) {
	data, ok := t.Objects[description]
	return data, ok
}

// Read parses the ID3v2 tag at the start of sr.
func Read(sr *binutil.SafeReader) (*Tag, error) {
	buf := make([]byte, headerSize)
	if err := sr.ReadAt(buf, 0, "ID3v2 header"); err != nil {
		return nil, &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: "failed to read ID3v2 header",
		}
	}

	if string(buf[0:3]) != "ID3" {
		return nil, &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: "not an ID3v2 file (missing ID3 header)",
		}
	}

	tag := &Tag{
		Header: Header{
			Version:  buf[3],
			Revision: buf[4],
			Flags:    buf[5],
			Size:     decodeSynchsafe(buf[6:10]),
		},
		Objects: make(map[string][]byte),
	}

	// Only support ID3v2.3 and ID3v2.4
	if v := tag.Header.Version; v != 3 && v != 4 {
		return nil, &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: fmt.Sprintf("unsupported ID3v2 version: 2.%d", v),
		}
	}

	offset := int64(headerSize)
	if tag.Header.Flags&flagExtendedHeader != 0 {
		ext, err := sr.Bytes(offset, 4, "extended header size")
		if err != nil {
			return nil, err
		}
		if tag.Header.Version == 4 {
			// v2.4 counts the size field itself
			offset += int64(decodeSynchsafe(ext))
		} else {
			offset += int64(binary.BigEndian.Uint32(ext)) + 4
		}
	}

	tagEnd := min(int64(headerSize)+int64(tag.Header.Size), sr.Size())
	for offset+frameHeaderSize <= tagEnd {
		hdr, err := sr.Bytes(offset, frameHeaderSize, "frame header")
		if err != nil {
			break
		}

		// Padding
		if hdr[0] == 0 {
			break
		}

		frame := Frame{
			ID:    string(hdr[0:4]),
			Flags: binary.BigEndian.Uint16(hdr[8:10]),
		}
		if tag.Header.Version == 4 {
			frame.Size = decodeSynchsafe(hdr[4:8])
		} else {
			frame.Size = binary.BigEndian.Uint32(hdr[4:8])
		}

		data, err := sr.Bytes(offset+frameHeaderSize, int(frame.Size), fmt.Sprintf("frame %s data", frame.ID))
		if err != nil {
			tag.Warnings = append(tag.Warnings, types.Warning{
				Stage:   "id3",
				Message: fmt.Sprintf("failed to read frame %s: %v", frame.ID, err),
				Offset:  offset,
			})
			break
		}
		frame.Data = data

		switch {
		case frame.ID == "GEOB":
			if obj, ok := parseObjectFrame(frame); ok {
				tag.Objects[obj.Description] = obj.Data
			} else {
				tag.Warnings = append(tag.Warnings, types.Warning{
					Stage:   "id3",
					Message: "malformed GEOB frame",
					Offset:  offset,
				})
			}
		case frame.ID[0] == 'T' && frame.ID != "TXXX":
			parseTextFrame(frame, tag)
		}

		offset += frameHeaderSize + int64(frame.Size)
	}

	return tag, nil
}

// decodeSynchsafe decodes a synchsafe integer (7 bits per byte)
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// parseTextFrame parses the text frames a track record uses
func parseTextFrame(frame Frame, tag *Tag) {
	if len(frame.Data) < 1 {
		return
	}

	text := decodeText(frame.Data[1:], frame.Data[0])

	switch frame.ID {
	case "TIT2":
		tag.Title = text
	case "TPE1":
		tag.Artist = text
	case "TALB":
		tag.Album = text
	case "TCON":
		tag.Genre = text
	case "TKEY":
		tag.Key = text
	case "TBPM":
		tag.BPM = text
	}
}

// parseObjectFrame parses a GEOB frame
// Format: [encoding][MIME\0][filename\0][description\0][data]
func parseObjectFrame(frame Frame) (Object, bool) {
	if len(frame.Data) < 2 {
		return Object{}, false
	}

	encoding := frame.Data[0]
	data := frame.Data[1:]

	// MIME type is always ISO-8859-1
	mimeEnd := bytes.IndexByte(data, 0)
	if mimeEnd < 0 {
		return Object{}, false
	}
	obj := Object{MIME: string(data[:mimeEnd])}
	data = data[mimeEnd+1:]

	nameEnd := findNullTerminator(data, encoding)
	if nameEnd < 0 {
		return Object{}, false
	}
	obj.Filename = decodeText(data[:nameEnd], encoding)
	data = data[nameEnd+terminatorSize(encoding):]

	descEnd := findNullTerminator(data, encoding)
	if descEnd < 0 {
		return Object{}, false
	}
	obj.Description = decodeText(data[:descEnd], encoding)
	obj.Data = data[descEnd+terminatorSize(encoding):]

	return obj, true
}

// decodeText decodes text based on ID3v2 encoding byte
func decodeText(data []byte, encoding byte) string {
	if len(data) == 0 {
		return ""
	}

	switch encoding {
	case 1: // UTF-16 with BOM
		return decodeUTF16(data)
	case 2: // UTF-16BE (ID3v2.4)
		return binutil.DecodeUTF16BE(data)
	default: // ISO-8859-1, UTF-8
		s, _ := binutil.CString(data)
		return s
	}
}

// decodeUTF16 decodes UTF-16 with BOM
func decodeUTF16(data []byte) string {
	if len(data) < 2 {
		return ""
	}

	switch {
	case data[0] == 0xFF && data[1] == 0xFE:
		return binutil.DecodeUTF16LE(data[2:])
	case data[0] == 0xFE && data[1] == 0xFF:
		return binutil.DecodeUTF16BE(data[2:])
	}

	// No BOM - assume big-endian
	return binutil.DecodeUTF16BE(data)
}

// findNullTerminator finds the null terminator based on encoding
func findNullTerminator(data []byte, encoding byte) int {
	switch encoding {
	case 1, 2: // UTF-16 (double-byte null)
		for i := 0; i < len(data)-1; i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return -1
	default:
		return bytes.IndexByte(data, 0)
	}
}

// terminatorSize returns the size of the null terminator for the encoding
func terminatorSize(encoding byte) int {
	if encoding == 1 || encoding == 2 {
		return 2
	}
	return 1
}
