// Package section decodes the nested tag-length-value sections used by
// crate files.
//
// Each section is a 4-byte ASCII tag, a 4-byte big-endian payload length and
// the payload. A small set of tags hold scalar strings or integers; every
// other tag is a container whose payload is itself a run of sections.
package section

import (
	"fmt"
	"iter"

	"github.com/simonhull/cratemeta/internal/binary"
	"github.com/simonhull/cratemeta/internal/types"
)

// HeaderSize is the size of a section header (tag + length).
const HeaderSize = 8

// Section is a raw section header.
type Section struct {
	Tag    string // 4-character tag
	Length uint32 // Payload length, excluding header
	Offset int64  // Position of the header in the buffer
}

// DataOffset returns the offset where the section's payload starts.
func (s *Section) DataOffset() int64 {
	return s.Offset + HeaderSize
}

// End returns the offset just past the section's payload.
func (s *Section) End() int64 {
	return s.DataOffset() + int64(s.Length)
}

// Kind describes how a section's payload is interpreted.
type Kind int

const (
	// KindContainer payloads hold child sections.
	KindContainer Kind = iota
	// KindString payloads hold NUL-terminated UTF-16BE text.
	KindString
	// KindUint payloads hold a big-endian unsigned integer as wide as the payload.
	KindUint
)

var stringTags = map[string]bool{
	"vrsn": true, // Format version
	"ptrk": true, // Track path
	"tvcn": true, // Column name
	"tvcw": true, // Column width
	"tsng": true, // Song title
	"tart": true, // Artist
	"talb": true, // Album
	"tgen": true, // Genre
}

var uintTags = map[string]bool{
	"uadd": true, // Date added
	"utme": true, // Timestamp
	"ulbl": true, // Label color
	"brev": true, // Reverse sort
	"bhrt": true,
	"bcrt": true,
	"bwlb": true,
	"bwll": true,
	"bstl": true,
	"sbav": true,
}

// KindOf returns how the payload of tag is interpreted.
func KindOf(tag string) Kind {
	switch {
	case stringTags[tag]:
		return KindString
	case uintTags[tag]:
		return KindUint
	default:
		return KindContainer
	}
}

// ReadHeader reads the section header at offset. The header and its payload
// must end at or before end, otherwise a TruncatedSectionError is returned.
func ReadHeader(sr *binary.SafeReader, offset, end int64) (*Section, error) {
	if end-offset < HeaderSize {
		return nil, &types.TruncatedSectionError{
			Path:      sr.Path(),
			Offset:    offset,
			Remaining: end - offset,
		}
	}

	tagBytes, err := sr.Bytes(offset, 4, "section tag")
	if err != nil {
		return nil, err
	}
	length, err := binary.Read[uint32](sr, offset+4, "section length")
	if err != nil {
		return nil, err
	}

	s := &Section{
		Tag:    string(tagBytes),
		Length: length,
		Offset: offset,
	}

	if remaining := end - s.DataOffset(); int64(length) > remaining {
		return nil, &types.TruncatedSectionError{
			Path:      sr.Path(),
			Tag:       s.Tag,
			Offset:    offset,
			Length:    length,
			Remaining: remaining,
		}
	}

	return s, nil
}

// Decode decodes every top-level section in data.
// An empty buffer yields no nodes and no error.
func Decode(data []byte, path string) ([]*Node, error) {
	sr := binary.NewBytesReader(data, path)
	return DecodeRange(sr, 0, sr.Size())
}

// DecodeRange decodes the sibling sections in [start, end). Container
// payloads are decoded recursively; no section may extend past end.
func DecodeRange(sr *binary.SafeReader, start, end int64) ([]*Node, error) {
	if end > sr.Size() {
		end = sr.Size()
	}

	var nodes []*Node
	for offset := start; offset < end; {
		s, err := ReadHeader(sr, offset, end)
		if err != nil {
			return nil, err
		}

		node, err := decodeSection(sr, s)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)

		offset = s.End()
	}

	return nodes, nil
}

func decodeSection(sr *binary.SafeReader, s *Section) (*Node, error) {
	node := &Node{Tag: s.Tag, Offset: s.Offset}

	switch KindOf(s.Tag) {
	case KindString:
		payload, err := sr.Bytes(s.DataOffset(), int(s.Length), fmt.Sprintf("%s payload", s.Tag))
		if err != nil {
			return nil, err
		}
		node.Value = StringValue(binary.DecodeUTF16BE(payload))

	case KindUint:
		if s.Length > 8 {
			return nil, &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: s.Offset,
				Reason: fmt.Sprintf("%s integer is %d bytes wide (maximum is 8)", s.Tag, s.Length),
			}
		}
		v, err := binary.ReadUintN(sr, s.DataOffset(), int(s.Length), fmt.Sprintf("%s payload", s.Tag))
		if err != nil {
			return nil, err
		}
		node.Value = UintValue(v)

	default:
		children, err := DecodeRange(sr, s.DataOffset(), s.End())
		if err != nil {
			return nil, err
		}
		node.Children = children
	}

	return node, nil
}

// Node is a decoded section.
type Node struct {
	Tag      string
	Value    Value
	Children []*Node
	Offset   int64
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// All iterates over the direct children with the given tag.
//
// Example:
//
//	for col := range node.All("ovct") {
//		name, _ := col.Child("tvcn").Value.Str()
//	}
func (n *Node) All(tag string) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.Children {
			if c.Tag == tag && !yield(c) {
				return
			}
		}
	}
}

// IsContainer reports whether the node holds children rather than a value.
func (n *Node) IsContainer() bool {
	return n.Value.Kind() == KindContainer
}
