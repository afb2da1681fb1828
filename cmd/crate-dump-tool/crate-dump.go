package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	binutil "github.com/simonhull/cratemeta/internal/binary"
	"github.com/simonhull/cratemeta/internal/section"
	"github.com/simonhull/cratemeta/internal/types"
)

// Prints every section header it can reach, and keeps going past payloads it
// cannot decode, so it is useful on files the crate parser rejects.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: crate-dump <file.crate>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	sr := binutil.NewBytesReader(data, os.Args[1])
	dumpSections(sr, 0, sr.Size(), 0)
}

func dumpSections(sr *binutil.SafeReader, offset, end int64, depth int) {
	indent := strings.Repeat("  ", depth)

	for offset < end {
		s, err := section.ReadHeader(sr, offset, end)
		if err != nil {
			var trunc *types.TruncatedSectionError
			if errors.As(err, &trunc) && trunc.Tag != "" {
				fmt.Printf("%s%s (size: %d, offset: %d) TRUNCATED: %d bytes remain\n",
					indent, trunc.Tag, trunc.Length, offset, trunc.Remaining)
			} else {
				fmt.Printf("%s<%v>\n", indent, err)
			}
			return
		}

		fmt.Printf("%s%s (size: %d, offset: %d)%s\n", indent, s.Tag, s.Length, s.Offset, scalar(sr, s))

		if section.KindOf(s.Tag) == section.KindContainer {
			dumpSections(sr, s.DataOffset(), s.End(), depth+1)
		}

		offset = s.End()
	}
}

func scalar(sr *binutil.SafeReader, s *section.Section) string {
	payload, err := sr.Bytes(s.DataOffset(), int(s.Length), s.Tag)
	if err != nil {
		return ""
	}

	switch section.KindOf(s.Tag) {
	case section.KindString:
		return fmt.Sprintf(" = %q", binutil.DecodeUTF16BE(payload))
	case section.KindUint:
		if len(payload) > 8 {
			return fmt.Sprintf(" = <%d-byte integer>", len(payload))
		}
		return fmt.Sprintf(" = %d", binutil.UintN(payload))
	}
	return ""
}
