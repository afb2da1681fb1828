// Package crate parses crate (playlist) files.
package crate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/simonhull/cratemeta/internal/section"
	"github.com/simonhull/cratemeta/internal/types"
)

// Version is the only crate format identifier accepted.
const Version = "1.0/Serato ScratchLive Crate"

// NameSeparator joins folder segments in a crate's filename.
const NameSeparator = "%%"

// Extension is the crate file extension.
const Extension = ".crate"

const (
	tagVersion = "vrsn"
	tagTrack   = "otrk"
	tagPath    = "ptrk"
)

// Parse decodes a crate file. filename is used to derive the crate's
// hierarchical name and to label errors.
func Parse(data []byte, filename string) (*types.Crate, error) {
	nodes, err := section.Decode(data, filename)
	if err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}

	version, err := checkVersion(nodes, filename)
	if err != nil {
		return nil, err
	}

	c := &types.Crate{
		Name:    SplitName(filename),
		Version: version,
		Source:  filename,
	}

	for _, node := range nodes[1:] {
		if node.Tag != tagTrack {
			continue
		}

		pathNode := node.Child(tagPath)
		if pathNode == nil {
			return nil, &types.MissingRequiredChildError{
				Path:   filename,
				Parent: tagTrack,
				Child:  tagPath,
				Offset: node.Offset,
			}
		}

		path, _ := pathNode.Value.Str()
		c.Tracks = append(c.Tracks, types.CrateTrack{Path: path})
	}

	return c, nil
}

// checkVersion validates the leading version node and returns its value.
func checkVersion(nodes []*section.Node, filename string) (string, error) {
	if len(nodes) == 0 {
		return "", &types.MalformedHeaderError{
			Path:   filename,
			What:   "crate header",
			Reason: "no sections (expected version)",
		}
	}

	first := nodes[0]
	if first.Tag != tagVersion {
		return "", &types.MalformedHeaderError{
			Path:   filename,
			What:   "crate header",
			Offset: first.Offset,
			Reason: fmt.Sprintf("first section is %q (expected %q)", first.Tag, tagVersion),
		}
	}

	version, _ := first.Value.Str()
	if version != Version {
		return "", &types.UnsupportedVersionError{
			Path:     filename,
			Version:  version,
			Expected: Version,
		}
	}

	return version, nil
}

// SplitName derives a crate's hierarchical name from its filename: the
// directory and extension are dropped and the rest is split on "%%".
//
//	SplitName("Subcrates/House%%Deep%%Late Night.crate") // [House Deep Late Night]
func SplitName(filename string) []string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Split(base, NameSeparator)
}

// FileName is the inverse of SplitName.
func FileName(name []string) string {
	return strings.Join(name, NameSeparator) + Extension
}

// Marshal encodes c in the crate file format.
func Marshal(c *types.Crate) []byte {
	out := section.String(tagVersion, Version)
	for _, t := range c.Tracks {
		out = append(out, section.Container(tagTrack, section.String(tagPath, t.Path))...)
	}
	return out
}
