// Package types provides the core data structures shared by the crate,
// marker and beat-grid decoders.
package types

import "strings"

// Crate is one parsed crate file.
type Crate struct {
	// Name is the hierarchical name; the last segment is the playlist name
	// and the rest are enclosing folders.
	Name []string `yaml:"name"`

	// Version is the crate format identifier read from the file.
	Version string `yaml:"version"`

	// Tracks in file order.
	Tracks []CrateTrack `yaml:"tracks"`

	// Source is the filename the crate was read from.
	Source string `yaml:"source,omitempty"`
}

// CrateTrack is a single track reference inside a crate.
type CrateTrack struct {
	// Path relative to the mount root of the drive holding the library.
	Path string `yaml:"path"`
}

// PlaylistName returns the leaf segment of the crate's name.
func (c *Crate) PlaylistName() string {
	if len(c.Name) == 0 {
		return ""
	}
	return c.Name[len(c.Name)-1]
}

// FolderPath returns the segments naming the folder that holds the crate.
func (c *Crate) FolderPath() []string {
	if len(c.Name) == 0 {
		return nil
	}
	return c.Name[:len(c.Name)-1]
}

// FullName joins the name segments with "/".
func (c *Crate) FullName() string {
	return strings.Join(c.Name, "/")
}
