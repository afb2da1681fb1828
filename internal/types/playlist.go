package types

import "iter"

// PlaylistNode is either a *Folder or a *Playlist.
type PlaylistNode interface {
	NodeName() string
	isPlaylistNode()
}

// Folder groups playlists and other folders.
type Folder struct {
	Name     string         `yaml:"name"`
	Children []PlaylistNode `yaml:"children,omitempty"`
}

// Playlist references tracks by their library-wide index.
type Playlist struct {
	Name   string `yaml:"name"`
	Tracks []int  `yaml:"tracks"`
}

// NodeName returns the folder name.
func (f *Folder) NodeName() string { return f.Name }

// NodeName returns the playlist name.
func (p *Playlist) NodeName() string { return p.Name }

func (*Folder) isPlaylistNode()   {}
func (*Playlist) isPlaylistNode() {}

// Folders iterates over the direct child folders.
func (f *Folder) Folders() iter.Seq[*Folder] {
	return func(yield func(*Folder) bool) {
		for _, c := range f.Children {
			if sub, ok := c.(*Folder); ok {
				if !yield(sub) {
					return
				}
			}
		}
	}
}

// Playlists iterates over the direct child playlists.
func (f *Folder) Playlists() iter.Seq[*Playlist] {
	return func(yield func(*Playlist) bool) {
		for _, c := range f.Children {
			if p, ok := c.(*Playlist); ok {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Walk visits f and every descendant depth-first, passing the folder
// path leading to each node. Returning false from fn stops the walk.
func (f *Folder) Walk(fn func(path []string, n PlaylistNode) bool) {
	f.walk(nil, fn)
}

func (f *Folder) walk(path []string, fn func([]string, PlaylistNode) bool) bool {
	if !fn(path, f) {
		return false
	}
	inner := append(path[:len(path):len(path)], f.Name)
	for _, c := range f.Children {
		switch n := c.(type) {
		case *Folder:
			if !n.walk(inner, fn) {
				return false
			}
		default:
			if !fn(inner, n) {
				return false
			}
		}
	}
	return true
}
