package library

import (
	"strings"

	"github.com/simonhull/cratemeta/internal/types"
)

// RootName names the folder at the top of every tree.
const RootName = "ROOT"

// treeBuilder memoizes folders by their slash-joined path so that a shared
// prefix maps to exactly one folder however many crates sit beneath it.
type treeBuilder struct {
	index    *TrackIndex
	registry map[string]*types.Folder
}

// BuildTree places every crate as a playlist under the folders named by its
// name prefix. Track paths missing from index are left out of the playlist.
func BuildTree(crates []*types.Crate, index *TrackIndex) *types.Folder {
	b := &treeBuilder{
		index:    index,
		registry: make(map[string]*types.Folder),
	}

	root := b.folder(nil)
	for _, c := range crates {
		b.place(c)
	}
	return root
}

func (b *treeBuilder) place(c *types.Crate) {
	parent := b.folder(c.FolderPath())

	p := &types.Playlist{
		Name:   c.PlaylistName(),
		Tracks: make([]int, 0, len(c.Tracks)),
	}
	for _, t := range c.Tracks {
		if idx, ok := b.index.Lookup(t.Path); ok {
			p.Tracks = append(p.Tracks, idx)
		}
	}

	parent.Children = append(parent.Children, p)
}

// folder resolves the folder for prefix, creating it and any missing
// ancestors. The empty prefix is the root.
func (b *treeBuilder) folder(prefix []string) *types.Folder {
	key := strings.Join(prefix, "/")
	if f, ok := b.registry[key]; ok {
		return f
	}

	if len(prefix) == 0 {
		root := &types.Folder{Name: RootName}
		b.registry[key] = root
		return root
	}

	f := &types.Folder{Name: prefix[len(prefix)-1]}
	b.registry[key] = f

	parent := b.folder(prefix[:len(prefix)-1])
	parent.Children = append(parent.Children, f)

	return f
}
