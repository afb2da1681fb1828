package cratemeta

import (
	"github.com/simonhull/cratemeta/internal/library"
	"github.com/simonhull/cratemeta/internal/registry"
	"github.com/simonhull/cratemeta/internal/section"
	"github.com/simonhull/cratemeta/internal/types"
)

// Re-exported from internal/types to maintain public API.
type (
	Crate          = types.Crate
	CrateTrack     = types.CrateTrack
	Track          = types.Track
	Markers        = types.Markers
	CuePoint       = types.CuePoint
	Loop           = types.Loop
	RGB            = types.RGB
	ARGB           = types.ARGB
	BeatGridMarker = types.BeatGridMarker
	PlaylistNode   = types.PlaylistNode
	Folder         = types.Folder
	Playlist       = types.Playlist
)

// SectionNode is one decoded section in a generic section tree.
type SectionNode = section.Node

// Re-exported from internal/library.
type (
	TrackIndex = library.TrackIndex
	Outcome    = library.Outcome
	Progress   = library.Progress
)

// Re-exported from internal/registry.
type (
	Registry       = registry.Registry
	PayloadDecoder = registry.PayloadDecoder
	DecoderFunc    = registry.DecoderFunc
)

// NewTrackIndex returns an empty track index.
func NewTrackIndex() *TrackIndex {
	return library.NewTrackIndex()
}
