package cratemeta

import (
	"log/slog"

	"github.com/simonhull/cratemeta/internal/beatgrid"
	"github.com/simonhull/cratemeta/internal/markers2"
	"github.com/simonhull/cratemeta/internal/registry"
	"github.com/simonhull/cratemeta/internal/types"
)

// Descriptors of the embedded payloads decoded by default.
const (
	Markers2Descriptor = markers2.Descriptor
	BeatGridDescriptor = beatgrid.Descriptor
)

// DecodeMarkers2 decodes a Markers2 payload into colors, cue points, loops
// and the BPM lock flag.
//
// Only WithLogger applies; unknown elements are logged at debug level.
func DecodeMarkers2(payload []byte, opts ...Option) (*Markers, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	d := &markers2.Decoder{Logger: options.logger}
	return d.Decode(payload)
}

// DecodeBeatGrid decodes a BeatGrid payload. The last marker carries the
// BPM; every other marker carries the beat count to the next one.
func DecodeBeatGrid(payload []byte) ([]BeatGridMarker, error) {
	return beatgrid.Decode(payload)
}

// NewRegistry returns a registry with the Markers2 and BeatGrid decoders.
// Callers may register more descriptors before passing it to WithRegistry.
func NewRegistry(logger *slog.Logger) *Registry {
	md := &markers2.Decoder{Logger: logger}

	r := registry.New()
	r.Register(Markers2Descriptor, "markers2", registry.DecoderFunc(func(payload []byte, t *types.Track) error {
		m, err := md.Decode(payload)
		if err != nil {
			return err
		}
		t.MergeMarkers(m)
		return nil
	}))
	r.Register(BeatGridDescriptor, "beatgrid", registry.DecoderFunc(func(payload []byte, t *types.Track) error {
		grid, err := beatgrid.Decode(payload)
		if err != nil {
			return err
		}
		t.BeatGrid = grid
		return nil
	}))
	return r
}

// ApplyPayload decodes one embedded payload into t using reg, or the
// default registry when reg is nil.
//
// A payload that fails to decode adds a Warning to t, contributes nothing,
// and the error is returned. Other fields of t are untouched. Unknown
// descriptors are ignored.
func ApplyPayload(t *Track, descriptor string, payload []byte, reg *Registry) error {
	if reg == nil {
		reg = NewRegistry(nil)
	}
	return reg.Apply(t, descriptor, payload)
}
