// Package registry maps embedded payload descriptors to their decoders.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/simonhull/cratemeta/internal/types"
)

// PayloadDecoder is the interface all payload decoders implement.
type PayloadDecoder interface {
	// Decode applies payload to t. On error t must be left unchanged.
	Decode(payload []byte, t *types.Track) error
}

// DecoderFunc adapts a function to PayloadDecoder.
type DecoderFunc func(payload []byte, t *types.Track) error

// Decode calls f.
func (f DecoderFunc) Decode(payload []byte, t *types.Track) error {
	return f(payload, t)
}

type entry struct {
	stage   string
	decoder PayloadDecoder
}

// Registry maps descriptors to decoders. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register registers a decoder for a descriptor. stage labels the warning
// recorded when the decoder fails. A second registration replaces the first.
func (r *Registry) Register(descriptor, stage string, d PayloadDecoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[descriptor] = entry{stage: stage, decoder: d}
}

// Get returns the decoder for a descriptor.
// Returns nil if no decoder is registered for it.
func (r *Registry) Get(descriptor string) PayloadDecoder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[descriptor].decoder
}

// Descriptors returns the registered descriptors in sorted order.
func (r *Registry) Descriptors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.entries))
	for d := range r.entries {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// Apply decodes payload into t with the decoder registered for descriptor.
//
// A decode failure is recorded as a warning on t and returned; the track
// keeps whatever other payloads contributed. An unknown descriptor is
// ignored and Apply returns nil.
func (r *Registry) Apply(t *types.Track, descriptor string, payload []byte) error {
	r.mu.RLock()
	e, ok := r.entries[descriptor]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	if err := e.decoder.Decode(payload, t); err != nil {
		t.AddWarning(e.stage, err.Error())
		return fmt.Errorf("%s: %w", descriptor, err)
	}
	return nil
}
