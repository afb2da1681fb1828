package types

import "fmt"

// RGB is a three-channel color as stored in cue elements.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// MarshalYAML renders the color as a hex string.
func (c RGB) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// ARGB is a four-channel color as stored in COLOR and LOOP elements.
type ARGB struct {
	A, R, G, B uint8
}

// RGB drops the alpha channel.
func (c ARGB) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Hex returns the color as "#AARRGGBB".
func (c ARGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

// MarshalYAML renders the color as a hex string.
func (c ARGB) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// CuePoint is a hot cue.
type CuePoint struct {
	Index    uint8  `yaml:"index"`
	Position uint32 `yaml:"position_ms"`
	Color    RGB    `yaml:"color"`
	Name     string `yaml:"name,omitempty"`
}

// Loop is a saved loop.
type Loop struct {
	Index  uint8  `yaml:"index"`
	Start  uint32 `yaml:"start_ms"`
	End    uint32 `yaml:"end_ms"`
	Color  ARGB   `yaml:"color"`
	Locked bool   `yaml:"locked"`
	Name   string `yaml:"name,omitempty"`
}

// Markers is everything decoded from one Markers2 payload.
type Markers struct {
	Color     *ARGB      `yaml:"color,omitempty"`
	CuePoints []CuePoint `yaml:"cues,omitempty"`
	Loops     []Loop     `yaml:"loops,omitempty"`
	BPMLock   bool       `yaml:"bpm_lock"`

	// Warnings for individual elements that were skipped.
	Warnings []Warning `yaml:"-"`
}

// BeatGridMarker is one tempo marker. Every marker except the last in a
// grid carries BeatsToNext; the last carries BPM. Never both.
type BeatGridMarker struct {
	Position    float32  `yaml:"position"`
	BeatsToNext *uint32  `yaml:"beats_to_next,omitempty"`
	BPM         *float32 `yaml:"bpm,omitempty"`
}

// NewBeatMarker returns a non-terminal marker.
func NewBeatMarker(position float32, beatsToNext uint32) BeatGridMarker {
	return BeatGridMarker{Position: position, BeatsToNext: &beatsToNext}
}

// NewTerminalMarker returns the final marker of a grid.
func NewTerminalMarker(position, bpm float32) BeatGridMarker {
	return BeatGridMarker{Position: position, BPM: &bpm}
}

// IsTerminal reports whether the marker is the last of its grid.
func (m BeatGridMarker) IsTerminal() bool {
	return m.BPM != nil
}
