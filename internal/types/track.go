package types

// Track is the metadata record for one audio file in the library.
//
// Text fields come from the file's regular tags; the marker fields come from
// the embedded Markers2 and BeatGrid payloads. A payload that fails to decode
// leaves its fields empty and adds a Warning instead.
type Track struct {
	Path   string `yaml:"path"`
	Title  string `yaml:"title,omitempty"`
	Artist string `yaml:"artist,omitempty"`
	Album  string `yaml:"album,omitempty"`
	Genre  string `yaml:"genre,omitempty"`
	Key    string `yaml:"key,omitempty"`
	BPM    string `yaml:"bpm,omitempty"`

	Color     *ARGB            `yaml:"color,omitempty"`
	CuePoints []CuePoint       `yaml:"cues,omitempty"`
	Loops     []Loop           `yaml:"loops,omitempty"`
	BeatGrid  []BeatGridMarker `yaml:"beatgrid,omitempty"`
	BPMLock   bool             `yaml:"bpm_lock,omitempty"`

	// Warnings encountered while decoding (non-fatal issues)
	Warnings []Warning `yaml:"-"`
}

// HasWarnings reports whether any payload for this track failed to decode.
func (t *Track) HasWarnings() bool {
	return len(t.Warnings) > 0
}

// AddWarning records a non-fatal issue.
func (t *Track) AddWarning(stage, message string) {
	t.Warnings = append(t.Warnings, Warning{Stage: stage, Message: message})
}

// MergeMarkers copies decoded Markers2 data onto the track.
func (t *Track) MergeMarkers(m *Markers) {
	if m == nil {
		return
	}
	if m.Color != nil {
		c := *m.Color
		t.Color = &c
	}
	t.CuePoints = append(t.CuePoints, m.CuePoints...)
	t.Loops = append(t.Loops, m.Loops...)
	t.BPMLock = m.BPMLock
	t.Warnings = append(t.Warnings, m.Warnings...)
}
