package types

import (
	"strings"
	"testing"
)

func TestErrors_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "out of bounds",
			err:      &OutOfBoundsError{Path: "a.crate", What: "section header", Offset: 1000, Length: 8, Size: 500},
			contains: []string{"a.crate", "offset 1000 out of bounds", "file size: 500", "section header"},
		},
		{
			name:     "truncated section",
			err:      &TruncatedSectionError{Path: "a.crate", Tag: "otrk", Offset: 12, Length: 99, Remaining: 4},
			contains: []string{"a.crate", `"otrk"`, "offset 12", "declares 99 bytes", "4 remain"},
		},
		{
			name:     "malformed header",
			err:      &MalformedHeaderError{Path: "a.crate", What: "crate header", Reason: "first section is otrk"},
			contains: []string{"malformed crate header", "first section is otrk"},
		},
		{
			name:     "missing child",
			err:      &MissingRequiredChildError{Path: "a.crate", Parent: "otrk", Child: "ptrk", Offset: 20},
			contains: []string{`"otrk"`, "offset 20", `missing required child "ptrk"`},
		},
		{
			name:     "unsupported version",
			err:      &UnsupportedVersionError{Path: "a.crate", Version: "2.0/Other", Expected: "1.0/Serato ScratchLive Crate"},
			contains: []string{`"2.0/Other"`, `expected "1.0/Serato ScratchLive Crate"`},
		},
		{
			name:     "corrupted",
			err:      &CorruptedFileError{Path: "a.crate", Reason: "uint of 9 bytes", Offset: 40},
			contains: []string{"corrupted data at offset 40", "uint of 9 bytes"},
		},
		{
			name:     "unsupported format",
			err:      &UnsupportedFormatError{Path: "song.flac", Reason: "no ID3v2 tag"},
			contains: []string{"song.flac", "no ID3v2 tag"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Stage: "markers2", Message: "bad magic"}
	if got := w.String(); got != "markers2: bad magic" {
		t.Errorf("String() = %q", got)
	}

	w.Offset = 7
	if got := w.String(); got != "markers2 (at offset 7): bad magic" {
		t.Errorf("String() = %q", got)
	}
}

func TestCrate_Name(t *testing.T) {
	c := &Crate{Name: []string{"A", "B", "Mix"}}
	if got := c.PlaylistName(); got != "Mix" {
		t.Errorf("PlaylistName() = %q, want Mix", got)
	}
	if got := strings.Join(c.FolderPath(), "/"); got != "A/B" {
		t.Errorf("FolderPath() = %q, want A/B", got)
	}
	if got := c.FullName(); got != "A/B/Mix" {
		t.Errorf("FullName() = %q, want A/B/Mix", got)
	}

	var empty Crate
	if empty.PlaylistName() != "" || empty.FolderPath() != nil {
		t.Error("empty crate should have no name parts")
	}
}

func TestTrack_MergeMarkers(t *testing.T) {
	tr := &Track{}
	tr.MergeMarkers(nil)
	if tr.Color != nil || tr.HasWarnings() {
		t.Fatal("MergeMarkers(nil) should be a no-op")
	}

	color := ARGB{A: 0xFF, R: 0x10, G: 0x20, B: 0x30}
	m := &Markers{
		Color:     &color,
		CuePoints: []CuePoint{{Index: 0, Position: 1000}},
		Loops:     []Loop{{Index: 1, Start: 10, End: 20}},
		BPMLock:   true,
		Warnings:  []Warning{{Stage: "markers2", Message: "short CUE"}},
	}
	tr.MergeMarkers(m)

	m.Color.R = 0 // the track keeps its own copy
	if tr.Color == nil || tr.Color.R != 0x10 {
		t.Errorf("Color = %v, want copy with R=0x10", tr.Color)
	}
	if len(tr.CuePoints) != 1 || len(tr.Loops) != 1 || !tr.BPMLock || !tr.HasWarnings() {
		t.Errorf("merged track = %+v", tr)
	}
}

func TestColor_Hex(t *testing.T) {
	if got := (RGB{R: 0xCC, G: 0, B: 0x0A}).Hex(); got != "#CC000A" {
		t.Errorf("RGB.Hex() = %q", got)
	}
	c := ARGB{A: 0xFF, R: 1, G: 2, B: 3}
	if got := c.Hex(); got != "#FF010203" {
		t.Errorf("ARGB.Hex() = %q", got)
	}
	if got := c.RGB(); got != (RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("ARGB.RGB() = %v", got)
	}
}

func TestBeatGridMarker(t *testing.T) {
	beat := NewBeatMarker(0.5, 16)
	if beat.IsTerminal() || beat.BeatsToNext == nil || *beat.BeatsToNext != 16 {
		t.Errorf("NewBeatMarker() = %+v", beat)
	}
	last := NewTerminalMarker(12.0, 128)
	if !last.IsTerminal() || last.BeatsToNext != nil || *last.BPM != 128 {
		t.Errorf("NewTerminalMarker() = %+v", last)
	}
}

func TestFolder_Walk(t *testing.T) {
	root := &Folder{Name: "ROOT", Children: []PlaylistNode{
		&Folder{Name: "A", Children: []PlaylistNode{&Playlist{Name: "Mix"}}},
		&Playlist{Name: "Top"},
	}}

	var visited []string
	root.Walk(func(path []string, n PlaylistNode) bool {
		visited = append(visited, strings.Join(append(path, n.NodeName()), "/"))
		return true
	})

	want := "ROOT,ROOT/A,ROOT/A/Mix,ROOT/Top"
	if got := strings.Join(visited, ","); got != want {
		t.Errorf("Walk visited %q, want %q", got, want)
	}

	count := 0
	root.Walk(func([]string, PlaylistNode) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("Walk did not stop early, visited %d", count)
	}
}
