package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"

	"github.com/simonhull/cratemeta"
)

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		ms   uint32
		want string
	}{
		{0, "0:00.000"},
		{1500, "0:01.500"},
		{61001, "1:01.001"},
		{3600000, "60:00.000"},
	}
	for _, tt := range tests {
		if got := formatMillis(tt.ms); got != tt.want {
			t.Errorf("formatMillis(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestWriteCrate(t *testing.T) {
	color.NoColor = true

	c := &cratemeta.Crate{
		Name:   []string{"House", "Deep"},
		Tracks: []cratemeta.CrateTrack{{Path: "Music/a.mp3"}, {Path: "Music/b.mp3"}},
	}

	var buf bytes.Buffer
	writeCrate(&buf, c)

	want := "House / Deep (2)\n  Music/a.mp3\n  Music/b.mp3\n"
	if got := buf.String(); got != want {
		t.Errorf("writeCrate() =\n%s\nwant:\n%s", got, want)
	}

	// FolderPath must not be rewritten in place.
	if c.Name[0] != "House" {
		t.Errorf("Name[0] = %q after writeCrate, want House", c.Name[0])
	}
}

func TestWriteNodes(t *testing.T) {
	data := []byte{
		'v', 'r', 's', 'n', 0, 0, 0, 4, 0, '1', 0, 0,
		'o', 't', 'r', 'k', 0, 0, 0, 14,
		'p', 't', 'r', 'k', 0, 0, 0, 6, 0, 'a', 0, '.', 0, 0,
	}
	nodes, err := cratemeta.DumpSections(data, "x.crate")
	if err != nil {
		t.Fatalf("DumpSections() error = %v", err)
	}

	var buf bytes.Buffer
	writeNodes(&buf, nodes, 0, true)

	want := "vrsn @0 = \"1\"\notrk @12\n  ptrk @20 = \"a.\"\n"
	if got := buf.String(); got != want {
		t.Errorf("writeNodes() =\n%s\nwant:\n%s", got, want)
	}
}

func TestVersionCommand(t *testing.T) {
	if cmd := VersionCommand(); cmd == nil {
		t.Fatal("VersionCommand() = nil")
	}
	if cmd := MainCommand(); cmd == nil {
		t.Fatal("MainCommand() = nil")
	}
}
