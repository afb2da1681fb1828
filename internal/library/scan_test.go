package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/simonhull/cratemeta/internal/crate"
	"github.com/simonhull/cratemeta/internal/types"
)

func source(name string, paths ...string) Source {
	c := &types.Crate{}
	for _, p := range paths {
		c.Tracks = append(c.Tracks, types.CrateTrack{Path: p})
	}
	return Source{Name: name, Data: crate.Marshal(c)}
}

func TestScan_DeduplicatesAcrossCrates(t *testing.T) {
	sources := []Source{
		source("Warmup.crate", "Music/Song.mp3", "Music/Intro.mp3"),
		source("Peak.crate", "Music/Banger.mp3", "Music/Song.mp3"),
	}

	s := &Scanner{}
	res, err := s.Scan(context.Background(), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"Music/Song.mp3", "Music/Intro.mp3", "Music/Banger.mp3"}, res.Index.Paths()); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}

	root := BuildTree(res.Crates, res.Index)
	var lists []*types.Playlist
	for p := range root.Playlists() {
		lists = append(lists, p)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(lists))
	}

	song, _ := res.Index.Lookup("Music/Song.mp3")
	if lists[0].Tracks[0] != song || lists[1].Tracks[1] != song {
		t.Errorf("both playlists should reference index %d: %v, %v", song, lists[0].Tracks, lists[1].Tracks)
	}
}

func TestScan_DeterministicUnderConcurrency(t *testing.T) {
	var sources []Source
	for i := range 64 {
		sources = append(sources, source(
			fmt.Sprintf("Crate %02d.crate", i),
			fmt.Sprintf("Music/%02d.mp3", i),
			"Music/shared.mp3",
		))
	}

	var want []string
	for i := range 64 {
		want = append(want, fmt.Sprintf("Music/%02d.mp3", i))
		if i == 0 {
			want = append(want, "Music/shared.mp3")
		}
	}

	for _, workers := range []int{1, 4, 32} {
		t.Run(fmt.Sprintf("%d workers", workers), func(t *testing.T) {
			s := &Scanner{Concurrency: workers}
			res, err := s.Scan(context.Background(), sources)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(want, res.Index.Paths()); diff != "" {
				t.Errorf("index mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScan_FailedCrateDoesNotStopScan(t *testing.T) {
	bad := source("Bad.crate", "Music/never.mp3")
	bad.Data = bad.Data[:len(bad.Data)-4]

	sources := []Source{
		source("Good.crate", "Music/a.mp3"),
		bad,
		{Name: "Empty.crate"},
		source("Also Good.crate", "Music/b.mp3"),
	}

	var progress []Progress
	s := &Scanner{Progress: func(p Progress) { progress = append(progress, p) }}

	res, err := s.Scan(context.Background(), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Crates) != 2 {
		t.Errorf("expected 2 parsed crates, got %d", len(res.Crates))
	}
	if _, ok := res.Index.Lookup("Music/never.mp3"); ok {
		t.Error("tracks from a failed crate must not be indexed")
	}
	if diff := cmp.Diff([]string{"Music/a.mp3", "Music/b.mp3"}, res.Index.Paths()); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}

	failed := res.Failed()
	if len(failed) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failed))
	}
	var trunc *types.TruncatedSectionError
	if failed[0].Source != "Bad.crate" || !errors.As(failed[0].Err, &trunc) {
		t.Errorf("unexpected first failure: %+v", failed[0])
	}
	var herr *types.MalformedHeaderError
	if failed[1].Source != "Empty.crate" || !errors.As(failed[1].Err, &herr) {
		t.Errorf("unexpected second failure: %+v", failed[1])
	}

	if len(progress) != 4 {
		t.Fatalf("expected 4 progress reports, got %d", len(progress))
	}
	for i, p := range progress {
		if p.Done != i+1 || p.Total != 4 || p.Source != sources[i].Name {
			t.Errorf("progress %d = %+v", i, p)
		}
	}
	if progress[1].Err == nil {
		t.Error("progress for Bad.crate should carry its error")
	}
}

func TestScan_Filter(t *testing.T) {
	s := &Scanner{Filter: func(p string) bool { return strings.HasSuffix(p, ".mp3") }}

	res, err := s.Scan(context.Background(), []Source{source("Mix.crate", "a.mp3", "b.wav", "c.mp3")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root := BuildTree(res.Crates, res.Index)
	p := root.Children[0].(*types.Playlist)
	if diff := cmp.Diff([]int{0, 1}, p.Tracks); diff != "" {
		t.Errorf("filtered playlist mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scanner{}
	_, err := s.Scan(ctx, []Source{source("Mix.crate", "a.mp3")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
