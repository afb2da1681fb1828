package cratemeta

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/cratemeta/internal/crate"
	"github.com/simonhull/cratemeta/internal/library"
)

// SubcratesDir is the directory under a library root holding crate files.
const SubcratesDir = "Subcrates"

// Library is a loaded crate collection.
type Library struct {
	// Root is the top of the folder/playlist tree.
	Root *Folder

	// Tracks indexes every distinct track path. Playlists refer to tracks
	// by their index here.
	Tracks *TrackIndex

	// Crates that parsed, in filename order.
	Crates []*Crate

	// Outcomes has one entry per crate file, including those that failed.
	Outcomes []Outcome
}

// Failed returns the outcomes of crates that could not be parsed.
func (l *Library) Failed() []Outcome {
	var failed []Outcome
	for _, o := range l.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Resolve joins the track at idx to mountRoot. Crates store paths relative
// to the drive they live on, always with forward slashes.
func (l *Library) Resolve(mountRoot string, idx int) (string, bool) {
	p, ok := l.Tracks.Path(idx)
	if !ok {
		return "", false
	}
	return filepath.Join(mountRoot, filepath.FromSlash(p)), true
}

// BuildTree places every crate as a playlist under the folders named by its
// name prefix, below a root folder named "ROOT". A shared prefix maps to one
// folder. Tracks missing from index are left out of their playlists.
func BuildTree(crates []*Crate, index *TrackIndex) *Folder {
	return library.BuildTree(crates, index)
}

// OpenLibrary loads every crate under seratoDir/Subcrates in filename order,
// de-duplicates their tracks and builds the playlist tree.
//
// A crate that fails to parse is skipped and recorded in Library.Outcomes.
// With WithStrictParsing the first failure is returned instead.
//
// Example:
//
//	lib, err := cratemeta.OpenLibrary(ctx, "/Volumes/USB/_Serato_",
//	    cratemeta.WithProgress(func(p cratemeta.Progress) {
//	        fmt.Printf("\r%d/%d", p.Done, p.Total)
//	    }),
//	)
func OpenLibrary(ctx context.Context, seratoDir string, opts ...Option) (*Library, error) {
	options := applyOptions(opts)

	dir := filepath.Join(seratoDir, SubcratesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read subcrates: %w", err)
	}

	// ReadDir sorts by filename
	var sources []library.Source
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), crate.Extension) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read crate: %w", err)
		}
		sources = append(sources, library.Source{Name: e.Name(), Data: data})
	}

	s := &library.Scanner{
		Concurrency: options.concurrency,
		Filter:      options.trackFilter,
		Progress:    options.progress,
		Logger:      options.logger,
	}
	res, err := s.Scan(ctx, sources)
	if err != nil {
		return nil, err
	}

	lib := &Library{
		Root:     library.BuildTree(res.Crates, res.Index),
		Tracks:   res.Index,
		Crates:   res.Crates,
		Outcomes: res.Outcomes,
	}

	if options.strictParsing {
		if failed := lib.Failed(); len(failed) > 0 {
			return nil, fmt.Errorf("strict parsing failed: %s: %w", failed[0].Source, failed[0].Err)
		}
	}

	return lib, nil
}
