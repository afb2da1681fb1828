package library

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/cratemeta/internal/crate"
	"github.com/simonhull/cratemeta/internal/types"
)

// Source is one crate file's contents.
type Source struct {
	Name string // Filename, used for the crate name and errors
	Data []byte
}

// Outcome is the result of decoding one Source.
type Outcome struct {
	Source string
	Crate  *types.Crate // Nil when Err is set
	Err    error
}

// Progress reports one finished crate.
type Progress struct {
	Done   int
	Total  int
	Source string
	Err    error
}

// ScanResult holds everything a scan produced.
type ScanResult struct {
	// Crates that parsed, in source order.
	Crates []*types.Crate

	// Outcomes for every source, in source order.
	Outcomes []Outcome

	// Index of every accepted track path, in first-seen order.
	Index *TrackIndex
}

// Failed returns the outcomes that carry an error.
func (r *ScanResult) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Scanner decodes crates and indexes their tracks.
type Scanner struct {
	// Concurrency bounds parallel crate decodes. Zero uses GOMAXPROCS.
	Concurrency int

	// Filter rejects track paths before they are indexed. Nil accepts all.
	Filter func(path string) bool

	// Progress is called once per source, in source order, from the
	// goroutine running Scan.
	Progress func(Progress)

	// Logger receives a warning for each crate that fails. Nil discards.
	Logger *slog.Logger
}

// Scan decodes sources and merges them into one index.
//
// A crate that fails to parse is recorded in its Outcome and contributes no
// tracks; the scan continues with the next one. Decoding runs in parallel,
// but results are merged in source order so the index is deterministic.
// Scan only returns an error if ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, sources []Source) (*ScanResult, error) {
	outcomes := make([]Outcome, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := crate.Parse(src.Data, src.Name)
			outcomes[i] = Outcome{Source: src.Name, Crate: c, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &ScanResult{
		Outcomes: outcomes,
		Index:    NewTrackIndex(),
	}

	logger := s.logger()
	for i, o := range outcomes {
		if o.Err != nil {
			logger.Warn("skipping crate", "source", o.Source, "error", o.Err)
		} else {
			result.Crates = append(result.Crates, o.Crate)
			for _, t := range o.Crate.Tracks {
				if s.Filter != nil && !s.Filter(t.Path) {
					continue
				}
				result.Index.Add(t.Path)
			}
		}

		if s.Progress != nil {
			s.Progress(Progress{Done: i + 1, Total: len(outcomes), Source: o.Source, Err: o.Err})
		}
	}

	return result, nil
}

func (s *Scanner) concurrency() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

func (s *Scanner) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
