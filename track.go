package cratemeta

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	binutil "github.com/simonhull/cratemeta/internal/binary"
	"github.com/simonhull/cratemeta/internal/id3"
)

// OpenTrack reads an audio file's tags and applies its embedded marker
// payloads.
//
// Only files with an ID3v2 tag are supported. A payload that fails to decode
// is recorded in Track.Warnings and the others still apply:
//
//	track, err := cratemeta.OpenTrack("song.mp3")
//	if err != nil {
//		return err
//	}
//	if track.HasWarnings() {
//		log.Printf("%s: %v", track.Path, track.Warnings)
//	}
func OpenTrack(path string, opts ...Option) (*Track, error) {
	return openTrack(path, applyOptions(opts))
}

// ReadTrack is OpenTrack over an already opened reader.
func ReadTrack(r io.ReaderAt, size int64, path string, opts ...Option) (*Track, error) {
	return readTrack(r, size, path, applyOptions(opts))
}

func readTrack(r io.ReaderAt, size int64, path string, options *openOptions) (*Track, error) {
	tag, err := id3.Read(binutil.NewSafeReader(r, size, path))
	if err != nil {
		return nil, fmt.Errorf("read tag: %w", err)
	}

	track := &Track{
		Path:     path,
		Title:    tag.Title,
		Artist:   tag.Artist,
		Album:    tag.Album,
		Genre:    tag.Genre,
		Key:      tag.Key,
		BPM:      tag.BPM,
		Warnings: tag.Warnings,
	}

	for _, descriptor := range options.registry.Descriptors() {
		if payload, ok := tag.Object(descriptor); ok {
			// Failures are recorded on the track
			_ = options.registry.Apply(track, descriptor, payload) //nolint:errcheck
		}
	}

	if options.strictParsing && track.HasWarnings() {
		return nil, fmt.Errorf("strict parsing failed: %s", track.Warnings[0])
	}
	if options.ignoreWarnings {
		track.Warnings = nil
	}

	return track, nil
}

// OpenTracks opens multiple tracks concurrently with default options.
//
// Results are returned in the same order as the input paths. If any file
// fails to open, an error is returned.
//
// Example:
//
//	tracks, err := cratemeta.OpenTracks(ctx, paths...)
func OpenTracks(ctx context.Context, paths ...string) ([]*Track, error) {
	return OpenTracksWith(ctx, paths)
}

// OpenTracksWith is OpenTracks with options. WithConcurrency bounds the
// number of files open at once.
func OpenTracksWith(ctx context.Context, paths []string, opts ...Option) ([]*Track, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	options := applyOptions(opts)
	limit := options.concurrency
	if limit == 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]*Track, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			track, err := openTrack(path, options)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = track
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func openTrack(path string, options *openOptions) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	return readTrack(f, stat.Size(), path, options)
}
