package cratemeta

import (
	"log/slog"
)

// Option configures behavior when opening crates, tracks and libraries.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	lib, err := cratemeta.OpenLibrary(ctx, dir,
//	    cratemeta.WithConcurrency(4),
//	    cratemeta.WithLogger(slog.Default()),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strictParsing  bool // Fail on any warning or failed crate
	ignoreWarnings bool // Drop track warnings
	concurrency    int  // 0 = GOMAXPROCS
	logger         *slog.Logger
	trackFilter    func(path string) bool
	progress       func(Progress)
	registry       *Registry
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger: slog.New(slog.DiscardHandler),
	}
}

func applyOptions(opts []Option) *openOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.registry == nil {
		options.registry = NewRegistry(options.logger)
	}
	return options
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, a crate that fails to parse is skipped while the rest of the
// library loads, and a marker payload that fails to decode is recorded as a
// warning on its track. With strict parsing enabled, both become errors.
//
// Example:
//
//	lib, err := cratemeta.OpenLibrary(ctx, dir, cratemeta.WithStrictParsing())
//	// err != nil if ANY crate failed
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses track warnings.
//
// Track.Warnings will always be empty. A payload that failed to decode still
// contributes nothing.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithLogger sets the logger for skipped crates and unknown marker
// elements. The default discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(o *openOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency bounds how many crates or tracks are decoded at once.
// Zero or less uses GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *openOptions) {
		o.concurrency = max(n, 0)
	}
}

// WithTrackFilter excludes tracks whose path fn rejects from the library
// index and from every playlist.
//
// Example:
//
//	cratemeta.WithTrackFilter(func(p string) bool {
//	    return strings.HasSuffix(p, ".mp3")
//	})
func WithTrackFilter(fn func(path string) bool) Option {
	return func(o *openOptions) {
		o.trackFilter = fn
	}
}

// WithProgress registers a callback invoked once per crate as a library
// loads. Calls are made serially from the loading goroutine.
func WithProgress(fn func(Progress)) Option {
	return func(o *openOptions) {
		o.progress = fn
	}
}

// WithRegistry replaces the payload decoders used by OpenTrack.
// See NewRegistry for the defaults.
func WithRegistry(r *Registry) Option {
	return func(o *openOptions) {
		o.registry = r
	}
}
