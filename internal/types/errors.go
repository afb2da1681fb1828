package types

import "fmt"

// OutOfBoundsError is returned when attempting to read beyond buffer bounds.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// CorruptedFileError is returned when a structure is internally inconsistent.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted data at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// TruncatedSectionError is returned when a section or element declares more
// bytes than remain in its enclosing bound.
type TruncatedSectionError struct {
	Path      string
	Tag       string
	Offset    int64  // Where the section header starts
	Length    uint32 // Declared payload length (0 if the header itself was cut)
	Remaining int64  // Bytes available after the header
}

func (e *TruncatedSectionError) Error() string {
	return fmt.Sprintf("%s: truncated section %q at offset %d: declares %d bytes, %d remain",
		e.Path, e.Tag, e.Offset, e.Length, e.Remaining)
}

// MalformedHeaderError is returned when a magic value or leading header is
// missing or wrong.
type MalformedHeaderError struct {
	Path   string
	What   string
	Reason string
	Offset int64
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("%s: malformed %s at offset %d: %s", e.Path, e.What, e.Offset, e.Reason)
}

// MissingRequiredChildError is returned when a container lacks a child it
// must have.
type MissingRequiredChildError struct {
	Path   string
	Parent string
	Child  string
	Offset int64
}

func (e *MissingRequiredChildError) Error() string {
	return fmt.Sprintf("%s: %q section at offset %d is missing required child %q",
		e.Path, e.Parent, e.Offset, e.Child)
}

// UnsupportedVersionError is returned when a crate's version string is not
// the one known format identifier.
type UnsupportedVersionError struct {
	Path     string
	Version  string
	Expected string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%s: unsupported crate version %q (expected %q)", e.Path, e.Version, e.Expected)
}

// UnsupportedFormatError is returned for track files the reader cannot open.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent the rest of a track or
// library from loading. Examples include:
//   - A Markers2 payload with bad base64 or a bad magic
//   - A cue element shorter than its fixed layout
//   - A crate that failed to parse during a library scan
type Warning struct {
	// Stage where the warning occurred
	Stage string // "markers2", "beatgrid", "id3", "crate"

	// Warning message
	Message string

	// Offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
