package cratemeta

import (
	"github.com/simonhull/cratemeta/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to maintain public API.
type OutOfBoundsError = types.OutOfBoundsError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// TruncatedSectionError is an alias to types.TruncatedSectionError.
type TruncatedSectionError = types.TruncatedSectionError

// MalformedHeaderError is an alias to types.MalformedHeaderError.
type MalformedHeaderError = types.MalformedHeaderError

// MissingRequiredChildError is an alias to types.MissingRequiredChildError.
type MissingRequiredChildError = types.MissingRequiredChildError

// UnsupportedVersionError is an alias to types.UnsupportedVersionError.
type UnsupportedVersionError = types.UnsupportedVersionError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// Warning is an alias to types.Warning.
type Warning = types.Warning
