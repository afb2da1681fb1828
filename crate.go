package cratemeta

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/cratemeta/internal/crate"
	"github.com/simonhull/cratemeta/internal/section"
)

// CrateVersion is the only crate format identifier accepted.
const CrateVersion = crate.Version

// ParseCrate decodes a crate file's bytes. filename supplies the crate's
// hierarchical name, split on "%%" with the ".crate" extension removed.
//
// Returns UnsupportedVersionError when the version section is not
// CrateVersion, MalformedHeaderError when the version section is missing,
// MissingRequiredChildError when a track entry has no path, and
// TruncatedSectionError when a section runs past the end of the data.
func ParseCrate(data []byte, filename string) (*Crate, error) {
	return crate.Parse(data, filename)
}

// OpenCrate reads and parses one crate file.
func OpenCrate(path string) (*Crate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return crate.Parse(data, filepath.Base(path))
}

// CrateFileName returns the filename a crate with the given hierarchical
// name is stored under.
func CrateFileName(name []string) string {
	return crate.FileName(name)
}

// SaveCrate writes c into dir under CrateFileName(c.Name).
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the final path. If any step fails, an existing crate remains unchanged.
//
// Options can be provided to customize save behavior:
//
//	err := cratemeta.SaveCrate(subcrates, c,
//	    cratemeta.WithBackup(".bak"),
//	    cratemeta.WithValidation(),
//	)
func SaveCrate(dir string, c *Crate, opts ...SaveOption) error {
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	if len(c.Name) == 0 {
		return fmt.Errorf("save crate: empty name")
	}
	outputPath := filepath.Join(dir, crate.FileName(c.Name))

	var origInfo os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(outputPath); err == nil {
			origInfo = info
		}
	}

	// Create temp file in the output directory for an atomic rename
	tempFile, err := os.CreateTemp(dir, ".cratemeta-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if _, err := tempFile.Write(crate.Marshal(c)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if options.backupSuffix != "" {
		if _, err := os.Stat(outputPath); err == nil {
			if err := os.Rename(outputPath, outputPath+options.backupSuffix); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}
	success = true

	if origInfo != nil {
		_ = os.Chtimes(outputPath, origInfo.ModTime(), origInfo.ModTime()) //nolint:errcheck // Non-fatal: crate was written
	}

	if options.validate {
		if err := validateWrittenCrate(outputPath, c); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	return nil
}

// validateWrittenCrate re-opens the crate and compares its track list.
func validateWrittenCrate(path string, want *Crate) error {
	got, err := OpenCrate(path)
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}
	if len(got.Tracks) != len(want.Tracks) {
		return fmt.Errorf("track count mismatch: got %d, want %d", len(got.Tracks), len(want.Tracks))
	}
	for i := range got.Tracks {
		if got.Tracks[i].Path != want.Tracks[i].Path {
			return fmt.Errorf("track %d mismatch: got %q, want %q", i, got.Tracks[i].Path, want.Tracks[i].Path)
		}
	}
	return nil
}

// DumpSections decodes data as a generic section tree without interpreting
// it as a crate. Useful for inspecting unknown files.
func DumpSections(data []byte, filename string) ([]*SectionNode, error) {
	return section.Decode(data, filename)
}
