package cratemeta

// SaveOption configures behavior when saving crates.
//
// Example:
//
//	err := cratemeta.SaveCrate(dir, c,
//	    cratemeta.WithBackup(".bak"),
//	    cratemeta.WithValidation(),
//	)
type SaveOption func(*saveOptions)

// saveOptions holds configuration for saving crates.
type saveOptions struct {
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-read after write to verify
	preserveModTime bool   // Keep original modification time
}

// defaultSaveOptions returns the default configuration for saving.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{}
}

// WithBackup keeps the previous crate file before replacing it.
//
// The backup has suffix appended to the crate's filename. For example,
// WithBackup(".bak") moves "House%%Deep.crate" to "House%%Deep.crate.bak".
// An existing backup is overwritten.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-reads the crate after writing and compares its track
// list with the one that was saved.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithPreserveModTime keeps the modification time of the crate being
// replaced.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}
