// Package library assembles parsed crates into a de-duplicated track index
// and a folder/playlist tree.
package library

import "iter"

// TrackIndex assigns each distinct track path a stable index in first-seen
// order.
type TrackIndex struct {
	paths []string
	ids   map[string]int
}

// NewTrackIndex returns an empty index.
func NewTrackIndex() *TrackIndex {
	return &TrackIndex{ids: make(map[string]int)}
}

// Add returns the index for path, assigning the next one if path has not
// been seen before. inserted reports whether a new index was assigned.
func (x *TrackIndex) Add(path string) (idx int, inserted bool) {
	if id, ok := x.ids[path]; ok {
		return id, false
	}
	id := len(x.paths)
	x.ids[path] = id
	x.paths = append(x.paths, path)
	return id, true
}

// Lookup returns the index for path.
func (x *TrackIndex) Lookup(path string) (int, bool) {
	id, ok := x.ids[path]
	return id, ok
}

// Path returns the path for an index.
func (x *TrackIndex) Path(idx int) (string, bool) {
	if idx < 0 || idx >= len(x.paths) {
		return "", false
	}
	return x.paths[idx], true
}

// Len returns the number of distinct paths.
func (x *TrackIndex) Len() int {
	return len(x.paths)
}

// Paths returns all paths in index order. The slice must not be modified.
func (x *TrackIndex) Paths() []string {
	return x.paths
}

// All iterates over (index, path) pairs in index order.
func (x *TrackIndex) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, p := range x.paths {
			if !yield(i, p) {
				return
			}
		}
	}
}
