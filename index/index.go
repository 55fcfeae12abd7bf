// Package index implements the flat binary manifest of staged files: the
// next proposed snapshot, living at .rit/index.
package index

import (
	"os"

	"github.com/pkg/errors"
)

// Entry is one staged file: its mode, the hex digest of its blob, and
// its repository-relative slash-delimited path.
type Entry struct {
	Mode      uint32
	DigestHex string
	Path      string
}

// defaultMode is the mode assigned to a newly staged path that doesn't
// already have one.
const defaultMode uint32 = 0o100644

// Index is the flat, path-keyed staging manifest backed by a single file
// on disk. Every mutation is a load-modify-store round trip.
type Index struct {
	path string
}

// New returns an Index backed by the given file path.
func New(path string) *Index {
	return &Index{path: path}
}

// Load reads every entry in the index file. A missing file is treated as
// an empty index.
func (ix *Index) Load() ([]Entry, error) {
	data, err := os.ReadFile(ix.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "could not read index file")
	}
	return Decode(data)
}

// Save writes the given entries to the index file. Entries sharing a
// path collapse to their last occurrence.
func (ix *Index) Save(entries []Entry) error {
	deduped := fromMap(toMap(entries))
	if err := os.WriteFile(ix.path, Encode(deduped), 0o644); err != nil {
		return errors.Wrap(err, "could not write index file")
	}
	return nil
}

// Clear empties the index.
func (ix *Index) Clear() error {
	return ix.Save(nil)
}

// Add upserts an entry by path: the mode stays whatever it already was,
// or defaults to 0o100644 on insert.
func (ix *Index) Add(path, digestHex string) error {
	return ix.BulkAdd([]Entry{{Path: path, DigestHex: digestHex}})
}

// BulkAdd upserts a batch of (path, digest) pairs in a single
// load-modify-store round trip.
func (ix *Index) BulkAdd(updates []Entry) error {
	entries, err := ix.Load()
	if err != nil {
		return err
	}

	byPath := toMap(entries)
	for _, u := range updates {
		mode := defaultMode
		if existing, ok := byPath[u.Path]; ok {
			mode = existing.Mode
		}
		if u.Mode != 0 {
			mode = u.Mode
		}
		byPath[u.Path] = Entry{Mode: mode, DigestHex: u.DigestHex, Path: u.Path}
	}

	return ix.Save(fromMap(byPath))
}

// Update overwrites the digest of an already-staged path, keeping its
// existing mode. Behaves like Add if the path isn't already staged.
func (ix *Index) Update(path, digestHex string) error {
	return ix.Add(path, digestHex)
}

// Remove drops a path from the index, if present.
func (ix *Index) Remove(path string) error {
	entries, err := ix.Load()
	if err != nil {
		return err
	}

	byPath := toMap(entries)
	delete(byPath, path)
	return ix.Save(fromMap(byPath))
}

func toMap(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Path] = e
	}
	return m
}

func fromMap(m map[string]Entry) []Entry {
	out := make([]Entry, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	return out
}
