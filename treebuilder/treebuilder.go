// Package treebuilder folds a flat index into the hierarchical,
// deduplicated tree-object graph the rest of the engine works with, and
// walks that graph back out when a caller needs the flat view.
package treebuilder

import (
	"strings"

	"github.com/DillonJackson/rit/index"
	"github.com/DillonJackson/rit/object"
	"github.com/DillonJackson/rit/rithash"
	"github.com/DillonJackson/rit/store"
	"github.com/pkg/errors"
)

// Builder recursively materializes a directory hierarchy of tree objects
// from a flat list of staged index entries.
type Builder struct {
	store *store.Store
}

// New returns a Builder that writes the trees it builds into s.
func New(s *store.Store) *Builder {
	return &Builder{store: s}
}

// Build folds the given index entries into a tree-object graph and
// returns the hex digest of the root tree. The result depends only on
// the set of (path, mode, digest) triples, never on their order: an
// empty index produces the digest of an empty payload.
func (b *Builder) Build(entries []index.Entry) (string, error) {
	return b.buildPrefix("", entries)
}

// buildPrefix builds the subtree rooted at prefix, given every index
// entry whose path falls under it (including prefix itself).
func (b *Builder) buildPrefix(prefix string, entries []index.Entry) (string, error) {
	direct := map[string]index.Entry{}
	subdirs := map[string][]index.Entry{}

	for _, e := range entries {
		rel := strings.TrimPrefix(e.Path, prefix)
		if i := strings.IndexByte(rel, '/'); i >= 0 {
			name := rel[:i]
			subdirs[name] = append(subdirs[name], e)
			continue
		}
		direct[rel] = e
	}

	treeEntries := make([]object.TreeEntry, 0, len(direct)+len(subdirs))

	for name, e := range direct {
		digest, err := rithash.FromHex(e.DigestHex)
		if err != nil {
			return "", errors.Wrapf(err, "invalid blob digest for %q", e.Path)
		}
		treeEntries = append(treeEntries, object.TreeEntry{
			Mode:   e.Mode,
			Type:   object.EntryBlob,
			Digest: digest,
			Name:   name,
		})
	}

	for name, children := range subdirs {
		subPrefix := prefix + name + "/"
		subHex, err := b.buildPrefix(subPrefix, children)
		if err != nil {
			return "", err
		}
		digest, err := rithash.FromHex(subHex)
		if err != nil {
			return "", errors.Wrap(err, "invalid subtree digest")
		}
		treeEntries = append(treeEntries, object.TreeEntry{
			Mode:   object.ModeDirectory,
			Type:   object.EntryTree,
			Digest: digest,
			Name:   name,
		})
	}

	payload := object.EncodeTree(treeEntries)
	hex, err := b.store.Put(object.TypeTree, payload)
	if err != nil {
		return "", errors.Wrap(err, "could not store tree")
	}
	return hex, nil
}

// Flatten walks a tree graph rooted at rootHex back into the flat list
// of (path, mode, digest) triples it was built from. The inverse of
// Build, up to entry ordering.
func (b *Builder) Flatten(rootHex string) ([]index.Entry, error) {
	return b.flattenPrefix("", rootHex)
}

func (b *Builder) flattenPrefix(prefix, hex string) ([]index.Entry, error) {
	payload, err := b.store.GetTyped(hex, object.TypeTree)
	if err != nil {
		return nil, errors.Wrap(err, "could not load tree")
	}
	entries, err := object.DecodeTree(payload)
	if err != nil {
		return nil, err
	}

	var out []index.Entry
	for _, e := range entries {
		path := prefix + e.Name
		if e.Type == object.EntryTree {
			sub, err := b.flattenPrefix(path+"/", e.Digest.String())
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue
		}
		out = append(out, index.Entry{Mode: e.Mode, DigestHex: e.Digest.String(), Path: path})
	}
	return out, nil
}
