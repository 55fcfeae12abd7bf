// Package status implements the three-way diff between the working
// tree, the index, and the tree named by the current branch's tip.
package status

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/DillonJackson/rit/index"
	"github.com/DillonJackson/rit/internal/ritpath"
	"github.com/DillonJackson/rit/object"
	"github.com/DillonJackson/rit/refs"
	"github.com/DillonJackson/rit/store"
	"github.com/DillonJackson/rit/treebuilder"
	"github.com/pkg/errors"
)

// StagedKind classifies a path in the index-vs-HEAD-tree comparison.
type StagedKind int

// The closed set of staged classifications.
const (
	StagedAdded StagedKind = iota + 1
	StagedDeleted
	StagedModified
	StagedUnmodified
)

// String renders the classification the way it's reported to a user.
func (k StagedKind) String() string {
	switch k {
	case StagedAdded:
		return "added"
	case StagedDeleted:
		return "deleted"
	case StagedModified:
		return "modified"
	case StagedUnmodified:
		return "unmodified"
	default:
		return "unknown"
	}
}

// UnstagedKind classifies a path in the working-tree-vs-index comparison.
type UnstagedKind int

// The closed set of unstaged classifications. NewFile is reported under
// "untracked"; Modified and Deleted are reported under "not staged".
const (
	UnstagedNewFile UnstagedKind = iota + 1
	UnstagedModified
	UnstagedDeleted
)

// String renders the classification the way it's reported to a user.
func (k UnstagedKind) String() string {
	switch k {
	case UnstagedNewFile:
		return "untracked"
	case UnstagedModified:
		return "modified"
	case UnstagedDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Entry pairs a repository-relative path with its classification.
type Entry struct {
	Path string
	Kind string
}

// Result is the full status report: the staged set (index vs HEAD-tree)
// and the unstaged/untracked set (working tree vs index).
type Result struct {
	Staged    []Entry
	NotStaged []Entry
	Untracked []Entry
}

// Engine computes Results for a single repository.
type Engine struct {
	repoRoot string
	objects  *store.Store
	refs     *refs.Store
	trees    *treebuilder.Builder
}

// New returns a status Engine for the repository rooted at repoRoot.
func New(repoRoot string, objects *store.Store, refStore *refs.Store) *Engine {
	return &Engine{
		repoRoot: repoRoot,
		objects:  objects,
		refs:     refStore,
		trees:    treebuilder.New(objects),
	}
}

// Compute runs the full three-way diff procedure from §4.7: working
// tree enumeration, index load, HEAD-tree flattening, then the staged
// and unstaged/untracked classifications.
func (e *Engine) Compute(idx *index.Index) (*Result, error) {
	working, err := e.scanWorkingTree()
	if err != nil {
		return nil, errors.Wrap(err, "could not scan working tree")
	}

	indexEntries, err := idx.Load()
	if err != nil {
		return nil, err
	}
	indexMap := entryMap(indexEntries)

	head, err := e.resolveHeadTree()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Staged:    diffStaged(indexMap, head),
		NotStaged: diffUnstaged(working, indexMap),
		Untracked: diffUntracked(working, indexMap),
	}
	return result, nil
}

// scanWorkingTree walks the repository root, excluding the .rit
// metadata directory, and computes each file's would-be blob digest.
func (e *Engine) scanWorkingTree() (map[string]string, error) {
	working := map[string]string{}

	err := filepath.WalkDir(e.repoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(e.repoRoot, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if rel == ritpath.DotRitPath {
				return filepath.SkipDir
			}
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		digest := object.Record{Type: object.TypeBlob, Payload: content}.Digest()
		working[filepath.ToSlash(rel)] = digest.String()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return working, nil
}

// resolveHeadTree follows HEAD -> branch-ref -> commit -> tree and
// flattens the result into a leaf-path -> digest map. A branch with no
// commits yet resolves to an empty map.
func (e *Engine) resolveHeadTree() (map[string]string, error) {
	tipHex, ok, err := e.refs.CurrentBranchTip()
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]string{}, nil
	}

	commitPayload, err := e.objects.GetTyped(tipHex, object.TypeCommit)
	if err != nil {
		return nil, err
	}
	commit, err := object.DecodeCommit(commitPayload)
	if err != nil {
		return nil, err
	}

	flat, err := e.trees.Flatten(commit.TreeID.String())
	if err != nil {
		return nil, err
	}

	head := make(map[string]string, len(flat))
	for _, entry := range flat {
		head[entry.Path] = entry.DigestHex
	}
	return head, nil
}

func entryMap(entries []index.Entry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Path] = e.DigestHex
	}
	return m
}

// diffStaged compares the index against the HEAD tree.
func diffStaged(indexMap, head map[string]string) []Entry {
	var out []Entry
	for _, path := range unionKeys(indexMap, head) {
		inIndex, hasIndex := indexMap[path]
		inHead, hasHead := head[path]

		var kind StagedKind
		switch {
		case hasIndex && !hasHead:
			kind = StagedAdded
		case !hasIndex && hasHead:
			kind = StagedDeleted
		case inIndex != inHead:
			kind = StagedModified
		default:
			kind = StagedUnmodified
		}
		if kind == StagedUnmodified {
			continue
		}
		out = append(out, Entry{Path: path, Kind: kind.String()})
	}
	return out
}

// diffUnstaged compares the working tree against the index, reporting
// only modifications and deletions (new files are reported separately
// as untracked).
func diffUnstaged(working, indexMap map[string]string) []Entry {
	var out []Entry
	for _, path := range unionKeys(working, indexMap) {
		inWorking, hasWorking := working[path]
		inIndex, hasIndex := indexMap[path]

		switch {
		case hasWorking && hasIndex && inWorking != inIndex:
			out = append(out, Entry{Path: path, Kind: UnstagedModified.String()})
		case !hasWorking && hasIndex:
			out = append(out, Entry{Path: path, Kind: UnstagedDeleted.String()})
		}
	}
	return out
}

// diffUntracked reports working-tree paths absent from the index.
func diffUntracked(working, indexMap map[string]string) []Entry {
	var out []Entry
	for path := range working {
		if _, ok := indexMap[path]; !ok {
			out = append(out, Entry{Path: path, Kind: UnstagedNewFile.String()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func unionKeys(a, b map[string]string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var keys []string
	for k := range a {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	for k := range b {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
