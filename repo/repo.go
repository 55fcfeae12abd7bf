// Package repo ties the object store, refs store, index, and tree
// builder together into the repository lifecycle and the staging and
// commit workflows a caller actually drives.
package repo

import (
	"os"
	"path/filepath"

	"github.com/DillonJackson/rit/config"
	"github.com/DillonJackson/rit/index"
	"github.com/DillonJackson/rit/internal/ritpath"
	"github.com/DillonJackson/rit/object"
	"github.com/DillonJackson/rit/refs"
	"github.com/DillonJackson/rit/rithash"
	"github.com/DillonJackson/rit/status"
	"github.com/DillonJackson/rit/store"
	"github.com/DillonJackson/rit/treebuilder"
	"github.com/pkg/errors"
)

// Closed set of errors this package can return.
var (
	// ErrNotInitialized is returned when an operation requires .rit/ but
	// it is absent.
	ErrNotInitialized = errors.New("repository not initialized")
	// ErrAlreadyInitialized is returned when Init is called on a
	// directory that already has a .rit/.
	ErrAlreadyInitialized = errors.New("repository already initialized")
	// ErrPathNotFound is returned when a working-tree path passed by the
	// caller does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrNothingToCommit is returned when commit is invoked against an
	// empty index. Empty commits are rejected: a commit with no staged
	// content carries no new tree, and a reference to the prior tree
	// under a new commit digest has no signal value.
	ErrNothingToCommit = errors.New("nothing to commit")
)

// Repo is a single repository rooted at Root, with every layer
// (objects, refs, index, tree builder) wired up against its .rit/
// directory.
type Repo struct {
	Root    string
	Objects *store.Store
	Refs    *refs.Store
	Index   *index.Index
	Trees   *treebuilder.Builder
	Status  *status.Engine
}

// Init creates a brand-new repository at root: .rit/, .rit/objects/,
// .rit/HEAD, .rit/refs/heads/, and an empty .rit/index. Fails with
// ErrAlreadyInitialized if .rit/ already exists.
func Init(root string) (*Repo, error) {
	dotRit := ritpath.Root(root)
	if _, err := os.Stat(dotRit); err == nil {
		return nil, ErrAlreadyInitialized
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "could not stat .rit directory")
	}

	if err := os.MkdirAll(ritpath.Objects(root), 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create objects directory")
	}

	r := wire(root)

	if err := r.Refs.InitBranches(); err != nil {
		return nil, err
	}
	if err := r.Index.Save(nil); err != nil {
		return nil, err
	}

	return r, nil
}

// Open wires up a Repo rooted at root, failing with ErrNotInitialized
// if .rit/ is absent.
func Open(root string) (*Repo, error) {
	if err := CheckInitialized(root); err != nil {
		return nil, err
	}
	return wire(root), nil
}

// wire constructs a Repo's layers without touching disk.
func wire(root string) *Repo {
	objects := store.New(ritpath.Objects(root))
	refStore := refs.New(root)
	idx := index.New(ritpath.Index(root))
	return &Repo{
		Root:    root,
		Objects: objects,
		Refs:    refStore,
		Index:   idx,
		Trees:   treebuilder.New(objects),
		Status:  status.New(root, objects, refStore),
	}
}

// CheckInitialized fails with ErrNotInitialized if .rit/ is absent.
func CheckInitialized(root string) error {
	info, err := os.Stat(ritpath.Root(root))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return errors.Wrap(err, "could not stat .rit directory")
	}
	if !info.IsDir() {
		return ErrNotInitialized
	}
	return nil
}

// Remove recursively deletes .rit/ from root.
func Remove(root string) error {
	if err := CheckInitialized(root); err != nil {
		return err
	}
	if err := os.RemoveAll(ritpath.Root(root)); err != nil {
		return errors.Wrap(err, "could not remove .rit directory")
	}
	return nil
}

// Add stages a working-tree file: stores its content as a blob and
// upserts the path into the index. path is relative to the repository
// root.
func (r *Repo) Add(path string) (digestHex string, err error) {
	abs := filepath.Join(r.Root, path)
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrPathNotFound, "%s", path)
		}
		return "", errors.Wrap(err, "could not stat path")
	}

	hex, err := r.Objects.PutFile(abs)
	if err != nil {
		return "", err
	}
	if err := r.Index.Add(filepath.ToSlash(path), hex); err != nil {
		return "", err
	}
	return hex, nil
}

// Commit builds a tree from the current index, serializes a commit
// pointing at it (with the current branch's tip as parent, if any),
// stores it, and advances the current branch. Fails with
// ErrNothingToCommit if the index has no staged entries.
func (r *Repo) Commit(message string, committer config.Identity, unixTime int64) (digestHex string, err error) {
	entries, err := r.Index.Load()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", ErrNothingToCommit
	}

	treeHex, err := r.Trees.Build(entries)
	if err != nil {
		return "", err
	}

	c := object.Commit{
		Committer: committer.String(),
		Time:      unixTime,
		Message:   message,
	}
	if c.TreeID, err = rithash.FromHex(treeHex); err != nil {
		return "", err
	}

	parentHex, hasParent, err := r.Refs.CurrentBranchTip()
	if err != nil {
		return "", err
	}
	if hasParent {
		if c.ParentID, err = rithash.FromHex(parentHex); err != nil {
			return "", err
		}
	}

	payload := object.EncodeCommit(c)
	commitHex, err := r.Objects.Put(object.TypeCommit, payload)
	if err != nil {
		return "", err
	}

	if err := r.Refs.UpdateCurrentBranch(commitHex); err != nil {
		return "", err
	}
	return commitHex, nil
}

// LogEntry pairs a commit with the digest it's stored under, since a
// commit's own payload never names itself.
type LogEntry struct {
	Digest string
	Commit object.Commit
}

// Log walks commit -> parent starting at the current branch's tip,
// returning the chain from newest to oldest.
func (r *Repo) Log() ([]LogEntry, error) {
	tipHex, ok, err := r.Refs.CurrentBranchTip()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var chain []LogEntry
	for hex := tipHex; hex != ""; {
		payload, err := r.Objects.GetTyped(hex, object.TypeCommit)
		if err != nil {
			return nil, err
		}
		c, err := object.DecodeCommit(payload)
		if err != nil {
			return nil, err
		}
		chain = append(chain, LogEntry{Digest: hex, Commit: c})
		if !c.HasParent() {
			break
		}
		hex = c.ParentID.String()
	}
	return chain, nil
}
