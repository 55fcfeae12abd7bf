// Package refs implements HEAD and branch-ref storage: the symbolic
// HEAD -> refs/heads/<branch> indirection and the per-branch commit
// pointer files.
package refs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DillonJackson/rit/internal/ritpath"
	"github.com/pkg/errors"
)

// Closed set of errors this package can return.
var (
	// ErrInvalidHead is returned when HEAD is missing or not a
	// recognized "ref: refs/heads/<name>" form. Detached HEAD is not
	// supported.
	ErrInvalidHead = errors.New("invalid HEAD")
	// ErrBranchNotFound names a missing branch ref file. No function in
	// this package returns it: BranchTip and CurrentBranchTip report a
	// missing ref file as ok == false with a nil error.
	ErrBranchNotFound = errors.New("branch not found")
)

// Store manages HEAD and the refs/heads/ directory of a single
// repository.
type Store struct {
	repoRoot string
}

// New returns a refs Store rooted at the given repository root (the
// directory that contains .rit/).
func New(repoRoot string) *Store {
	return &Store{repoRoot: repoRoot}
}

// InitBranches creates HEAD pointing at refs/heads/master, and the
// refs/heads/ directory, for a brand-new repository.
func (s *Store) InitBranches() error {
	if err := os.MkdirAll(ritpath.RefsHeads(s.repoRoot), 0o755); err != nil {
		return errors.Wrap(err, "could not create refs/heads")
	}
	head := fmt.Sprintf("ref: %s\n", headTarget(defaultBranch))
	if err := os.WriteFile(ritpath.Head(s.repoRoot), []byte(head), 0o644); err != nil {
		return errors.Wrap(err, "could not write HEAD")
	}
	return nil
}

const defaultBranch = "master"

// headTarget renders the refs/heads/<name> form referenced by HEAD.
func headTarget(branch string) string {
	return "refs/heads/" + branch
}

// CurrentBranchName parses HEAD and returns the current branch name.
// Fails with ErrInvalidHead if HEAD is missing or malformed.
func (s *Store) CurrentBranchName() (string, error) {
	data, err := os.ReadFile(ritpath.Head(s.repoRoot))
	if err != nil {
		return "", errors.Wrap(ErrInvalidHead, err.Error())
	}
	line := strings.TrimSuffix(string(data), "\n")
	const prefix = "ref: refs/heads/"
	if !strings.HasPrefix(line, prefix) {
		return "", errors.Wrap(ErrInvalidHead, "HEAD is not a recognized symbolic ref")
	}
	name := strings.TrimPrefix(line, prefix)
	if name == "" {
		return "", errors.Wrap(ErrInvalidHead, "HEAD names an empty branch")
	}
	return name, nil
}

// CurrentBranchTip returns the commit digest the current branch points
// at, or ("", false, nil) if the branch has no commits yet.
func (s *Store) CurrentBranchTip() (hex string, ok bool, err error) {
	name, err := s.CurrentBranchName()
	if err != nil {
		return "", false, err
	}
	return s.BranchTip(name)
}

// BranchTip returns the commit digest the named branch points at, or
// ("", false, nil) if the branch has no commits yet.
func (s *Store) BranchTip(name string) (hex string, ok bool, err error) {
	data, err := os.ReadFile(ritpath.Branch(s.repoRoot, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "could not read branch ref")
	}
	return strings.TrimSuffix(string(data), "\n"), true, nil
}

// UpdateCurrentBranch advances the current branch's ref file to the
// given commit digest, writing it atomically.
func (s *Store) UpdateCurrentBranch(hex string) error {
	name, err := s.CurrentBranchName()
	if err != nil {
		return err
	}
	return s.CreateBranch(name, hex)
}

// CreateBranch writes refs/heads/<name> to point at the given commit
// digest, creating or overwriting the file.
func (s *Store) CreateBranch(name, hex string) error {
	p := ritpath.Branch(s.repoRoot, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "could not create refs/heads")
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(hex+"\n"), 0o644); err != nil {
		return errors.Wrap(err, "could not write branch ref")
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "could not finalize branch ref")
	}
	return nil
}
