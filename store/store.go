// Package store implements the content-addressed object store: typed,
// compressed records persisted under objects/<xx>/<rest>.
package store

import (
	"io"
	"os"
	"path/filepath"

	"github.com/DillonJackson/rit/internal/errutil"
	"github.com/DillonJackson/rit/object"
	"github.com/pkg/errors"
)

// ErrObjectNotFound is returned when a digest doesn't resolve in the
// object store.
var ErrObjectNotFound = errors.New("object not found")

// Store is a content-addressed, compressed, typed object store rooted at
// a single "objects" directory.
type Store struct {
	root string // the .rit/objects directory
}

// New returns a Store rooted at the given objects directory. The
// directory must already exist (created by repo lifecycle Init).
func New(objectsRoot string) *Store {
	return &Store{root: objectsRoot}
}

// path returns the on-disk location for a digest hex string:
// <root>/<hex[0:2]>/<hex[2:]>.
func (s *Store) path(hex string) string {
	return filepath.Join(s.root, hex[:2], hex[2:])
}

// Put computes the framed form of (typ, payload), hashes it, and writes
// it - compressed - at its content-addressed path, unless a file already
// exists there. Returns the hex digest. Idempotent: a pre-existing file
// is left untouched.
func (s *Store) Put(typ object.Type, payload []byte) (string, error) {
	rec := object.Record{Type: typ, Payload: payload}
	digest := rec.Digest()
	hex := digest.String()

	p := s.path(hex)
	if _, err := os.Stat(p); err == nil {
		return hex, nil
	} else if !os.IsNotExist(err) {
		return "", errors.Wrap(err, "could not stat object path")
	}

	compressed, err := compress(rec.Frame())
	if err != nil {
		return "", errors.Wrap(err, "could not compress record")
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", errors.Wrap(err, "could not create fan-out directory")
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o444); err != nil {
		return "", errors.Wrap(err, "could not write temporary object file")
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return "", errors.Wrap(err, "could not finalize object file")
	}

	return hex, nil
}

// PutFile reads the file at path and stores it as a blob.
func (s *Store) PutFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "could not read file")
	}
	return s.Put(object.TypeBlob, content)
}

// Get resolves a digest, decompresses and parses the framed form, and
// returns the record's type, payload length, and payload.
func (s *Store) Get(hex string) (typ object.Type, size int, payload []byte, err error) {
	p := s.path(hex)
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil, errors.Wrapf(ErrObjectNotFound, "%s", hex)
		}
		return 0, 0, nil, errors.Wrap(err, "could not open object file")
	}
	defer errutil.Close(f, &err)

	compressed, err := io.ReadAll(f)
	if err != nil {
		return 0, 0, nil, errors.Wrap(err, "could not read object file")
	}

	framed, err := decompress(compressed)
	if err != nil {
		return 0, 0, nil, err
	}

	rec, err := object.ParseFrame(framed)
	if err != nil {
		return 0, 0, nil, err
	}

	return rec.Type, len(rec.Payload), rec.Payload, nil
}

// GetTyped is like Get but fails with object.ErrTypeMismatch if the
// stored record isn't of the expected type.
func (s *Store) GetTyped(hex string, want object.Type) ([]byte, error) {
	typ, _, payload, err := s.Get(hex)
	if err != nil {
		return nil, err
	}
	if typ != want {
		return nil, errors.Wrapf(object.ErrTypeMismatch, "wanted %s, got %s", want, typ)
	}
	return payload, nil
}

// Delete removes the backing file for a digest. Used only by tests.
func (s *Store) Delete(hex string) error {
	p := s.path(hex)
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrObjectNotFound, "%s", hex)
		}
		return errors.Wrap(err, "could not delete object file")
	}
	return nil
}

// Has reports whether a digest resolves in the store.
func (s *Store) Has(hex string) bool {
	_, err := os.Stat(s.path(hex))
	return err == nil
}
