// Package rithash computes and represents the content digests used to
// address every record in the object store.
package rithash

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// ErrInvalidDigest is returned when a value isn't a valid digest.
var ErrInvalidDigest = errors.New("invalid digest")

// Size is the length, in bytes, of a Digest.
const Size = sha256.Size

// Zero is the empty digest, used to represent the absence of a value
// (e.g. a commit with no parent).
var Zero = Digest{}

// Digest is a 32-byte SHA-256 content address, the primitive used to
// identify every record (blob, tree, commit) in the object store.
type Digest [Size]byte

// Sum returns the digest of the given bytes.
func Sum(content []byte) Digest {
	return Digest(sha256.Sum256(content))
}

// FromHex parses a 64-character lowercase hex string into a Digest.
func FromHex(s string) (Digest, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Zero, errors.Wrap(ErrInvalidDigest, err.Error())
	}
	return FromBytes(b)
}

// FromBytes builds a Digest from raw (non-hex) bytes.
func FromBytes(b []byte) (Digest, error) {
	if len(b) != Size {
		return Zero, ErrInvalidDigest
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

// Bytes returns the raw bytes of the digest.
func (d Digest) Bytes() []byte {
	return d[:]
}

// String renders the digest as 64 lowercase hex characters.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is the zero-value digest.
func (d Digest) IsZero() bool {
	return d == Zero
}
