// Package object implements the three record types stored in the object
// store (blob, tree, commit) and their framed on-disk representation.
package object

import (
	"bytes"
	"strconv"

	"github.com/DillonJackson/rit/internal/readutil"
	"github.com/DillonJackson/rit/rithash"
	"github.com/pkg/errors"
)

// Closed set of errors a caller can match on.
var (
	// ErrObjectUnknown is returned when a type tag isn't blob/tree/commit.
	ErrObjectUnknown = errors.New("invalid object type")
	// ErrCorruptRecord is returned when the framed form of a record fails
	// to parse: missing separators, a malformed length, or a length that
	// disagrees with the actual payload.
	ErrCorruptRecord = errors.New("corrupt record")
	// ErrTypeMismatch is returned when a caller asked for a specific
	// object type and got another.
	ErrTypeMismatch = errors.New("object type mismatch")
)

// Type is the closed set of record types the store knows how to hold.
type Type int8

// The three record types named by the spec.
const (
	TypeBlob Type = iota + 1
	TypeTree
	TypeCommit
)

// String renders the type the way it's written in the framed form.
func (t Type) String() string {
	switch t {
	case TypeBlob:
		return "blob"
	case TypeTree:
		return "tree"
	case TypeCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// ParseType parses the ASCII type tag of a framed record.
func ParseType(s string) (Type, error) {
	switch s {
	case "blob":
		return TypeBlob, nil
	case "tree":
		return TypeTree, nil
	case "commit":
		return TypeCommit, nil
	default:
		return 0, ErrObjectUnknown
	}
}

// Record is the primitive stored unit: a type tag plus an opaque payload.
type Record struct {
	Type    Type
	Payload []byte
}

// Frame returns the record's framed form: "<type> <len>\0<payload>".
// The record's digest is computed over this exact byte sequence.
func (r Record) Frame() []byte {
	w := new(bytes.Buffer)
	w.WriteString(r.Type.String())
	w.WriteByte(' ')
	w.WriteString(strconv.Itoa(len(r.Payload)))
	w.WriteByte(0)
	w.Write(r.Payload)
	return w.Bytes()
}

// Digest returns the content address of the record (the hash of its
// framed form).
func (r Record) Digest() rithash.Digest {
	return rithash.Sum(r.Frame())
}

// ParseFrame parses a framed record back into its type and payload.
// Parsing fails if there's no space separator, no NUL separator after it,
// the length isn't a non-negative decimal integer, the type tag isn't in
// the closed set, or the declared length disagrees with the actual
// payload byte count.
func ParseFrame(data []byte) (Record, error) {
	typeBytes := readutil.ReadTo(data, ' ')
	if typeBytes == nil {
		return Record{}, errors.Wrap(ErrCorruptRecord, "missing type separator")
	}
	typ, err := ParseType(string(typeBytes))
	if err != nil {
		return Record{}, errors.Wrap(ErrCorruptRecord, err.Error())
	}

	offset := len(typeBytes) + 1
	lenBytes := readutil.ReadTo(data[offset:], 0)
	if lenBytes == nil {
		return Record{}, errors.Wrap(ErrCorruptRecord, "missing length separator")
	}
	size, err := strconv.Atoi(string(lenBytes))
	if err != nil || size < 0 {
		return Record{}, errors.Wrap(ErrCorruptRecord, "invalid payload length")
	}

	offset += len(lenBytes) + 1
	payload := data[offset:]
	if len(payload) != size {
		return Record{}, errors.Wrap(ErrCorruptRecord, "payload length mismatch")
	}

	return Record{Type: typ, Payload: payload}, nil
}
