package object

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/DillonJackson/rit/internal/readutil"
	"github.com/DillonJackson/rit/rithash"
	"github.com/pkg/errors"
)

// ErrCorruptTree is returned when a tree payload fails the parser contract.
var ErrCorruptTree = errors.New("corrupt tree")

// ModeDirectory is the mode every tree-typed entry carries.
const ModeDirectory uint32 = 0o040000

// ModeFile is the default mode for a regular file staged with no
// executable bit.
const ModeFile uint32 = 0o100644

// EntryType is the closed sum type carried by a tree entry; it mirrors
// the subset of Type a tree entry may reference.
type EntryType int8

// A tree entry can only ever point at a blob or another tree.
const (
	EntryBlob EntryType = iota + 1
	EntryTree
)

// TreeEntry is one (mode, object_type, digest, name) entry inside a tree.
type TreeEntry struct {
	Mode   uint32
	Type   EntryType
	Digest rithash.Digest
	Name   string
}

// typeFromMode derives the closed EntryType from the mode, per the spec:
// 0o040000 is a tree, anything else is a blob.
func typeFromMode(mode uint32) EntryType {
	if mode == ModeDirectory {
		return EntryTree
	}
	return EntryBlob
}

// String renders the entry type the way it's printed by ls-tree.
func (t EntryType) String() string {
	switch t {
	case EntryTree:
		return "tree"
	case EntryBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// SortEntries orders entries by raw, byte-wise lexicographic comparison
// of their name. This ordering is part of the on-disk contract: it's
// what makes two logically identical trees serialize identically.
func SortEntries(entries []TreeEntry) []TreeEntry {
	sorted := make([]TreeEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// EncodeTree serializes tree entries into the payload format from §3:
// a concatenation of "<decimal mode> <name>\0<32 raw digest bytes>",
// with entries pre-sorted by name.
func EncodeTree(entries []TreeEntry) []byte {
	sorted := SortEntries(entries)
	buf := new(bytes.Buffer)
	for _, e := range sorted {
		buf.WriteString(strconv.FormatUint(uint64(e.Mode), 10))
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(e.Digest.Bytes())
	}
	return buf.Bytes()
}

// DecodeTree parses a tree payload back into its entries. Rejects a
// payload where the mode isn't a valid unsigned integer, where there's
// no NUL after the name, or where fewer than 32 bytes remain for the
// digest.
func DecodeTree(payload []byte) ([]TreeEntry, error) {
	entries := []TreeEntry{}
	offset := 0
	for offset < len(payload) {
		modeBytes := readutil.ReadTo(payload[offset:], ' ')
		if modeBytes == nil {
			return nil, errors.Wrap(ErrCorruptTree, "missing mode separator")
		}
		mode, err := strconv.ParseUint(string(modeBytes), 10, 32)
		if err != nil {
			return nil, errors.Wrap(ErrCorruptTree, "invalid mode")
		}
		offset += len(modeBytes) + 1

		nameBytes := readutil.ReadTo(payload[offset:], 0)
		if nameBytes == nil {
			return nil, errors.Wrap(ErrCorruptTree, "missing name separator")
		}
		offset += len(nameBytes) + 1

		if offset+rithash.Size > len(payload) {
			return nil, errors.Wrap(ErrCorruptTree, "truncated digest")
		}
		digest, err := rithash.FromBytes(payload[offset : offset+rithash.Size])
		if err != nil {
			return nil, errors.Wrap(ErrCorruptTree, "invalid digest")
		}
		offset += rithash.Size

		entries = append(entries, TreeEntry{
			Mode:   uint32(mode),
			Type:   typeFromMode(uint32(mode)),
			Digest: digest,
			Name:   string(nameBytes),
		})
	}
	return entries, nil
}
