package object_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/DillonJackson/rit/object"
	"github.com/DillonJackson/rit/rithash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkDigest(b byte) rithash.Digest {
	var d rithash.Digest
	for i := range d {
		d[i] = b
	}
	return d
}

func TestTreeEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	entries := []object.TreeEntry{
		{Mode: object.ModeFile, Type: object.EntryBlob, Digest: mkDigest(1), Name: "file1.txt"},
		{Mode: object.ModeDirectory, Type: object.EntryTree, Digest: mkDigest(2), Name: "dir"},
		{Mode: object.ModeFile, Type: object.EntryBlob, Digest: mkDigest(3), Name: "zeta.txt"},
	}

	payload := object.EncodeTree(entries)
	decoded, err := object.DecodeTree(payload)
	require.NoError(t, err)

	want := object.SortEntries(entries)
	assert.Equal(t, want, decoded)
}

func TestTreeDeterministicRegardlessOfInputOrder(t *testing.T) {
	t.Parallel()

	base := []object.TreeEntry{
		{Mode: object.ModeFile, Type: object.EntryBlob, Digest: mkDigest(1), Name: "a"},
		{Mode: object.ModeFile, Type: object.EntryBlob, Digest: mkDigest(2), Name: "b"},
		{Mode: object.ModeDirectory, Type: object.EntryTree, Digest: mkDigest(3), Name: "c"},
	}

	shuffled := make([]object.TreeEntry, len(base))
	copy(shuffled, base)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	assert.Equal(t, object.EncodeTree(base), object.EncodeTree(shuffled))
}

func TestTreeEmptyPayload(t *testing.T) {
	t.Parallel()

	payload := object.EncodeTree(nil)
	assert.Empty(t, payload)

	decoded, err := object.DecodeTree(payload)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestTreeDecodeRejectsTruncatedDigest(t *testing.T) {
	t.Parallel()

	payload := []byte("100644 file.txt\x00short")
	_, err := object.DecodeTree(payload)
	assert.ErrorIs(t, err, object.ErrCorruptTree)
}

func TestTreeDecodeRejectsBadMode(t *testing.T) {
	t.Parallel()

	payload := append([]byte("notanumber file.txt\x00"), mkDigest(1).Bytes()...)
	_, err := object.DecodeTree(payload)
	assert.ErrorIs(t, err, object.ErrCorruptTree)
}

func TestTreeEntryTypeFromMode(t *testing.T) {
	t.Parallel()

	modeStr := strconv.FormatUint(uint64(object.ModeDirectory), 10)
	payload := append([]byte(modeStr+" dir\x00"), mkDigest(9).Bytes()...)
	entries, err := object.DecodeTree(payload)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, object.EntryTree, entries[0].Type)
}
