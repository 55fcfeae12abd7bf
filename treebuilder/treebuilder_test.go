package treebuilder_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DillonJackson/rit/index"
	"github.com/DillonJackson/rit/object"
	"github.com/DillonJackson/rit/rithash"
	"github.com/DillonJackson/rit/store"
	"github.com/DillonJackson/rit/treebuilder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	root := filepath.Join(t.TempDir(), "objects")
	require.NoError(t, os.MkdirAll(root, 0o755))
	return store.New(root)
}

func hashOf(s string) string {
	return rithash.Sum([]byte(s)).String()
}

func TestBuildEmptyIndexIsStableEmptyTree(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	b := treebuilder.New(s)

	hex, err := b.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, object.Record{Type: object.TypeTree, Payload: nil}.Digest().String(), hex)
}

func TestBuildNestedStructure(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	b := treebuilder.New(s)

	h1 := hashOf("file1 contents")
	h2 := hashOf("file2 contents")
	h3 := hashOf("file3 contents")

	entries := []index.Entry{
		{Mode: 0o100644, DigestHex: h1, Path: "file1.txt"},
		{Mode: 0o100644, DigestHex: h2, Path: "dir/file2.txt"},
		{Mode: 0o100644, DigestHex: h3, Path: "dir/subdir/file3.txt"},
	}

	rootHex, err := b.Build(entries)
	require.NoError(t, err)

	rootPayload, err := s.GetTyped(rootHex, object.TypeTree)
	require.NoError(t, err)
	rootEntries, err := object.DecodeTree(rootPayload)
	require.NoError(t, err)
	require.Len(t, rootEntries, 2)

	byName := map[string]object.TreeEntry{}
	for _, e := range rootEntries {
		byName[e.Name] = e
	}

	dirEntry, ok := byName["dir"]
	require.True(t, ok)
	assert.Equal(t, object.EntryTree, dirEntry.Type)

	file1Entry, ok := byName["file1.txt"]
	require.True(t, ok)
	assert.Equal(t, object.EntryBlob, file1Entry.Type)
	assert.Equal(t, h1, file1Entry.Digest.String())

	dirPayload, err := s.GetTyped(dirEntry.Digest.String(), object.TypeTree)
	require.NoError(t, err)
	dirEntries, err := object.DecodeTree(dirPayload)
	require.NoError(t, err)
	require.Len(t, dirEntries, 2)

	dirByName := map[string]object.TreeEntry{}
	for _, e := range dirEntries {
		dirByName[e.Name] = e
	}

	file2Entry, ok := dirByName["file2.txt"]
	require.True(t, ok)
	assert.Equal(t, object.EntryBlob, file2Entry.Type)
	assert.Equal(t, h2, file2Entry.Digest.String())

	subdirEntry, ok := dirByName["subdir"]
	require.True(t, ok)
	assert.Equal(t, object.EntryTree, subdirEntry.Type)

	subdirPayload, err := s.GetTyped(subdirEntry.Digest.String(), object.TypeTree)
	require.NoError(t, err)
	subdirEntries, err := object.DecodeTree(subdirPayload)
	require.NoError(t, err)
	require.Len(t, subdirEntries, 1)
	assert.Equal(t, "file3.txt", subdirEntries[0].Name)
	assert.Equal(t, h3, subdirEntries[0].Digest.String())
}

func TestBuildIsDeterministicRegardlessOfOrder(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	b := treebuilder.New(s)

	h1 := hashOf("file1 contents")
	h2 := hashOf("file2 contents")
	h3 := hashOf("file3 contents")

	order1 := []index.Entry{
		{Mode: 0o100644, DigestHex: h1, Path: "file1.txt"},
		{Mode: 0o100644, DigestHex: h2, Path: "dir/file2.txt"},
		{Mode: 0o100644, DigestHex: h3, Path: "dir/subdir/file3.txt"},
	}
	order2 := []index.Entry{
		{Mode: 0o100644, DigestHex: h3, Path: "dir/subdir/file3.txt"},
		{Mode: 0o100644, DigestHex: h1, Path: "file1.txt"},
		{Mode: 0o100644, DigestHex: h2, Path: "dir/file2.txt"},
	}

	hex1, err := b.Build(order1)
	require.NoError(t, err)
	hex2, err := b.Build(order2)
	require.NoError(t, err)
	assert.Equal(t, hex1, hex2)
}

func TestBuildThenFlattenRoundTrips(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	b := treebuilder.New(s)

	h1 := hashOf("a")
	h2 := hashOf("b")

	entries := []index.Entry{
		{Mode: 0o100644, DigestHex: h1, Path: "a.txt"},
		{Mode: 0o100755, DigestHex: h2, Path: "scripts/run.sh"},
	}

	rootHex, err := b.Build(entries)
	require.NoError(t, err)

	flat, err := b.Flatten(rootHex)
	require.NoError(t, err)
	assert.ElementsMatch(t, entries, flat)
}
