package index_test

import (
	"testing"

	"github.com/DillonJackson/rit/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSingleEntryExactBytes(t *testing.T) {
	t.Parallel()

	entries := []index.Entry{
		{Mode: 0o100644, DigestHex: "123abc", Path: "test_file.txt"},
	}

	want := []byte{
		0x00, 0x00, 0x81, 0xA4, // mode, big-endian
		0x06,                                                          // hex-digest length
		0x31, 0x32, 0x33, 0x61, 0x62, 0x63, // "123abc"
		0x00, 0x0D, // path length, big-endian
		0x74, 0x65, 0x73, 0x74, 0x5F, 0x66, 0x69, 0x6C, 0x65, 0x2E, 0x74, 0x78, 0x74, // "test_file.txt"
	}

	got := index.Encode(entries)
	assert.Equal(t, want, got)

	decoded, err := index.Decode(want)
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestEncodeDecodeMultipleEntries(t *testing.T) {
	t.Parallel()

	entries := []index.Entry{
		{Mode: 0o100644, DigestHex: "aaaa", Path: "a.txt"},
		{Mode: 0o100755, DigestHex: "bbbb", Path: "dir/b.txt"},
	}
	decoded, err := index.Decode(index.Encode(entries))
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestDecodeEmpty(t *testing.T) {
	t.Parallel()

	decoded, err := index.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeTruncatedModeIsCleanEOF(t *testing.T) {
	t.Parallel()

	// Only 2 bytes: not even enough for a full mode field.
	decoded, err := index.Decode([]byte{0x00, 0x00})
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeTruncatedMidRecordIsCorrupt(t *testing.T) {
	t.Parallel()

	full := index.Encode([]index.Entry{{Mode: 0o100644, DigestHex: "123abc", Path: "test_file.txt"}})

	// Truncate after the mode + hex-length byte + a few digest bytes.
	truncated := full[:8]
	_, err := index.Decode(truncated)
	assert.ErrorIs(t, err, index.ErrCorruptIndex)
}

func TestDecodeTruncatedPathIsCorrupt(t *testing.T) {
	t.Parallel()

	full := index.Encode([]index.Entry{{Mode: 0o100644, DigestHex: "123abc", Path: "test_file.txt"}})
	truncated := full[:len(full)-3]
	_, err := index.Decode(truncated)
	assert.ErrorIs(t, err, index.ErrCorruptIndex)
}
