package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	t.Parallel()

	cases := [][]byte{
		{},
		[]byte("a"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		make([]byte, 10000),
	}

	for _, b := range cases {
		compressed, err := compress(b)
		require.NoError(t, err)
		decompressed, err := decompress(compressed)
		require.NoError(t, err)
		assert.Equal(t, b, decompressed)
	}
}

func TestDecompressCorruptData(t *testing.T) {
	t.Parallel()

	_, err := decompress([]byte("not zstd data at all"))
	assert.ErrorIs(t, err, ErrCorruptCompressed)
}
