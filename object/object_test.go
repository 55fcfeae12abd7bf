package object_test

import (
	"testing"

	"github.com/DillonJackson/rit/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	t.Parallel()

	for _, typ := range []object.Type{object.TypeBlob, object.TypeTree, object.TypeCommit} {
		r := object.Record{Type: typ, Payload: []byte("example data")}
		parsed, err := object.ParseFrame(r.Frame())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed.Type)
		assert.Equal(t, []byte("example data"), parsed.Payload)
	}
}

func TestFrameRoundTripEmptyPayload(t *testing.T) {
	t.Parallel()

	r := object.Record{Type: object.TypeTree, Payload: []byte{}}
	parsed, err := object.ParseFrame(r.Frame())
	require.NoError(t, err)
	assert.Empty(t, parsed.Payload)
}

func TestParseFrameRejectsBadInput(t *testing.T) {
	t.Parallel()

	cases := map[string][]byte{
		"no space separator":     []byte("blobnosep"),
		"no nul separator":       []byte("blob 4abcd"),
		"non numeric length":     []byte("blob four\x00data"),
		"length mismatch short":  []byte("blob 10\x00abc"),
		"unknown type":           []byte("widget 3\x00abc"),
	}
	for name, data := range cases {
		data := data
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := object.ParseFrame(data)
			assert.Error(t, err)
		})
	}
}

func TestParseTypeClosedSet(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"blob", "tree", "commit"} {
		typ, err := object.ParseType(s)
		require.NoError(t, err)
		assert.Equal(t, s, typ.String())
	}

	_, err := object.ParseType("tag")
	assert.ErrorIs(t, err, object.ErrObjectUnknown)
}
