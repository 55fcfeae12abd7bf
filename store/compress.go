package store

import (
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// ErrCorruptCompressed is returned when compressed bytes fail to decode.
var ErrCorruptCompressed = errors.New("corrupt compressed data")

// compressionLevel is the repo-wide codec choice. Changing it would break
// existing repositories, so it's pinned here rather than made configurable.
const compressionLevel = zstd.SpeedDefault // zstd level 3 equivalent

// compress block-compresses b using zstd. The round trip through
// decompress is the identity for all inputs, including the empty slice.
func compress(b []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(compressionLevel))
	if err != nil {
		return nil, errors.Wrap(err, "could not create zstd encoder")
	}
	defer enc.Close()
	return enc.EncodeAll(b, make([]byte, 0, len(b))), nil
}

// decompress reverses compress. Returns ErrCorruptCompressed if the input
// isn't a valid zstd stream.
func decompress(b []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not create zstd decoder")
	}
	defer dec.Close()

	out, err := dec.DecodeAll(b, nil)
	if err != nil {
		return nil, errors.Wrap(ErrCorruptCompressed, err.Error())
	}
	return out, nil
}
