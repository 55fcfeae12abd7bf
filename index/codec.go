package index

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrCorruptIndex is returned when the index file is partially readable
// but malformed mid-record.
var ErrCorruptIndex = errors.New("corrupt index")

// Encode serializes entries into the on-disk layout: a concatenation of
// fixed/variable-width records with no header and no footer.
//
// Each entry is:
//   - 4 bytes, big-endian: mode
//   - 1 byte, unsigned: hex-digest length (expected 64)
//   - N bytes: hex digest (ASCII)
//   - 2 bytes, big-endian: path byte-length
//   - M bytes: path
func Encode(entries []Entry) []byte {
	buf := new(bytes.Buffer)
	for _, e := range entries {
		var modeBuf [4]byte
		binary.BigEndian.PutUint32(modeBuf[:], e.Mode)
		buf.Write(modeBuf[:])

		buf.WriteByte(byte(len(e.DigestHex)))
		buf.WriteString(e.DigestHex)

		var pathLenBuf [2]byte
		binary.BigEndian.PutUint16(pathLenBuf[:], uint16(len(e.Path)))
		buf.Write(pathLenBuf[:])
		buf.WriteString(e.Path)
	}
	return buf.Bytes()
}

// Decode parses the on-disk layout back into entries. End-of-file
// terminates the stream cleanly at a record boundary, and also when
// fewer than the 4 mode bytes remain there; a record whose mode was read
// and that then runs short is reported as ErrCorruptIndex.
func Decode(data []byte) ([]Entry, error) {
	var entries []Entry
	offset := 0

	for offset < len(data) {
		// The record's fixed-width header is its 4-byte mode. If even
		// that can't be fully read at this boundary, we've reached a
		// clean end-of-stream rather than a corrupt record.
		if offset+4 > len(data) {
			return entries, nil
		}

		mode := binary.BigEndian.Uint32(data[offset : offset+4])
		offset += 4

		// Past this point the record has begun; anything short is
		// corruption, not end-of-stream.
		if offset+1 > len(data) {
			return nil, errors.Wrap(ErrCorruptIndex, "truncated hex-length byte")
		}
		hexLen := int(data[offset])
		offset++

		if offset+hexLen > len(data) {
			return nil, errors.Wrap(ErrCorruptIndex, "truncated digest")
		}
		digestHex := string(data[offset : offset+hexLen])
		offset += hexLen

		if offset+2 > len(data) {
			return nil, errors.Wrap(ErrCorruptIndex, "truncated path length")
		}
		pathLen := int(binary.BigEndian.Uint16(data[offset : offset+2]))
		offset += 2

		if offset+pathLen > len(data) {
			return nil, errors.Wrap(ErrCorruptIndex, "truncated path")
		}
		path := string(data[offset : offset+pathLen])
		offset += pathLen

		entries = append(entries, Entry{Mode: mode, DigestHex: digestHex, Path: path})
	}

	return entries, nil
}
