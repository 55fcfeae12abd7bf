package object

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/DillonJackson/rit/internal/readutil"
	"github.com/DillonJackson/rit/rithash"
	"github.com/pkg/errors"
)

// ErrCorruptCommit is returned when a commit payload fails the parser
// contract.
var ErrCorruptCommit = errors.New("corrupt commit")

// Commit represents the parsed form of a commit record.
type Commit struct {
	TreeID    rithash.Digest
	ParentID  rithash.Digest // rithash.Zero when there's no parent
	Committer string
	Time      int64 // unix seconds
	Message   string
}

// HasParent reports whether the commit has a parent header.
func (c Commit) HasParent() bool {
	return !c.ParentID.IsZero()
}

// EncodeCommit serializes a commit into the payload format from §3:
//
//	tree <hex>\n
//	[parent <hex>\n]
//	committer <committer> <unix-seconds>\n
//	\n
//	<message>
func EncodeCommit(c Commit) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("tree ")
	buf.WriteString(c.TreeID.String())
	buf.WriteByte('\n')

	if c.HasParent() {
		buf.WriteString("parent ")
		buf.WriteString(c.ParentID.String())
		buf.WriteByte('\n')
	}

	buf.WriteString("committer ")
	buf.WriteString(c.Committer)
	buf.WriteByte(' ')
	buf.WriteString(strconv.FormatInt(c.Time, 10))
	buf.WriteByte('\n')

	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// DecodeCommit parses a commit payload. Header lines are split at the
// first blank line from the message; each header line is a key/value
// pair split at the first space. Unrecognized keys are ignored.
// Recognized keys: tree (exactly one), parent (zero or one), committer
// (exactly one, whose last whitespace-separated token is the unix
// timestamp and everything before it is the committer identity). The
// message is the remainder, with one trailing newline trimmed.
func DecodeCommit(payload []byte) (Commit, error) {
	var c Commit
	haveTree := false
	haveParent := false
	haveCommitter := false

	offset := 0
	for {
		line := readutil.ReadTo(payload[offset:], '\n')
		if line == nil {
			return Commit{}, errors.Wrap(ErrCorruptCommit, "missing header/message separator")
		}
		offset += len(line) + 1

		if len(line) == 0 {
			c.Message = strings.TrimSuffix(string(payload[offset:]), "\n")
			break
		}

		kv := bytes.SplitN(line, []byte{' '}, 2)
		if len(kv) != 2 {
			return Commit{}, errors.Wrap(ErrCorruptCommit, "malformed header line")
		}
		key, value := string(kv[0]), kv[1]

		switch key {
		case "tree":
			if haveTree {
				return Commit{}, errors.Wrap(ErrCorruptCommit, "duplicate tree header")
			}
			digest, err := rithash.FromHex(string(value))
			if err != nil {
				return Commit{}, errors.Wrap(ErrCorruptCommit, "invalid tree digest")
			}
			c.TreeID = digest
			haveTree = true
		case "parent":
			if haveParent {
				return Commit{}, errors.Wrap(ErrCorruptCommit, "duplicate parent header")
			}
			digest, err := rithash.FromHex(string(value))
			if err != nil {
				return Commit{}, errors.Wrap(ErrCorruptCommit, "invalid parent digest")
			}
			c.ParentID = digest
			haveParent = true
		case "committer":
			if haveCommitter {
				return Commit{}, errors.Wrap(ErrCorruptCommit, "duplicate committer header")
			}
			name, ts, err := splitCommitter(string(value))
			if err != nil {
				return Commit{}, err
			}
			c.Committer = name
			c.Time = ts
			haveCommitter = true
		default:
			// unrecognized header keys are ignored for forward compatibility
		}
	}

	if !haveTree {
		return Commit{}, errors.Wrap(ErrCorruptCommit, "missing tree header")
	}
	if !haveCommitter {
		return Commit{}, errors.Wrap(ErrCorruptCommit, "missing committer header")
	}

	return c, nil
}

// splitCommitter splits "<committer text> <unix-seconds>" at the last
// whitespace-separated token.
func splitCommitter(s string) (name string, unixSeconds int64, err error) {
	idx := strings.LastIndexByte(s, ' ')
	if idx < 0 {
		return "", 0, errors.Wrap(ErrCorruptCommit, "malformed committer line")
	}
	name = s[:idx]
	ts, convErr := strconv.ParseInt(s[idx+1:], 10, 64)
	if convErr != nil {
		return "", 0, errors.Wrap(ErrCorruptCommit, "invalid committer timestamp")
	}
	return name, ts, nil
}
