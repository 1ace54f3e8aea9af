package plumbing

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brickster241/mygit/utils/types"
)

// WriteCommit serializes a commit object, writes it to the object store, and returns the commit hash.
func (s *ObjectStore) WriteCommit(commit *types.Commit) (types.Hash, error) {
	var content bytes.Buffer

	// Tree Line : "tree <hash>\n"
	content.WriteString("tree ")
	content.WriteString(commit.Tree.String())
	content.WriteByte('\n')

	// Parent Line per parent (if exists) : "parent <hash>\n"
	for _, parent := range commit.Parents {
		content.WriteString("parent ")
		content.WriteString(parent.String())
		content.WriteByte('\n')
	}

	// Author Line : "author <name> <<email>>"
	fmt.Fprintf(&content, "author %s <%s>\n", commit.Author.Name, commit.Author.Email)
	fmt.Fprintf(&content, "timestamp %d\n", commit.Timestamp.UnixNano())

	// blank line before message
	content.WriteByte('\n')
	content.WriteString(commit.Message)

	hash := commit.Hash()
	if err := s.WriteObject(types.CommitObject, hash, content.Bytes()); err != nil {
		return types.ZeroHash, err
	}
	return hash, nil
}

// ReadCommit reads and parses a commit object from the object store.
func (s *ObjectStore) ReadCommit(hash types.Hash) (*types.Commit, error) {
	payload, err := s.readTyped(hash, types.CommitObject)
	if err != nil {
		return nil, err
	}

	header, message, ok := strings.Cut(string(payload), "\n\n")
	if !ok {
		return nil, fmt.Errorf("commit %s: %w: missing message separator", hash, ErrDeserialization)
	}

	c := &types.Commit{Message: message}
	var hasTree, hasTimestamp bool
	for _, line := range strings.Split(header, "\n") {
		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "tree":
			if c.Tree, err = types.ParseHash(value); err != nil {
				return nil, fmt.Errorf("commit %s: %w: %w", hash, ErrDeserialization, err)
			}
			hasTree = true
		case "parent":
			parent, err := types.ParseHash(value)
			if err != nil {
				return nil, fmt.Errorf("commit %s: %w: %w", hash, ErrDeserialization, err)
			}
			c.Parents = append(c.Parents, parent)
		case "author":
			idx := strings.LastIndex(value, " <")
			if idx == -1 || !strings.HasSuffix(value, ">") {
				return nil, fmt.Errorf("commit %s: %w: invalid author %q", hash, ErrDeserialization, value)
			}
			c.Author = types.Author{Name: value[:idx], Email: value[idx+2 : len(value)-1]}
		case "timestamp":
			nanos, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("commit %s: %w: invalid timestamp %q", hash, ErrDeserialization, value)
			}
			c.Timestamp = time.Unix(0, nanos)
			hasTimestamp = true
		default:
			return nil, fmt.Errorf("commit %s: %w: unknown header %q", hash, ErrDeserialization, key)
		}
	}
	if !hasTree || !hasTimestamp {
		return nil, fmt.Errorf("commit %s: %w: incomplete header", hash, ErrDeserialization)
	}
	return c, nil
}
