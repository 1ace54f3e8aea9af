package types

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Commit represents a commit object
type Commit struct {
	Message   string    // commit message
	Author    Author    // author info
	Timestamp time.Time // creation time
	Parents   []Hash    // parent commits, two for merges
	Tree      Hash      // root tree
}

type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	if a.Email == "" {
		return a.Name
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Hash digests message, author, timestamp, parents and tree, in that order.
func (c *Commit) Hash() Hash {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(c.Timestamp.UnixNano()))
	parts := [][]byte{[]byte(c.Message), []byte(c.Author.String()), ts[:]}
	for i := range c.Parents {
		parts = append(parts, c.Parents[i][:])
	}
	parts = append(parts, c.Tree[:])
	return sumOf(parts...)
}

// FirstParent returns the mainline parent, false for a root commit.
func (c *Commit) FirstParent() (Hash, bool) {
	if len(c.Parents) == 0 {
		return ZeroHash, false
	}
	return c.Parents[0], true
}

// LogEntry pairs a commit with its hash.
type LogEntry struct {
	Hash   Hash
	Commit *Commit
}
