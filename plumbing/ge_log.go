package plumbing

import (
	"fmt"
	"sort"

	"github.com/brickster241/mygit/utils/types"
)

// CommitIterator walks the commit graph breadth first from a start commit, visiting every commit once.
type CommitIterator struct {
	store         *ObjectStore
	queue         []types.Hash
	discoveredSet map[types.Hash]struct{}
	value         *types.LogEntry
	err           error
}

func NewCommitIterator(store *ObjectStore, start types.Hash) *CommitIterator {
	return &CommitIterator{
		store:         store,
		queue:         []types.Hash{start},
		discoveredSet: map[types.Hash]struct{}{start: {}},
	}
}

func (c *CommitIterator) Next() bool {
	if c.err != nil || len(c.queue) == 0 {
		c.value = nil
		return false
	}

	// pop
	hash := c.queue[0]
	c.queue = c.queue[1:]
	commit, err := c.store.ReadCommit(hash)
	if err != nil {
		c.err = err
		c.value = nil
		return false
	}

	// fill queue
	for _, parent := range commit.Parents {
		if _, wasDiscovered := c.discoveredSet[parent]; !wasDiscovered {
			c.queue = append(c.queue, parent)
			c.discoveredSet[parent] = struct{}{}
		}
	}
	c.value = &types.LogEntry{Hash: hash, Commit: commit}
	return true
}

func (c *CommitIterator) Value() *types.LogEntry {
	return c.value
}

func (c *CommitIterator) Err() error {
	return c.err
}

// Log returns start and all of its ancestors, newest first. Commits with equal timestamps keep
// the order the walk found them in.
func (s *ObjectStore) Log(start types.Hash) ([]types.LogEntry, error) {
	iter := NewCommitIterator(s, start)
	entries := []types.LogEntry{}
	for iter.Next() {
		entries = append(entries, *iter.Value())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Commit.Timestamp.After(entries[j].Commit.Timestamp)
	})
	return entries, nil
}

// FirstParentAncestor follows first parents n times from start.
func (s *ObjectStore) FirstParentAncestor(start types.Hash, n int) (types.Hash, error) {
	if n < 0 {
		return types.ZeroHash, fmt.Errorf("negative revision %d: %w", n, ErrRevisionNotFound)
	}
	current := start
	for i := 0; i < n; i++ {
		commit, err := s.ReadCommit(current)
		if err != nil {
			return types.ZeroHash, err
		}
		parent, ok := commit.FirstParent()
		if !ok {
			return types.ZeroHash, fmt.Errorf("%s~%d: history has only %d ancestors: %w", start.Short(), n, i, ErrRevisionNotFound)
		}
		current = parent
	}
	return current, nil
}
