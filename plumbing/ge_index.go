package plumbing

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

// Index is the staging area: an ordered list of (path, blob hash) records persisted one per line.
type Index struct {
	fs      billy.Filesystem
	entries []types.IndexEntry
}

// NewIndex returns an empty index that will be saved into fs.
func NewIndex(fs billy.Filesystem) *Index {
	return &Index{fs: fs}
}

// LoadIndex reads the index file and returns the parsed records.
func LoadIndex(fsys billy.Filesystem) (*Index, error) {
	data, err := readFile(fsys, constants.IndexFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("index file missing: %w", ErrCorruptRepository)
	}
	if err != nil {
		return nil, IOError("read", constants.IndexFile, err)
	}

	idx := NewIndex(fsys)
	for n, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}

		// The hash follows the last space, so paths may hold spaces
		sep := strings.LastIndexByte(line, ' ')
		if sep <= 0 {
			return nil, fmt.Errorf("index line %d: %w", n+1, ErrCorruptRepository)
		}
		hash, err := types.ParseHash(line[sep+1:])
		if err != nil {
			return nil, fmt.Errorf("index line %d: %w: %w", n+1, ErrCorruptRepository, err)
		}
		idx.Stage(line[:sep], hash)
	}
	return idx, nil
}

// Stage records hash for path. Any earlier record for path is dropped first.
func (idx *Index) Stage(path string, hash types.Hash) {
	idx.Unstage(path)
	idx.entries = append(idx.entries, types.IndexEntry{Path: path, Hash: hash})
}

// Unstage drops the record for path, if any.
func (idx *Index) Unstage(path string) {
	idx.entries = slices.DeleteFunc(idx.entries, func(e types.IndexEntry) bool {
		return e.Path == path
	})
}

func (idx *Index) Lookup(path string) (types.Hash, bool) {
	for _, e := range idx.entries {
		if e.Path == path {
			return e.Hash, true
		}
	}
	return types.ZeroHash, false
}

// All returns a copy of the records in file order.
func (idx *Index) All() []types.IndexEntry {
	return slices.Clone(idx.entries)
}

func (idx *Index) Len() int {
	return len(idx.entries)
}

func (idx *Index) Clear() {
	idx.entries = nil
}

// Replace swaps every record for entries.
func (idx *Index) Replace(entries []types.IndexEntry) {
	idx.Clear()
	for _, e := range entries {
		idx.Stage(e.Path, e.Hash)
	}
}

// Save rewrites the index file atomically.
func (idx *Index) Save() error {
	var sb strings.Builder
	for _, e := range idx.entries {
		sb.WriteString(e.Path)
		sb.WriteByte(' ')
		sb.WriteString(e.Hash.String())
		sb.WriteByte('\n')
	}
	if err := writeFileAtomic(idx.fs, constants.IndexFile, []byte(sb.String())); err != nil {
		return IOError("write", constants.IndexFile, err)
	}
	return nil
}
