package plumbing

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/brickster241/mygit/utils/types"
)

// buildTree inserts every path -> content pair, in order, into a fresh root.
func buildTree(t *testing.T, s *ObjectStore, files [][2]string) types.Hash {
	t.Helper()
	root, err := s.EmptyTree()
	require.NoError(t, err)
	for _, f := range files {
		blob := writeBlob(t, s, filepath.Base(f[0]), f[1])
		root, err = s.InsertPath(root, f[0], blob)
		require.NoError(t, err)
	}
	return root
}

// childByName returns the hash of the child of tree named name.
func childByName(t *testing.T, s *ObjectStore, tree types.Hash, name string) types.Hash {
	t.Helper()
	tr, err := s.ReadTree(tree)
	require.NoError(t, err)
	for _, c := range tr.Children {
		n, _, err := s.childName(c)
		require.NoError(t, err)
		if n == name {
			return c
		}
	}
	t.Fatalf("no child %q", name)
	return types.ZeroHash
}

func TestInsertPathStructuralSharing(t *testing.T) {
	s := NewObjectStore(memfs.New())
	root := buildTree(t, s, [][2]string{
		{"a/x.txt", "x"},
		{"b/c/y.txt", "y"},
		{"top.txt", "t"},
	})

	blob := writeBlob(t, s, "z.txt", "z")
	newRoot, err := s.InsertPath(root, "a/z.txt", blob)
	require.NoError(t, err)
	require.NotEqual(t, root, newRoot)

	require.Equal(t, childByName(t, s, root, "b"), childByName(t, s, newRoot, "b"))
	require.Equal(t, childByName(t, s, root, "top.txt"), childByName(t, s, newRoot, "top.txt"))
	require.NotEqual(t, childByName(t, s, root, "a"), childByName(t, s, newRoot, "a"))

	// the old root is still readable and unchanged
	entries, err := s.Flatten(root)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestInsertPathReplacesByName(t *testing.T) {
	s := NewObjectStore(memfs.New())
	root := buildTree(t, s, [][2]string{
		{"d/f.txt", "one"},
		{"d/f.txt", "two"},
	})

	entries, err := s.Flatten(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "d/f.txt", entries[0].Path)

	blob, err := s.ReadBlob(entries[0].Hash)
	require.NoError(t, err)
	require.Equal(t, "two", string(blob.Content))
}

func TestInsertPathIdenticalChild(t *testing.T) {
	s := NewObjectStore(memfs.New())
	root := buildTree(t, s, [][2]string{{"d/f.txt", "one"}})

	blob := writeBlob(t, s, "f.txt", "one")
	again, err := s.InsertPath(root, "d/f.txt", blob)
	require.NoError(t, err)
	require.Equal(t, root, again)
}

func TestInsertPathInvalid(t *testing.T) {
	s := NewObjectStore(memfs.New())
	root, err := s.EmptyTree()
	require.NoError(t, err)

	for _, p := range []string{"", ".", "/abs", "../up"} {
		_, err := s.InsertPath(root, p, types.Hash{1})
		require.ErrorIs(t, err, ErrInvalidOperation, p)
	}
}

func TestRemovePath(t *testing.T) {
	s := NewObjectStore(memfs.New())
	empty, err := s.EmptyTree()
	require.NoError(t, err)

	root := buildTree(t, s, [][2]string{
		{"d/e/f.txt", "f"},
		{"g.txt", "g"},
	})

	removed, err := s.RemovePath(root, "d/e/f.txt")
	require.NoError(t, err)
	entries, err := s.Flatten(removed)
	require.NoError(t, err)
	require.Equal(t, []types.IndexEntry{{Path: "g.txt", Hash: childByName(t, s, root, "g.txt")}}, entries)

	// nothing left after the last file goes, and empty directories are pruned
	removed, err = s.RemovePath(removed, "g.txt")
	require.NoError(t, err)
	require.Equal(t, empty, removed)

	// absent path
	same, err := s.RemovePath(root, "d/nope.txt")
	require.NoError(t, err)
	require.Equal(t, root, same)
}

func TestFlattenStorageOrder(t *testing.T) {
	s := NewObjectStore(memfs.New())
	root := buildTree(t, s, [][2]string{
		{"z.txt", "z"},
		{"dir/a.txt", "a"},
		{"b.txt", "b"},
		{"dir/sub/c.txt", "c"},
	})

	entries, err := s.Flatten(root)
	require.NoError(t, err)
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	require.Equal(t, []string{"z.txt", "dir/a.txt", "dir/sub/c.txt", "b.txt"}, paths)
}

func TestMaterializeRoundTrip(t *testing.T) {
	s := NewObjectStore(memfs.New())
	root := buildTree(t, s, [][2]string{
		{"a.txt", "A"},
		{"x/y/b.txt", "B"},
	})

	wt := osfs.New(t.TempDir())
	written, err := s.Materialize(wt, root)
	require.NoError(t, err)

	flat, err := s.Flatten(root)
	require.NoError(t, err)
	require.Equal(t, flat, written)

	data, err := util.ReadFile(wt, "x/y/b.txt")
	require.NoError(t, err)
	require.Equal(t, "B", string(data))

	// re-adding what is on disk reproduces the same tree
	rebuilt, err := s.EmptyTree()
	require.NoError(t, err)
	for _, e := range written {
		content, err := util.ReadFile(wt, e.Path)
		require.NoError(t, err)
		blob := writeBlob(t, s, filepath.Base(e.Path), string(content))
		require.Equal(t, e.Hash, blob)
		rebuilt, err = s.InsertPath(rebuilt, e.Path, blob)
		require.NoError(t, err)
	}
	require.Equal(t, root, rebuilt)
}

func TestLookupBlobByFullPath(t *testing.T) {
	s := NewObjectStore(memfs.New())
	root := buildTree(t, s, [][2]string{
		{"one/f.txt", "first"},
		{"two/f.txt", "second"},
	})

	blob, hash, ok, err := s.LookupBlob(root, "two/f.txt")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", string(blob.Content))
	require.Equal(t, blob.Hash(), hash)

	_, _, ok, err = s.LookupBlob(root, "f.txt")
	require.NoError(t, err)
	require.False(t, ok)

	// a directory is not a blob
	_, _, ok, err = s.LookupBlob(root, "one")
	require.NoError(t, err)
	require.False(t, ok)
}
