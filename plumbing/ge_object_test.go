package plumbing

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/brickster241/mygit/utils/types"
)

func writeBlob(t *testing.T, s *ObjectStore, name, content string) types.Hash {
	t.Helper()
	h, err := s.WriteBlob(&types.Blob{Name: name, Content: []byte(content)})
	require.NoError(t, err)
	return h
}

func TestBlobRoundTrip(t *testing.T) {
	fs := memfs.New()
	s := NewObjectStore(fs)

	h := writeBlob(t, s, "file.txt", "aaa")
	require.Equal(t, (&types.Blob{Name: "file.txt", Content: []byte("aaa")}).Hash(), h)

	// a second store has a cold cache and reads from disk
	blob, err := NewObjectStore(fs).ReadBlob(h)
	require.NoError(t, err)
	require.Equal(t, "file.txt", blob.Name)
	require.Equal(t, []byte("aaa"), blob.Content)

	ok, err := NewObjectStore(fs).Exists(h)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestReadObjectReturnsCopy(t *testing.T) {
	fs := memfs.New()
	s := NewObjectStore(fs)
	h := writeBlob(t, s, "file.txt", "aaa")

	for _, store := range []*ObjectStore{s, NewObjectStore(fs)} {
		blob, err := store.ReadBlob(h)
		require.NoError(t, err)
		copy(blob.Content, "zzz")
		_, payload, err := store.ReadObject(h)
		require.NoError(t, err)
		payload[0] = 'X'

		again, err := store.ReadBlob(h)
		require.NoError(t, err)
		require.Equal(t, "file.txt", again.Name)
		require.Equal(t, []byte("aaa"), again.Content)
	}
}

func TestWriteObjectIsIdempotent(t *testing.T) {
	fs := memfs.New()
	s := NewObjectStore(fs)

	h1 := writeBlob(t, s, "a.txt", "same")
	h2 := writeBlob(t, s, "a.txt", "same")
	require.Equal(t, h1, h2)

	infos, err := fs.ReadDir("objects")
	require.NoError(t, err)
	require.Len(t, infos, 1)
}

func TestReadObjectMissing(t *testing.T) {
	s := NewObjectStore(memfs.New())
	_, _, err := s.ReadObject(types.Hash{1})
	require.ErrorIs(t, err, ErrNotFound)

	ok, err := s.Exists(types.Hash{1})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadObjectCorrupt(t *testing.T) {
	fs := memfs.New()
	h := types.Hash{2}
	require.NoError(t, util.WriteFile(fs, objectPath(h), []byte("not zlib"), 0o644))

	_, _, err := NewObjectStore(fs).ReadObject(h)
	require.ErrorIs(t, err, ErrDeserialization)
}

func TestReadWrongType(t *testing.T) {
	s := NewObjectStore(memfs.New())
	h := writeBlob(t, s, "a.txt", "x")

	_, err := s.ReadTree(h)
	require.ErrorIs(t, err, ErrDeserialization)
	_, err = s.ReadCommit(h)
	require.ErrorIs(t, err, ErrDeserialization)
}
