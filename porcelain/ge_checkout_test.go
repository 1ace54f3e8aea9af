package porcelain

import (
	"path"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

func TestReset(t *testing.T) {
	r, wt := newTestRepo(t)
	c1 := commitFiles(t, r, wt, "c1", map[string]string{"file.txt": "aaa"})
	commitFiles(t, r, wt, "c2", map[string]string{"file.txt": "bbb", "extra/new.txt": "n"})

	require.NoError(t, r.Reset(c1.String()))
	require.Equal(t, "aaa", readFile(t, wt, "file.txt"))
	require.False(t, fileExists(t, wt, "extra/new.txt"))
	require.False(t, fileExists(t, wt, "extra"))
	require.Equal(t, constants.MasterBranch, r.CurrentBranch())
	require.Equal(t, c1, r.Head().Commit)
	require.Equal(t, []string{"file.txt"}, indexPaths(r))

	entries, err := r.Log()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "c1", entries[0].Commit.Message)

	// revision expressions resolve before the reset
	require.NoError(t, r.Reset("HEAD~1"))
	require.False(t, fileExists(t, wt, "file.txt"))
	require.Empty(t, r.Index())
}

func TestBranchIsolation(t *testing.T) {
	r, wt := newTestRepo(t)
	commitFiles(t, r, wt, "c1", map[string]string{"file1.txt": "one"})

	require.NoError(t, r.CreateBranch("dev"))
	require.Equal(t, "dev", r.CurrentBranch())
	commitFiles(t, r, wt, "c2", map[string]string{"file2.txt": "two"})

	require.NoError(t, r.Checkout(constants.MasterBranch))
	require.False(t, fileExists(t, wt, "file2.txt"))
	require.Equal(t, "one", readFile(t, wt, "file1.txt"))

	status, ok, err := r.Status()
	require.NoError(t, err)
	require.True(t, ok)
	require.NotContains(t, status.Files, "file2.txt")
	require.Equal(t, []string{"file1.txt"}, status.Bucket(types.CommittedStatus))
	require.Equal(t, []string{"file1.txt"}, indexPaths(r))

	require.NoError(t, r.Checkout("dev"))
	require.Equal(t, "two", readFile(t, wt, "file2.txt"))
}

func TestCheckoutPrunesDirectories(t *testing.T) {
	r, wt := newTestRepo(t)
	require.NoError(t, r.CreateBranch("dev"))
	commitFiles(t, r, wt, "nested", map[string]string{"a/b/c.txt": "c"})

	require.NoError(t, r.Checkout(constants.MasterBranch))
	require.False(t, fileExists(t, wt, "a"))

	// untracked files and their directories survive
	writeFile(t, wt, "keep/me.txt", "mine")
	require.NoError(t, r.Checkout("dev"))
	require.NoError(t, r.Checkout(constants.MasterBranch))
	require.Equal(t, "mine", readFile(t, wt, "keep/me.txt"))
}

func TestCheckoutDetached(t *testing.T) {
	r, wt := newTestRepo(t)
	c1 := commitFiles(t, r, wt, "c1", map[string]string{"f.txt": "1"})
	commitFiles(t, r, wt, "c2", map[string]string{"f.txt": "2"})

	require.NoError(t, r.Checkout(c1.String()))
	require.True(t, r.Head().Detached())
	require.Equal(t, c1, r.Head().Commit)
	require.Equal(t, "1", readFile(t, wt, "f.txt"))
	require.Equal(t, []string{constants.MasterBranch}, r.ListBranches())

	detached, err := r.refs.ReadBranch(types.DetachedBranch)
	require.NoError(t, err)
	require.Equal(t, c1, detached.Commit)

	status, ok, err := r.Status()
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, status)

	err = r.RemoveBranch(types.DetachedBranch)
	require.ErrorIs(t, err, plumbing.ErrInvalidOperation)

	// state survives a reopen
	reopened, err := OpenRepo(wt)
	require.NoError(t, err)
	require.True(t, reopened.Head().Detached())

	require.NoError(t, r.Checkout(constants.MasterBranch))
	require.False(t, r.Head().Detached())
	require.Equal(t, "2", readFile(t, wt, "f.txt"))
}

func TestCheckoutErrors(t *testing.T) {
	r, wt := newTestRepo(t)
	commitFiles(t, r, wt, "c1", map[string]string{"f.txt": "1"})
	before := r.Head()

	err := r.Checkout("nope")
	require.ErrorIs(t, err, plumbing.ErrRefNotFound)

	// an existing object that is not a commit
	blob := r.Index()[0].Hash
	err = r.Checkout(blob.String())
	require.ErrorIs(t, err, plumbing.ErrRefNotFound)

	require.Equal(t, before, r.Head())
	require.Equal(t, "1", readFile(t, wt, "f.txt"))
}

func TestCheckoutBlockedByUntrackedFiles(t *testing.T) {
	r, wt := newTestRepo(t)
	commitFiles(t, r, wt, "mine", map[string]string{"mine.txt": "mine"})
	require.NoError(t, r.CreateBranch("dev"))
	commitFiles(t, r, wt, "dev", map[string]string{"blk/x.txt": "x", "later.txt": "later", "d": "file"})
	require.NoError(t, r.Checkout(constants.MasterBranch))
	before := r.Head()

	tests := []struct {
		name      string
		untracked string
		top       string
	}{
		{"file where a directory goes", "blk", "blk"},
		{"directory where a file goes", "d/u.txt", "d"},
	}
	for _, tt := range tests {
		writeFile(t, wt, tt.untracked, "untracked")

		err := r.Checkout("dev")
		require.ErrorIs(t, err, plumbing.ErrInvalidOperation, tt.name)
		require.Equal(t, before, r.Head(), tt.name)
		require.Equal(t, "mine", readFile(t, wt, "mine.txt"), tt.name)
		require.Equal(t, "untracked", readFile(t, wt, tt.untracked), tt.name)
		require.False(t, fileExists(t, wt, "later.txt"), tt.name)
		require.Equal(t, []string{"mine.txt"}, indexPaths(r), tt.name)

		reopened, err := OpenRepo(wt)
		require.NoError(t, err)
		status, ok, err := reopened.Status()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []string{"mine.txt"}, status.Bucket(types.CommittedStatus), tt.name)
		require.Equal(t, []string{tt.untracked}, status.Bucket(types.NotTrackedStatus), tt.name)

		require.NoError(t, util.RemoveAll(wt, tt.top))
	}

	// an empty directory blocks a file as well
	require.NoError(t, wt.MkdirAll("d", constants.DefaultDirPerm))
	err := r.Checkout("dev")
	require.ErrorIs(t, err, plumbing.ErrInvalidOperation)
	require.NoError(t, wt.Remove("d"))

	// with the way clear the same checkout succeeds
	require.NoError(t, r.Checkout("dev"))
	require.Equal(t, "x", readFile(t, wt, "blk/x.txt"))
	require.Equal(t, "file", readFile(t, wt, "d"))
}

func TestCheckoutRestoresHeadWhenWriteFails(t *testing.T) {
	r, wt := newTestRepo(t)
	commitFiles(t, r, wt, "mine", map[string]string{"mine.txt": "mine"})
	require.NoError(t, r.CreateBranch("dev"))
	commitFiles(t, r, wt, "dev", map[string]string{"later.txt": "later", "sub/gone.txt": "gone"})
	require.NoError(t, r.Checkout(constants.MasterBranch))

	// lose one blob of dev so writing its tree fails part way
	gone := (&types.Blob{Name: "gone.txt", Content: []byte("gone")}).Hash()
	require.NoError(t, wt.Remove(path.Join(constants.ControlDir, constants.ObjectsDir, gone.String())))

	reopened, err := OpenRepo(wt, WithClock(tickingClock()), WithAuthor(testAuthor))
	require.NoError(t, err)
	before := reopened.Head()

	err = reopened.Checkout("dev")
	require.ErrorIs(t, err, plumbing.ErrNotFound)
	require.Equal(t, before, reopened.Head())
	require.Equal(t, "mine", readFile(t, wt, "mine.txt"))
	require.False(t, fileExists(t, wt, "later.txt"))
	require.False(t, fileExists(t, wt, "sub"))
	require.Equal(t, []string{"mine.txt"}, indexPaths(reopened))

	status, ok, err := reopened.Status()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, status.IsClean())
	require.Equal(t, []string{"mine.txt"}, status.Bucket(types.CommittedStatus))
}

func TestCheckoutDiscardsLocalEdits(t *testing.T) {
	r, wt := newTestRepo(t)
	commitFiles(t, r, wt, "c1", map[string]string{"f.txt": "committed"})
	writeFile(t, wt, "f.txt", "edited")

	require.NoError(t, r.Checkout(constants.MasterBranch))
	require.Equal(t, "committed", readFile(t, wt, "f.txt"))
}

func TestCheckoutFile(t *testing.T) {
	r, wt := newTestRepo(t)
	commitFiles(t, r, wt, "c1", map[string]string{"dir/f.txt": "committed"})
	committed := r.Index()[0].Hash

	writeFile(t, wt, "dir/f.txt", "edited")
	require.NoError(t, r.Add("dir/f.txt"))
	require.NoError(t, r.CheckoutFile("dir/f.txt"))

	require.Equal(t, "committed", readFile(t, wt, "dir/f.txt"))
	h, ok := r.index.Lookup("dir/f.txt")
	require.True(t, ok)
	require.Equal(t, committed, h)

	// restores deleted files too
	require.NoError(t, wt.Remove("dir/f.txt"))
	require.NoError(t, r.CheckoutFile("dir/f.txt"))
	require.Equal(t, "committed", readFile(t, wt, "dir/f.txt"))

	err := r.CheckoutFile("f.txt")
	require.ErrorIs(t, err, plumbing.ErrNotFound)
}
