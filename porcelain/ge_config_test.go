package porcelain

import (
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/require"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

func TestConfigGetSet(t *testing.T) {
	r, _ := newTestRepo(t)

	email, err := r.GetConfig("user.email")
	require.NoError(t, err)
	require.Equal(t, constants.DefaultUserEmail, email)

	require.NoError(t, r.SetConfig("user.email", "someone@example.com"))
	require.NoError(t, r.SetConfig("core.editor", "vi"))
	email, err = r.GetConfig("user.email")
	require.NoError(t, err)
	require.Equal(t, "someone@example.com", email)
	editor, err := r.GetConfig("core.editor")
	require.NoError(t, err)
	require.Equal(t, "vi", editor)

	_, err = r.GetConfig("core.missing")
	require.ErrorIs(t, err, plumbing.ErrNotFound)
	_, err = r.GetConfig("nodot")
	require.ErrorIs(t, err, plumbing.ErrInvalidOperation)
}

func TestCommitAuthorFromConfig(t *testing.T) {
	wt := osfs.New(t.TempDir())
	r, err := InitRepo(wt, WithClock(tickingClock()))
	require.NoError(t, err)
	require.NoError(t, r.SetConfig("user.name", "Config Name"))
	require.NoError(t, r.SetConfig("user.email", "config@example.com"))

	hash, err := r.Commit("empty")
	require.NoError(t, err)
	commit, err := r.objects.ReadCommit(hash)
	require.NoError(t, err)
	require.Equal(t, types.Author{Name: "Config Name", Email: "config@example.com"}, commit.Author)
}
