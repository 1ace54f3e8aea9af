package plumbing

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

func TestBranchReadWriteDelete(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll(constants.BranchesDir, constants.DefaultDirPerm))
	refs := NewRefStore(fs)

	_, err := refs.ReadBranch("master")
	require.ErrorIs(t, err, ErrRefNotFound)

	require.NoError(t, refs.WriteBranch(&types.Branch{Name: "master", Commit: types.Hash{1}}))
	require.NoError(t, refs.WriteBranch(&types.Branch{Name: "dev", Commit: types.Hash{2}}))
	require.NoError(t, refs.WriteBranch(&types.Branch{Name: types.DetachedBranch, Commit: types.Hash{3}}))
	require.NoError(t, refs.WriteBranch(&types.Branch{Name: "master", Commit: types.Hash{4}}))

	b, err := refs.ReadBranch("master")
	require.NoError(t, err)
	require.Equal(t, types.Hash{4}, b.Commit)

	names, err := refs.ListBranches()
	require.NoError(t, err)
	require.Equal(t, []string{"dev", "master", types.DetachedBranch}, names)

	require.NoError(t, refs.DeleteBranch("dev"))
	require.NoError(t, refs.DeleteBranch("dev"))
	_, err = refs.ReadBranch("dev")
	require.ErrorIs(t, err, ErrRefNotFound)
}

func TestReadBranchCorrupt(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "branches/bad", []byte("zzz\n"), 0o644))
	_, err := NewRefStore(fs).ReadBranch("bad")
	require.ErrorIs(t, err, ErrCorruptRepository)
}

func TestHeadReadWrite(t *testing.T) {
	fs := memfs.New()
	refs := NewRefStore(fs)

	_, err := refs.ReadHead()
	require.ErrorIs(t, err, ErrCorruptRepository)

	head := types.HeadInfo{Branch: "master", Commit: types.Hash{7}}
	require.NoError(t, refs.WriteHead(head))
	got, err := refs.ReadHead()
	require.NoError(t, err)
	require.Equal(t, head, got)

	require.NoError(t, util.WriteFile(fs, constants.HeadFile, []byte("master\n"), 0o644))
	_, err = refs.ReadHead()
	require.ErrorIs(t, err, ErrCorruptRepository)
}

func TestValidateBranchName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"dev", true},
		{"feature-1", true},
		{"", false},
		{".", false},
		{"..", false},
		{".hidden", false},
		{types.DetachedBranch, false},
		{"a/b", false},
		{"has space", false},
		{"fix~1", false},
		{"fix^2", false},
		{"v1.0", true},
	}
	for _, tt := range tests {
		err := ValidateBranchName(tt.name)
		if tt.valid {
			require.NoError(t, err, tt.name)
		} else {
			require.ErrorIs(t, err, ErrInvalidOperation, tt.name)
		}
	}
}
