package porcelain

import (
	"github.com/brickster241/mygit/utils/types"
)

// LsTree lists every file of the commit rev resolves to, HEAD when rev is empty.
func (r *Repository) LsTree(rev string) ([]types.IndexEntry, error) {
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := r.ResolveRevision(rev)
	if err != nil {
		return nil, err
	}
	commit, err := r.objects.ReadCommit(hash)
	if err != nil {
		return nil, err
	}
	return r.objects.Flatten(commit.Tree)
}
