package porcelain

import (
	"fmt"
	"path"

	"github.com/go-git/go-billy/v5/util"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/types"
)

// HashObject computes the blob hash of the file at p and, if write is set, stores the blob.
func (r *Repository) HashObject(p string, write bool) (types.Hash, error) {
	p, err := cleanPath(p)
	if err != nil {
		return types.ZeroHash, err
	}
	info, err := r.wt.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return types.ZeroHash, fmt.Errorf("cannot open '%s': %w", p, plumbing.ErrNotFound)
	}
	content, err := util.ReadFile(r.wt, p)
	if err != nil {
		return types.ZeroHash, plumbing.IOError("read", p, err)
	}

	blob := &types.Blob{Name: path.Base(p), Content: content}
	if !write {
		return blob.Hash(), nil
	}
	return r.objects.WriteBlob(blob)
}
