package porcelain

import (
	"github.com/brickster241/mygit/utils/logging"
	"github.com/brickster241/mygit/utils/types"
)

// Commit folds the index into the HEAD tree and records it as a child of the HEAD commit.
// Records that differ from HEAD are inserted, HEAD paths without a record are removed. The
// current branch then advances and the index is reset to the new tree.
func (r *Repository) Commit(message string) (types.Hash, error) {
	parentTree, err := r.headTree()
	if err != nil {
		return types.ZeroHash, err
	}
	headEntries, err := r.objects.Flatten(parentTree)
	if err != nil {
		return types.ZeroHash, err
	}
	headMap := make(map[string]types.Hash, len(headEntries))
	for _, e := range headEntries {
		headMap[e.Path] = e.Hash
	}

	// Fold staged additions and modifications
	root := parentTree
	for _, e := range r.index.All() {
		if h, ok := headMap[e.Path]; ok && h == e.Hash {
			continue
		}
		if root, err = r.objects.InsertPath(root, e.Path, e.Hash); err != nil {
			return types.ZeroHash, err
		}
	}

	// Fold staged removals
	for _, e := range headEntries {
		if _, ok := r.index.Lookup(e.Path); ok {
			continue
		}
		if root, err = r.objects.RemovePath(root, e.Path); err != nil {
			return types.ZeroHash, err
		}
	}

	author, err := r.authorInfo()
	if err != nil {
		return types.ZeroHash, err
	}
	hash, err := r.objects.WriteCommit(&types.Commit{
		Message:   message,
		Author:    author,
		Timestamp: r.now(),
		Parents:   []types.Hash{r.head.Commit},
		Tree:      root,
	})
	if err != nil {
		return types.ZeroHash, err
	}
	entries, err := r.objects.Flatten(root)
	if err != nil {
		return types.ZeroHash, err
	}

	// Update branch ref, HEAD, then index
	if err := r.moveHead(r.head.Branch, hash); err != nil {
		return types.ZeroHash, err
	}
	if err := r.resetIndex(entries); err != nil {
		return types.ZeroHash, err
	}

	r.log.WithFields(logging.Fields{
		logging.BranchFieldKey: r.head.Branch,
		logging.CommitFieldKey: hash.String(),
	}).Debugf("Committed %d files", len(entries))
	return hash, nil
}
