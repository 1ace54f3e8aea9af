package porcelain

import (
	"fmt"
	"path"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/logging"
	"github.com/brickster241/mygit/utils/types"
)

// Merge records a two-parent commit whose tree is the union of HEAD and branch name. Paths
// present on both sides keep the HEAD version; file contents are never merged. The working
// tree and the index are rewritten to exactly the merged tree.
func (r *Repository) Merge(name string) (types.Hash, error) {
	other, ok := r.branches[name]
	if !ok || name == types.DetachedBranch {
		return types.ZeroHash, fmt.Errorf("merge: %s - not something we can merge: %w", name, plumbing.ErrRefNotFound)
	}
	if name == r.head.Branch {
		return types.ZeroHash, fmt.Errorf("cannot merge branch '%s' into itself: %w", name, plumbing.ErrInvalidOperation)
	}

	ours, err := r.objects.ReadCommit(r.head.Commit)
	if err != nil {
		return types.ZeroHash, err
	}
	theirs, err := r.objects.ReadCommit(other.Commit)
	if err != nil {
		return types.ZeroHash, err
	}
	merged, err := r.unionTrees(ours.Tree, theirs.Tree)
	if err != nil {
		return types.ZeroHash, err
	}

	// Fold the union into a fresh tree
	root, err := r.objects.EmptyTree()
	if err != nil {
		return types.ZeroHash, err
	}
	for _, e := range merged {
		if root, err = r.objects.InsertPath(root, e.Path, e.Hash); err != nil {
			return types.ZeroHash, err
		}
	}

	author, err := r.authorInfo()
	if err != nil {
		return types.ZeroHash, err
	}
	hash, err := r.objects.WriteCommit(&types.Commit{
		Message:   fmt.Sprintf("Merge branch '%s' into '%s'", name, r.head.Branch),
		Author:    author,
		Timestamp: r.now(),
		Parents:   []types.Hash{r.head.Commit, other.Commit},
		Tree:      root,
	})
	if err != nil {
		return types.ZeroHash, err
	}

	written, err := r.replaceWorkingTree(root)
	if err != nil {
		return types.ZeroHash, err
	}
	if err := r.moveHead(r.head.Branch, hash); err != nil {
		return types.ZeroHash, err
	}
	if err := r.resetIndex(written); err != nil {
		return types.ZeroHash, err
	}

	r.log.WithFields(logging.Fields{
		logging.BranchFieldKey: r.head.Branch,
		logging.CommitFieldKey: hash.String(),
	}).Debugf("Merged %s", name)
	return hash, nil
}

// unionTrees lists every path of ours, then the paths of theirs that fit beside them. A theirs
// path is dropped when ours has the same path, a file at one of its parent directories, or a
// directory where theirs has a file.
func (r *Repository) unionTrees(ours, theirs types.Hash) ([]types.IndexEntry, error) {
	oursEntries, err := r.objects.Flatten(ours)
	if err != nil {
		return nil, err
	}
	theirsEntries, err := r.objects.Flatten(theirs)
	if err != nil {
		return nil, err
	}

	files := make(map[string]struct{}, len(oursEntries))
	dirs := make(map[string]struct{})
	for _, e := range oursEntries {
		files[e.Path] = struct{}{}
		for dir := path.Dir(e.Path); dir != "."; dir = path.Dir(dir) {
			dirs[dir] = struct{}{}
		}
	}

	merged := oursEntries
	for _, e := range theirsEntries {
		if _, ok := files[e.Path]; ok {
			continue
		}
		if _, ok := dirs[e.Path]; ok {
			r.log.WithField(logging.PathFieldKey, e.Path).Debug("Kept directory over file")
			continue
		}
		if blocked := underFile(files, e.Path); blocked != "" {
			r.log.WithField(logging.PathFieldKey, e.Path).Debugf("Kept file %s over directory", blocked)
			continue
		}
		merged = append(merged, e)
	}
	return merged, nil
}

// underFile returns the first parent directory of p that is a file in files, or "".
func underFile(files map[string]struct{}, p string) string {
	for dir := path.Dir(p); dir != "."; dir = path.Dir(dir) {
		if _, ok := files[dir]; ok {
			return dir
		}
	}
	return ""
}
