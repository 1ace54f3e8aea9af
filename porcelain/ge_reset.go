package porcelain

import (
	"github.com/brickster241/mygit/utils/logging"
)

// Reset moves the current branch to the commit ref resolves to, without switching branches, and
// overwrites the working tree and the index with that commit's tree.
func (r *Repository) Reset(ref string) error {
	target, err := r.ResolveRevision(ref)
	if err != nil {
		return err
	}
	commit, err := r.objects.ReadCommit(target)
	if err != nil {
		return err
	}
	if _, err := r.objects.Flatten(commit.Tree); err != nil {
		return err
	}

	written, err := r.replaceWorkingTree(commit.Tree)
	if err != nil {
		return err
	}
	if err := r.moveHead(r.head.Branch, target); err != nil {
		return err
	}
	if err := r.resetIndex(written); err != nil {
		return err
	}

	r.log.WithFields(logging.Fields{
		logging.BranchFieldKey: r.head.Branch,
		logging.CommitFieldKey: target.String(),
	}).Debug("Reset")
	return nil
}
