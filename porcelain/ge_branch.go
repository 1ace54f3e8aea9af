package porcelain

import (
	"fmt"
	"sort"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/logging"
	"github.com/brickster241/mygit/utils/types"
)

// CreateBranch creates name at the HEAD commit and switches HEAD to it. The working tree and
// the index are left as they are, since the commit does not change.
func (r *Repository) CreateBranch(name string) error {
	if err := plumbing.ValidateBranchName(name); err != nil {
		return err
	}
	if _, ok := r.branches[name]; ok {
		return fmt.Errorf("a branch named '%s' already exists: %w", name, plumbing.ErrAlreadyExists)
	}
	return r.moveHead(name, r.head.Commit)
}

// RemoveBranch deletes name. The current branch and the detached branch cannot be removed;
// removing an unknown branch succeeds.
func (r *Repository) RemoveBranch(name string) error {
	if name == r.head.Branch {
		return fmt.Errorf("cannot delete branch '%s' checked out: %w", name, plumbing.ErrInvalidOperation)
	}
	if name == types.DetachedBranch {
		return fmt.Errorf("cannot delete the detached branch: %w", plumbing.ErrInvalidOperation)
	}
	if _, ok := r.branches[name]; !ok {
		return nil
	}
	if err := r.refs.DeleteBranch(name); err != nil {
		return err
	}
	delete(r.branches, name)

	r.log.WithField(logging.BranchFieldKey, name).Debug("Deleted branch")
	return nil
}

// ListBranches returns the sorted names of the named branches.
func (r *Repository) ListBranches() []string {
	names := make([]string, 0, len(r.branches))
	for name := range r.branches {
		if name == types.DetachedBranch {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
