package porcelain

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/go-multierror"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/logging"
	"github.com/brickster241/mygit/utils/types"
)

// Checkout switches to a branch, or detaches HEAD at a commit when ref is not a branch name.
// The working tree and the index end up mirroring the target commit. Uncommitted edits to
// tracked files are discarded.
func (r *Repository) Checkout(ref string) error {
	name, target, err := r.resolveCheckout(ref)
	if err != nil {
		return err
	}

	// Read the target before touching the working tree
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
	if err := r.moveHead(name, target); err != nil {
		return err
	}
	if err := r.resetIndex(written); err != nil {
		return err
	}

	r.log.WithFields(logging.Fields{
		logging.BranchFieldKey: name,
		logging.CommitFieldKey: target.String(),
	}).Debugf("Checked out %d files", len(written))
	return nil
}

// resolveCheckout returns the branch HEAD will track and its commit. Anything other than a branch
// name resolves to a commit on the detached branch.
func (r *Repository) resolveCheckout(ref string) (string, types.Hash, error) {
	if branch, ok := r.branches[ref]; ok && ref != types.DetachedBranch {
		return ref, branch.Commit, nil
	}
	target, err := r.ResolveRevision(ref)
	if err != nil {
		return "", types.ZeroHash, err
	}
	return types.DetachedBranch, target, nil
}

// replaceWorkingTree deletes every file of the HEAD tree from disk, then writes root in their
// place. It returns the (path, hash) pairs written. Nothing is deleted when an untracked file or
// directory would block root, and a failed write puts the HEAD tree back.
func (r *Repository) replaceWorkingTree(root types.Hash) ([]types.IndexEntry, error) {
	current, err := r.headTree()
	if err != nil {
		return nil, err
	}
	tracked, err := r.objects.Flatten(current)
	if err != nil {
		return nil, err
	}
	target, err := r.objects.Flatten(root)
	if err != nil {
		return nil, err
	}
	if err := r.checkPlacement(tracked, target); err != nil {
		return nil, err
	}

	if err := r.removeFiles(tracked); err != nil {
		return nil, err
	}
	written, err := r.objects.Materialize(r.wt, root)
	if err != nil {
		r.log.WithError(err).Warn("Restoring the HEAD tree after a failed write")
		if rerr := r.removeFiles(written); rerr != nil {
			err = multierror.Append(err, rerr)
		} else if _, rerr := r.objects.Materialize(r.wt, current); rerr != nil {
			err = multierror.Append(err, rerr)
		}
		return nil, err
	}
	return written, nil
}

// checkPlacement fails with ErrInvalidOperation when a file of target cannot be written once the
// tracked files are gone: a parent directory exists as an untracked file, or the path itself is a
// directory that holds untracked files or no tracked ones.
func (r *Repository) checkPlacement(tracked, target []types.IndexEntry) error {
	known := make(map[string]struct{}, len(tracked))
	for _, e := range tracked {
		known[e.Path] = struct{}{}
	}

	for _, e := range target {
		for dir := path.Dir(e.Path); dir != "."; dir = path.Dir(dir) {
			info, err := r.wt.Lstat(dir)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return plumbing.IOError("stat", dir, err)
			}
			if _, ok := known[dir]; !ok && !info.IsDir() {
				return fmt.Errorf("untracked file '%s' is in the way of '%s': %w", dir, e.Path, plumbing.ErrInvalidOperation)
			}
		}

		info, err := r.wt.Lstat(e.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return plumbing.IOError("stat", e.Path, err)
		}
		if !info.IsDir() {
			continue
		}
		trackedInside := 0
		err = util.Walk(r.wt, e.Path, func(p string, info fs.FileInfo, err error) error {
			if err != nil {
				return plumbing.IOError("walk", p, err)
			}
			if info.IsDir() {
				return nil
			}
			if _, ok := known[p]; !ok {
				return fmt.Errorf("untracked file '%s' is in the way of '%s': %w", p, e.Path, plumbing.ErrInvalidOperation)
			}
			trackedInside++
			return nil
		})
		if err != nil {
			return err
		}
		// only directories emptied by removing tracked files get pruned
		if trackedInside == 0 {
			return fmt.Errorf("untracked directory '%s' is in the way: %w", e.Path, plumbing.ErrInvalidOperation)
		}
	}
	return nil
}

// removeFiles deletes entries from the working tree and prunes the directories left empty.
func (r *Repository) removeFiles(entries []types.IndexEntry) error {
	var result *multierror.Error
	dirs := make(map[string]struct{})
	for _, e := range entries {
		if err := r.wt.Remove(e.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			result = multierror.Append(result, plumbing.IOError("remove", e.Path, err))
			continue
		}
		for dir := path.Dir(e.Path); dir != "."; dir = path.Dir(dir) {
			dirs[dir] = struct{}{}
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	r.pruneEmptyDirectories(dirs)
	return nil
}

// pruneEmptyDirectories removes the directories in dirs that are left empty, deepest first.
func (r *Repository) pruneEmptyDirectories(dirs map[string]struct{}) {
	sorted := make([]string, 0, len(dirs))
	for d := range dirs {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return strings.Count(sorted[i], "/") > strings.Count(sorted[j], "/")
	})

	for _, d := range sorted {
		infos, err := r.wt.ReadDir(d)
		if err != nil || len(infos) > 0 {
			continue
		}
		if err := r.wt.Remove(d); err != nil {
			r.log.WithError(err).WithField(logging.PathFieldKey, d).Debug("Could not prune directory")
		}
	}
}

// CheckoutFile restores p from the HEAD tree and drops any change staged for it.
func (r *Repository) CheckoutFile(p string) error {
	p, err := cleanPath(p)
	if err != nil {
		return err
	}
	root, err := r.headTree()
	if err != nil {
		return err
	}
	blob, hash, ok, err := r.objects.LookupBlob(root, p)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("pathspec '%s' is not in HEAD: %w", p, plumbing.ErrNotFound)
	}

	if dir := path.Dir(p); dir != "." {
		if err := r.wt.MkdirAll(dir, constants.DefaultDirPerm); err != nil {
			return plumbing.IOError("mkdir", dir, err)
		}
	}
	if err := util.WriteFile(r.wt, p, blob.Content, constants.DefaultFilePerm); err != nil {
		return plumbing.IOError("write", p, err)
	}
	r.index.Stage(p, hash)
	if err := r.index.Save(); err != nil {
		return err
	}

	r.log.WithField(logging.PathFieldKey, p).Debug("Restored from HEAD")
	return nil
}
