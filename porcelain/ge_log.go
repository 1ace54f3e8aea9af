package porcelain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/types"
)

// Log returns the HEAD commit and every ancestor, newest first.
func (r *Repository) Log() ([]types.LogEntry, error) {
	return r.objects.Log(r.head.Commit)
}

// RelativeRevision returns the commit n first-parent steps behind HEAD.
func (r *Repository) RelativeRevision(n int) (types.Hash, error) {
	return r.objects.FirstParentAncestor(r.head.Commit, n)
}

// ResolveRevision resolves a commit-ish: HEAD, a branch name or a full commit hash, followed by
// any number of ~<n> (n-th first-parent ancestor) and ^<n> (n-th parent) suffixes.
func (r *Repository) ResolveRevision(expr string) (types.Hash, error) {
	// Check for <base>[(^~)<suffix>]+ pattern.
	idx := strings.IndexAny(expr, "^~")
	if idx == -1 {
		idx = len(expr)
	}
	base, rest := expr[:idx], expr[idx:]

	result, err := r.resolveBase(base)
	if err != nil {
		return types.ZeroHash, err
	}

	for rest != "" {
		sign := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, "^~")
		if end == -1 {
			end = len(rest)
		}
		numStr := rest[:end]
		rest = rest[end:]

		num := 1
		if numStr != "" {
			if num, err = strconv.Atoi(numStr); err != nil || num < 0 {
				return types.ZeroHash, fmt.Errorf("%q is not a valid suffix after %c in %q: %w", numStr, sign, expr, plumbing.ErrRevisionNotFound)
			}
		}

		switch sign {
		case '~':
			if result, err = r.objects.FirstParentAncestor(result, num); err != nil {
				return types.ZeroHash, fmt.Errorf("%s: %w", expr, err)
			}
		case '^':
			if num == 0 {
				continue
			}
			commit, err := r.objects.ReadCommit(result)
			if err != nil {
				return types.ZeroHash, err
			}
			if num > len(commit.Parents) {
				return types.ZeroHash, fmt.Errorf("%s: commit %s has %d parents: %w", expr, result.Short(), len(commit.Parents), plumbing.ErrRevisionNotFound)
			}
			result = commit.Parents[num-1]
		}
	}
	return result, nil
}

func (r *Repository) resolveBase(base string) (types.Hash, error) {
	if base == "HEAD" {
		return r.head.Commit, nil
	}
	if branch, ok := r.branches[base]; ok {
		return branch.Commit, nil
	}

	// Check if it is a commit object in .mygit/objects
	hash, err := types.ParseHash(base)
	if err != nil {
		return types.ZeroHash, fmt.Errorf("unknown revision %q: %w", base, plumbing.ErrRefNotFound)
	}
	if err := r.requireCommit(hash); err != nil {
		return types.ZeroHash, err
	}
	return hash, nil
}

// requireCommit fails with ErrRefNotFound unless hash names a stored commit.
func (r *Repository) requireCommit(hash types.Hash) error {
	ok, err := r.objects.Exists(hash)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no object %s: %w", hash, plumbing.ErrRefNotFound)
	}
	objType, _, err := r.objects.ReadObject(hash)
	if err != nil {
		return err
	}
	if objType != types.CommitObject {
		return fmt.Errorf("object %s is a %s, not a commit: %w", hash.Short(), objType, plumbing.ErrRefNotFound)
	}
	return nil
}
