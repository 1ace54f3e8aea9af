package porcelain

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5/util"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/logging"
	"github.com/brickster241/mygit/utils/types"
)

// cleanPath normalizes a repository relative path and rejects paths that leave the working tree
// or point into the control directory.
func cleanPath(p string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	switch {
	case cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") || path.IsAbs(cleaned):
		return "", fmt.Errorf("path %q is outside the repository: %w", p, plumbing.ErrInvalidOperation)
	case cleaned == constants.ControlDir || strings.HasPrefix(cleaned, constants.ControlDir+"/"):
		return "", fmt.Errorf("path %q is inside %s: %w", p, constants.ControlDir, plumbing.ErrInvalidOperation)
	}
	return cleaned, nil
}

// Add writes the file at p as a blob and stages it.
func (r *Repository) Add(p string) error {
	p, err := cleanPath(p)
	if err != nil {
		return err
	}

	info, err := r.wt.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("pathspec '%s' did not match any files: %w", p, plumbing.ErrNotFound)
	}
	content, err := util.ReadFile(r.wt, p)
	if err != nil {
		return plumbing.IOError("read", p, err)
	}

	hash, err := r.objects.WriteBlob(&types.Blob{Name: path.Base(p), Content: content})
	if err != nil {
		return err
	}
	r.index.Stage(p, hash)
	if err := r.index.Save(); err != nil {
		return err
	}

	r.log.WithField(logging.PathFieldKey, p).Debugf("Staged %s", hash.Short())
	return nil
}

// Remove drops p from the index. The working tree is not touched, and removing an unstaged path succeeds.
func (r *Repository) Remove(p string) error {
	p, err := cleanPath(p)
	if err != nil {
		return err
	}
	r.index.Unstage(p)
	if err := r.index.Save(); err != nil {
		return err
	}

	r.log.WithField(logging.PathFieldKey, p).Debug("Unstaged")
	return nil
}
