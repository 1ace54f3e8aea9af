package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

var (
	ErrNoRepository = errors.New("not a mygit repository (or any of the parent directories)")
	ErrOutsideRepo  = errors.New("path is outside repository")
)

// Sort based on keys
func SortedKeys(m map[string]types.StatusType) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FindRepoRoot returns the first directory, going up from dir, that contains the control directory.
func FindRepoRoot(dir string) (string, error) {
	fullPath, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		info, err := os.Stat(filepath.Join(fullPath, constants.ControlDir))
		if err == nil && info.IsDir() {
			return fullPath, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(fullPath)
		if parent == fullPath {
			return "", ErrNoRepository
		}
		fullPath = parent
	}
}

// RepoRelativePath turns a user supplied path (absolute, or relative to cwd) into the slash separated form stored in the index.
func RepoRelativePath(root, cwd, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	rel, err := filepath.Rel(root, filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideRepo, p)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideRepo, p)
	}
	if rel == constants.ControlDir || strings.HasPrefix(rel, constants.ControlDir+"/") {
		return "", fmt.Errorf("%w: %s is inside the control directory", ErrOutsideRepo, p)
	}
	return rel, nil
}
