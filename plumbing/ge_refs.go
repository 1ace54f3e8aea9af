package plumbing

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/go-git/go-billy/v5"

	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

// RefStore persists branches and HEAD. Branches live under branches/<name>, outside the object space.
type RefStore struct {
	fs billy.Filesystem
}

func NewRefStore(fs billy.Filesystem) *RefStore {
	return &RefStore{fs: fs}
}

// ValidateBranchName rejects names that cannot be stored as a single file under branches/,
// the reserved detached name, and names holding the ~ and ^ revision operators.
func ValidateBranchName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("invalid branch name %q: %w", name, ErrInvalidOperation)
	case name == types.DetachedBranch:
		return fmt.Errorf("branch name %q is reserved: %w", name, ErrInvalidOperation)
	case strings.ContainsAny(name, "/~^"), strings.ContainsFunc(name, unicode.IsSpace), strings.HasPrefix(name, "."):
		return fmt.Errorf("invalid branch name %q: %w", name, ErrInvalidOperation)
	}
	return nil
}

func branchPath(name string) string {
	return path.Join(constants.BranchesDir, name)
}

// ReadBranch reads branches/<name>. A missing file is ErrRefNotFound.
func (r *RefStore) ReadBranch(name string) (*types.Branch, error) {
	if name == "" || strings.ContainsRune(name, '/') {
		return nil, fmt.Errorf("branch %q: %w", name, ErrRefNotFound)
	}
	data, err := readFile(r.fs, branchPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("branch %q: %w", name, ErrRefNotFound)
	}
	if err != nil {
		return nil, IOError("read", branchPath(name), err)
	}

	commit, err := types.ParseHash(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("branch %q: %w: %w", name, ErrCorruptRepository, err)
	}
	return &types.Branch{Name: name, Commit: commit}, nil
}

// WriteBranch overwrites branches/<name> with the branch's commit.
func (r *RefStore) WriteBranch(branch *types.Branch) error {
	filePath := branchPath(branch.Name)
	if err := writeFileAtomic(r.fs, filePath, []byte(branch.Commit.String()+"\n")); err != nil {
		return IOError("write", filePath, err)
	}
	return nil
}

// DeleteBranch removes branches/<name>. Deleting an absent branch is not an error.
func (r *RefStore) DeleteBranch(name string) error {
	err := r.fs.Remove(branchPath(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return IOError("remove", branchPath(name), err)
	}
	return nil
}

// ListBranches returns the sorted names of every stored branch, the detached branch included.
func (r *RefStore) ListBranches() ([]string, error) {
	infos, err := r.fs.ReadDir(constants.BranchesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("branches directory missing: %w", ErrCorruptRepository)
	}
	if err != nil {
		return nil, IOError("list", constants.BranchesDir, err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		// skip directories and leftover temp files
		if info.IsDir() || strings.HasPrefix(info.Name(), ".") {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ReadHead parses HEAD: the branch name line followed by the commit line.
func (r *RefStore) ReadHead() (types.HeadInfo, error) {
	data, err := readFile(r.fs, constants.HeadFile)
	if errors.Is(err, fs.ErrNotExist) {
		return types.HeadInfo{}, fmt.Errorf("HEAD missing: %w", ErrCorruptRepository)
	}
	if err != nil {
		return types.HeadInfo{}, IOError("read", constants.HeadFile, err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 || lines[0] == "" {
		return types.HeadInfo{}, fmt.Errorf("malformed HEAD: %w", ErrCorruptRepository)
	}
	commit, err := types.ParseHash(lines[1])
	if err != nil {
		return types.HeadInfo{}, fmt.Errorf("malformed HEAD: %w: %w", ErrCorruptRepository, err)
	}
	return types.HeadInfo{Branch: lines[0], Commit: commit}, nil
}

func (r *RefStore) WriteHead(head types.HeadInfo) error {
	content := fmt.Sprintf("%s\n%s\n", head.Branch, head.Commit)
	if err := writeFileAtomic(r.fs, constants.HeadFile, []byte(content)); err != nil {
		return IOError("write", constants.HeadFile, err)
	}
	return nil
}
