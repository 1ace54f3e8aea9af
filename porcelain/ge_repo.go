package porcelain

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/go-git/go-billy/v5"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/logging"
	"github.com/brickster241/mygit/utils/types"
)

// Repository is the state of one repository, loaded once per command. It owns HEAD and the
// branch set for as long as the command runs.
type Repository struct {
	wt       billy.Filesystem // working tree root
	dot      billy.Filesystem // control directory
	objects  *plumbing.ObjectStore
	refs     *plumbing.RefStore
	index    *plumbing.Index
	head     types.HeadInfo
	branches map[string]*types.Branch
	author   *types.Author
	now      func() time.Time
	log      logging.Logger
}

type Option func(*Repository)

// WithClock sets the source of commit timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(r *Repository) {
		r.log = logger
	}
}

// WithAuthor overrides the author read from the repository config.
func WithAuthor(author types.Author) Option {
	return func(r *Repository) {
		r.author = &author
	}
}

func newRepository(wt billy.Filesystem, opts []Option) (*Repository, error) {
	dot, err := wt.Chroot(constants.ControlDir)
	if err != nil {
		return nil, plumbing.IOError("chroot", constants.ControlDir, err)
	}
	r := &Repository{
		wt:       wt,
		dot:      dot,
		objects:  plumbing.NewObjectStore(dot),
		refs:     plumbing.NewRefStore(dot),
		branches: make(map[string]*types.Branch),
		now:      time.Now,
		log:      logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func statExists(fsys billy.Basic, name string) (bool, error) {
	_, err := fsys.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, plumbing.IOError("stat", name, err)
}

// OpenRepo loads the repository whose working tree is wt.
func OpenRepo(wt billy.Filesystem, opts ...Option) (*Repository, error) {
	ok, err := statExists(wt, constants.ControlDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, plumbing.ErrNotARepository
	}

	r, err := newRepository(wt, opts)
	if err != nil {
		return nil, err
	}

	// Required layout
	for _, p := range constants.Dir_paths {
		ok, err := statExists(r.dot, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s missing: %w", path.Join(constants.ControlDir, p), plumbing.ErrCorruptRepository)
		}
	}

	names, err := r.refs.ListBranches()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		branch, err := r.refs.ReadBranch(name)
		if err != nil {
			return nil, err
		}
		r.branches[name] = branch
	}

	head, err := r.refs.ReadHead()
	if err != nil {
		return nil, err
	}
	branch, ok := r.branches[head.Branch]
	if !ok {
		return nil, fmt.Errorf("HEAD names unknown branch %q: %w", head.Branch, plumbing.ErrCorruptRepository)
	}
	if branch.Commit != head.Commit {
		r.log.WithFields(logging.Fields{
			logging.BranchFieldKey: head.Branch,
			logging.CommitFieldKey: branch.Commit.String(),
		}).Warnf("HEAD was at %s, following the branch", head.Commit.Short())
		head.Commit = branch.Commit
		if err := r.refs.WriteHead(head); err != nil {
			return nil, err
		}
	}
	r.head = head

	if r.index, err = plumbing.LoadIndex(r.dot); err != nil {
		return nil, err
	}
	return r, nil
}

// Head returns the current branch and commit.
func (r *Repository) Head() types.HeadInfo {
	return r.head
}

func (r *Repository) CurrentBranch() string {
	return r.head.Branch
}

// Index returns a copy of the staged records.
func (r *Repository) Index() []types.IndexEntry {
	return r.index.All()
}

// headTree returns the root tree of the HEAD commit.
func (r *Repository) headTree() (types.Hash, error) {
	commit, err := r.objects.ReadCommit(r.head.Commit)
	if err != nil {
		return types.ZeroHash, err
	}
	return commit.Tree, nil
}

// moveHead points branch at commit and makes it HEAD. Callers run it only once every fallible
// step that precedes it has succeeded.
func (r *Repository) moveHead(name string, commit types.Hash) error {
	branch := &types.Branch{Name: name, Commit: commit}
	if err := r.refs.WriteBranch(branch); err != nil {
		return err
	}
	r.branches[name] = branch

	head := types.HeadInfo{Branch: name, Commit: commit}
	if err := r.refs.WriteHead(head); err != nil {
		return err
	}
	r.head = head

	r.log.WithFields(logging.Fields{
		logging.BranchFieldKey: name,
		logging.CommitFieldKey: commit.String(),
	}).Debug("HEAD moved")
	return nil
}

// resetIndex makes the index equal to entries and saves it.
func (r *Repository) resetIndex(entries []types.IndexEntry) error {
	r.index.Replace(entries)
	return r.index.Save()
}
