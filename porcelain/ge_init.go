package porcelain

import (
	"fmt"

	"github.com/go-git/go-billy/v5"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/logging"
	"github.com/brickster241/mygit/utils/types"
)

// InitRepo creates the control directory in wt and records the initial commit on master.
func InitRepo(wt billy.Filesystem, opts ...Option) (*Repository, error) {
	// Check whether .mygit already exists
	ok, err := statExists(wt, constants.ControlDir)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, fmt.Errorf("repository in %s: %w", wt.Root(), plumbing.ErrAlreadyExists)
	}

	r, err := newRepository(wt, opts)
	if err != nil {
		return nil, err
	}

	// Create the necessary directories
	for _, p := range constants.Dir_paths {
		if err := r.dot.MkdirAll(p, constants.DefaultDirPerm); err != nil {
			return nil, plumbing.IOError("mkdir", p, err)
		}
	}
	if err := writeDefaultConfig(r.dot); err != nil {
		return nil, err
	}

	author, err := r.authorInfo()
	if err != nil {
		return nil, err
	}
	root, err := r.objects.EmptyTree()
	if err != nil {
		return nil, err
	}
	commit, err := r.objects.WriteCommit(&types.Commit{
		Message:   constants.InitialCommitMessage,
		Author:    author,
		Timestamp: r.now(),
		Tree:      root,
	})
	if err != nil {
		return nil, err
	}

	r.index = plumbing.NewIndex(r.dot)
	if err := r.index.Save(); err != nil {
		return nil, err
	}
	if err := r.moveHead(constants.MasterBranch, commit); err != nil {
		return nil, err
	}

	r.log.WithField(logging.CommitFieldKey, commit.String()).Debug("Initialized repository")
	return r, nil
}
