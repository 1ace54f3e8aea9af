package porcelain

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/constants"
)

// LockRepo takes the exclusive repository lock of the working tree at root, failing fast with
// ErrLocked when another process holds it. Release it with Unlock.
func LockRepo(root string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(root, constants.ControlDir, constants.LockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, plumbing.IOError("lock", lock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", lock.Path(), plumbing.ErrLocked)
	}
	return lock, nil
}
