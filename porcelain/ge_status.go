package porcelain

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/util"

	"github.com/brickster241/mygit/plumbing"
	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

// Status classifies every file of the working tree, the index and the HEAD tree into one bucket.
// It reports ok == false, and no status, while HEAD is detached.
func (r *Repository) Status() (*types.Status, bool, error) {
	if r.head.Detached() {
		return nil, false, nil
	}

	root, err := r.headTree()
	if err != nil {
		return nil, false, err
	}
	headEntries, err := r.objects.Flatten(root)
	if err != nil {
		return nil, false, err
	}
	headMap := make(map[string]types.Hash, len(headEntries))
	for _, e := range headEntries {
		headMap[e.Path] = e.Hash
	}

	status := types.NewStatus(r.head.Branch)

	// Walk the working directory to classify every file on disk
	err = util.Walk(r.wt, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return plumbing.IOError("walk", p, err)
		}
		rel := strings.TrimPrefix(filepath.ToSlash(p), "/")
		if rel == "" {
			return nil
		}

		// Skip the .mygit directory
		if info.IsDir() {
			if rel == constants.ControlDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		content, err := util.ReadFile(r.wt, rel)
		if err != nil {
			return plumbing.IOError("read", rel, err)
		}
		onDisk := (&types.Blob{Name: path.Base(rel), Content: content}).Hash()
		staged, inIndex := r.index.Lookup(rel)
		committed, inHead := headMap[rel]

		switch {
		case inIndex && onDisk != staged:
			status.Files[rel] = types.NotStagedStatus
		case inIndex && inHead && staged == committed:
			status.Files[rel] = types.CommittedStatus
		case inIndex:
			status.Files[rel] = types.StagedStatus
		case inHead:
			status.Files[rel] = types.NotStagedStatus
		default:
			status.Files[rel] = types.NotTrackedStatus
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	// Files known to the index or HEAD but gone from disk
	for _, e := range r.index.All() {
		if _, onDisk := status.Files[e.Path]; !onDisk {
			status.Files[e.Path] = types.MissingStatus
		}
	}
	for p := range headMap {
		if _, known := status.Files[p]; !known {
			status.Files[p] = types.DeletedStatus
		}
	}
	return status, true, nil
}
