package plumbing

import (
	"errors"
	"io"
	"io/fs"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/brickster241/mygit/utils/constants"
)

// readFile reads name from fsys. Missing files keep fs.ErrNotExist in the chain.
func readFile(fsys billy.Basic, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// writeFileAtomic replaces name with data through a temp file and rename, so readers never see a partial file.
func writeFileAtomic(fsys billy.Filesystem, name string, data []byte) error {
	dir := path.Dir(name)
	if dir != "." {
		if err := fsys.MkdirAll(dir, constants.DefaultDirPerm); err != nil {
			return err
		}
	}
	tmp, err := util.TempFile(fsys, dir, "."+path.Base(name)+"-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return err
	}
	if err := fsys.Rename(tmpName, name); err != nil {
		_ = fsys.Remove(tmpName)
		return err
	}
	return nil
}

// exists reports whether name is present in fsys.
func exists(fsys billy.Basic, name string) (bool, error) {
	_, err := fsys.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
