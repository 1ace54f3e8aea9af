package plumbing

import (
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

// WriteTree stores a tree as "<name>\0" followed by the raw 20-byte hash of every child.
func (s *ObjectStore) WriteTree(tree *types.Tree) (types.Hash, error) {
	var content bytes.Buffer
	content.WriteString(tree.Name)
	content.WriteByte(0)
	for _, child := range tree.Children {
		content.Write(child[:])
	}

	hash := tree.Hash()
	if err := s.WriteObject(types.TreeObject, hash, content.Bytes()); err != nil {
		return types.ZeroHash, err
	}
	return hash, nil
}

func (s *ObjectStore) ReadTree(hash types.Hash) (*types.Tree, error) {
	payload, err := s.readTyped(hash, types.TreeObject)
	if err != nil {
		return nil, err
	}
	return decodeTree(hash, payload)
}

func decodeTree(hash types.Hash, payload []byte) (*types.Tree, error) {
	nullIdx := bytes.IndexByte(payload, 0)
	if nullIdx == -1 {
		return nil, fmt.Errorf("tree %s: %w: missing name", hash, ErrDeserialization)
	}
	raw := payload[nullIdx+1:]
	if len(raw)%types.HashSize != 0 {
		return nil, fmt.Errorf("tree %s: %w: truncated child hash", hash, ErrDeserialization)
	}

	tree := &types.Tree{
		Name:     string(payload[:nullIdx]),
		Children: make([]types.Hash, 0, len(raw)/types.HashSize),
	}
	for i := 0; i < len(raw); i += types.HashSize {
		var child types.Hash
		copy(child[:], raw[i:i+types.HashSize])
		tree.Children = append(tree.Children, child)
	}
	return tree, nil
}

// EmptyTree writes the root tree with no children and returns its hash.
func (s *ObjectStore) EmptyTree() (types.Hash, error) {
	return s.WriteTree(&types.Tree{})
}

// childName returns the name and kind of a tree child. Blobs and trees both start with "<name>\0".
func (s *ObjectStore) childName(hash types.Hash) (string, types.ObjectType, error) {
	objType, payload, err := s.ReadObject(hash)
	if err != nil {
		return "", "", err
	}
	if objType == types.CommitObject {
		return "", "", fmt.Errorf("tree child %s is a commit: %w", hash, ErrDeserialization)
	}
	nullIdx := bytes.IndexByte(payload, 0)
	if nullIdx == -1 {
		return "", "", fmt.Errorf("%s %s: %w: missing name", objType, hash, ErrDeserialization)
	}
	return string(payload[:nullIdx]), objType, nil
}

// splitPath validates a slash separated repository path and returns its segments.
func splitPath(p string) ([]string, error) {
	cleaned := path.Clean(p)
	if p == "" || cleaned == "." || strings.HasPrefix(cleaned, "/") || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return nil, fmt.Errorf("path %q: %w", p, ErrInvalidOperation)
	}
	return strings.Split(cleaned, "/"), nil
}

// InsertPath returns the root of a tree holding blob at p. Only trees along p are rewritten;
// every sibling keeps its hash.
func (s *ObjectStore) InsertPath(root types.Hash, p string, blob types.Hash) (types.Hash, error) {
	parts, err := splitPath(p)
	if err != nil {
		return types.ZeroHash, err
	}
	tree, err := s.ReadTree(root)
	if err != nil {
		return types.ZeroHash, err
	}
	return s.insert(tree, parts, blob)
}

func (s *ObjectStore) insert(tree *types.Tree, parts []string, blob types.Hash) (types.Hash, error) {
	name := parts[0]
	children := make([]types.Hash, 0, len(tree.Children)+1)

	// Last segment: replace by name, or append
	if len(parts) == 1 {
		for _, child := range tree.Children {
			if child == blob {
				return tree.Hash(), nil
			}
			childName, _, err := s.childName(child)
			if err != nil {
				return types.ZeroHash, err
			}
			if childName == name {
				continue
			}
			children = append(children, child)
		}
		children = append(children, blob)
		return s.WriteTree(tree.WithChildren(children))
	}

	// Find or create the directory named by the first segment
	sub := &types.Tree{Name: name}
	subIdx := -1
	for _, child := range tree.Children {
		childName, kind, err := s.childName(child)
		if err != nil {
			return types.ZeroHash, err
		}
		if childName != name {
			children = append(children, child)
			continue
		}
		if kind == types.TreeObject && subIdx == -1 {
			sub, err = s.ReadTree(child)
			if err != nil {
				return types.ZeroHash, err
			}
			subIdx = len(children)
			children = append(children, child)
		}
		// a blob with the directory's name is replaced by the directory
	}

	subHash, err := s.insert(sub, parts[1:], blob)
	if err != nil {
		return types.ZeroHash, err
	}
	if subIdx == -1 {
		children = append(children, subHash)
	} else {
		children[subIdx] = subHash
	}
	return s.WriteTree(tree.WithChildren(children))
}

// RemovePath returns the root of a tree without the blob at p. Directories left empty are dropped.
// Removing a path that is not in the tree returns root unchanged.
func (s *ObjectStore) RemovePath(root types.Hash, p string) (types.Hash, error) {
	parts, err := splitPath(p)
	if err != nil {
		return types.ZeroHash, err
	}
	tree, err := s.ReadTree(root)
	if err != nil {
		return types.ZeroHash, err
	}
	newTree, changed, err := s.remove(tree, parts)
	if err != nil {
		return types.ZeroHash, err
	}
	if !changed {
		return root, nil
	}
	return s.WriteTree(newTree)
}

func (s *ObjectStore) remove(tree *types.Tree, parts []string) (*types.Tree, bool, error) {
	for i, child := range tree.Children {
		childName, kind, err := s.childName(child)
		if err != nil {
			return nil, false, err
		}
		if childName != parts[0] {
			continue
		}

		if len(parts) == 1 {
			if kind != types.BlobObject {
				continue
			}
			return tree.WithChildren(slices.Delete(slices.Clone(tree.Children), i, i+1)), true, nil
		}
		if kind != types.TreeObject {
			continue
		}

		sub, err := s.ReadTree(child)
		if err != nil {
			return nil, false, err
		}
		newSub, changed, err := s.remove(sub, parts[1:])
		if err != nil || !changed {
			return tree, false, err
		}
		if len(newSub.Children) == 0 {
			return tree.WithChildren(slices.Delete(slices.Clone(tree.Children), i, i+1)), true, nil
		}
		subHash, err := s.WriteTree(newSub)
		if err != nil {
			return nil, false, err
		}
		children := slices.Clone(tree.Children)
		children[i] = subHash
		return tree.WithChildren(children), true, nil
	}
	return tree, false, nil
}

// Flatten lists every blob under root with its repository-relative path, depth first in storage order.
func (s *ObjectStore) Flatten(root types.Hash) ([]types.IndexEntry, error) {
	tree, err := s.ReadTree(root)
	if err != nil {
		return nil, err
	}
	entries := []types.IndexEntry{}
	if err := s.flatten(tree, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *ObjectStore) flatten(tree *types.Tree, prefix string, entries *[]types.IndexEntry) error {
	for _, child := range tree.Children {
		objType, payload, err := s.ReadObject(child)
		if err != nil {
			return err
		}
		switch objType {
		case types.BlobObject:
			blob, err := decodeBlob(child, payload)
			if err != nil {
				return err
			}
			*entries = append(*entries, types.IndexEntry{Path: path.Join(prefix, blob.Name), Hash: child})
		case types.TreeObject:
			sub, err := decodeTree(child, payload)
			if err != nil {
				return err
			}
			if err := s.flatten(sub, path.Join(prefix, sub.Name), entries); err != nil {
				return err
			}
		default:
			return fmt.Errorf("tree child %s is a %s: %w", child, objType, ErrDeserialization)
		}
	}
	return nil
}

// Materialize writes every blob under root into wt, creating directories as needed,
// and returns the (path, hash) pairs written. On error it returns the pairs written so far.
func (s *ObjectStore) Materialize(wt billy.Filesystem, root types.Hash) ([]types.IndexEntry, error) {
	entries, err := s.Flatten(root)
	if err != nil {
		return nil, err
	}
	for i, e := range entries {
		blob, err := s.ReadBlob(e.Hash)
		if err != nil {
			return entries[:i], err
		}
		if dir := path.Dir(e.Path); dir != "." {
			if err := wt.MkdirAll(dir, constants.DefaultDirPerm); err != nil {
				return entries[:i], IOError("mkdir", dir, err)
			}
		}
		if err := util.WriteFile(wt, e.Path, blob.Content, constants.DefaultFilePerm); err != nil {
			return entries[:i], IOError("write", e.Path, err)
		}
	}
	return entries, nil
}

// LookupBlob resolves the blob stored at the full path p.
func (s *ObjectStore) LookupBlob(root types.Hash, p string) (*types.Blob, types.Hash, bool, error) {
	parts, err := splitPath(p)
	if err != nil {
		return nil, types.ZeroHash, false, err
	}

	current := root
	for depth, name := range parts {
		tree, err := s.ReadTree(current)
		if err != nil {
			return nil, types.ZeroHash, false, err
		}
		want := types.TreeObject
		if depth == len(parts)-1 {
			want = types.BlobObject
		}

		found := false
		for _, child := range tree.Children {
			childName, kind, err := s.childName(child)
			if err != nil {
				return nil, types.ZeroHash, false, err
			}
			if childName == name && kind == want {
				current, found = child, true
				break
			}
		}
		if !found {
			return nil, types.ZeroHash, false, nil
		}
	}

	blob, err := s.ReadBlob(current)
	if err != nil {
		return nil, types.ZeroHash, false, err
	}
	return blob, current, true, nil
}
