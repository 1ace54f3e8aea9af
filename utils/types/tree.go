package types

// Tree represents one directory level. Children are hashes of Blobs or nested Trees, in storage order.
type Tree struct {
	Name     string // directory name, empty for the root tree
	Children []Hash // child references
}

// Hash digests the directory name followed by every child hash in order.
func (t *Tree) Hash() Hash {
	parts := make([][]byte, 0, len(t.Children)+1)
	parts = append(parts, []byte(t.Name))
	for i := range t.Children {
		parts = append(parts, t.Children[i][:])
	}
	return sumOf(parts...)
}

// WithChildren returns a copy of the tree holding children. The receiver is left untouched.
func (t *Tree) WithChildren(children []Hash) *Tree {
	return &Tree{Name: t.Name, Children: children}
}
