package types

type ObjectType string

const (
	BlobObject   ObjectType = "blob"
	TreeObject   ObjectType = "tree"
	CommitObject ObjectType = "commit"
)

// Valid reports whether t is one of the stored object kinds.
func (t ObjectType) Valid() bool {
	switch t {
	case BlobObject, TreeObject, CommitObject:
		return true
	}
	return false
}
