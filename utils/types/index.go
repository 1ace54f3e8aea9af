package types

// IndexEntry represents a single record in the staging area.
type IndexEntry struct {
	Path string // slash separated, relative to the repository root
	Hash Hash   // staged blob
}
