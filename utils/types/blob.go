package types

// Blob is immutable file content together with the file's base name.
type Blob struct {
	Name    string // base name of the file, not its path
	Content []byte // raw file bytes
}

// Hash digests content followed by name, so the same bytes under another name are a different blob.
func (b *Blob) Hash() Hash {
	return sumOf(b.Content, []byte(b.Name))
}
