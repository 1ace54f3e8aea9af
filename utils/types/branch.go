package types

// DetachedBranch is the reserved pseudo-branch HEAD tracks when a bare commit is checked out.
const DetachedBranch = "~"

// Branch is a mutable named pointer to a commit.
type Branch struct {
	Name   string
	Commit Hash
}

// Hash changes every time the branch moves.
func (b *Branch) Hash() Hash {
	return sumOf([]byte(b.Name), b.Commit[:])
}

func (b *Branch) Detached() bool {
	return b.Name == DetachedBranch
}
