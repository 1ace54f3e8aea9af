package types

// HeadInfo represents the state of .mygit/HEAD
type HeadInfo struct {
	Branch string // current branch, DetachedBranch when detached
	Commit Hash   // must equal the branch's commit
}

func (h HeadInfo) Detached() bool {
	return h.Branch == DetachedBranch
}
