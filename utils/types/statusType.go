package types

import "sort"

type StatusType int

const (
	StagedStatus     StatusType = 0 // staged, differs from HEAD
	CommittedStatus  StatusType = 1 // staged copy equals HEAD
	NotStagedStatus  StatusType = 2 // modified on disk, not added
	NotTrackedStatus StatusType = 3 // unknown to HEAD and index
	DeletedStatus    StatusType = 4 // removal staged
	MissingStatus    StatusType = 5 // gone from disk, removal not staged
)

var statusNames = map[StatusType]string{
	StagedStatus:     "staged",
	CommittedStatus:  "committed",
	NotStagedStatus:  "not-staged",
	NotTrackedStatus: "not-tracked",
	DeletedStatus:    "deleted",
	MissingStatus:    "missing",
}

func (s StatusType) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Status is the three-way classification of the working tree. Files maps each path to exactly one bucket.
type Status struct {
	Branch string
	Files  map[string]StatusType
}

func NewStatus(branch string) *Status {
	return &Status{Branch: branch, Files: make(map[string]StatusType)}
}

// Bucket returns the sorted paths classified as st.
func (s *Status) Bucket(st StatusType) []string {
	paths := []string{}
	for p, t := range s.Files {
		if t == st {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// IsClean reports whether every file matches HEAD.
func (s *Status) IsClean() bool {
	for _, t := range s.Files {
		if t != CommittedStatus {
			return false
		}
	}
	return true
}
