package plumbing

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Wrap with %w so errors.Is identifies the kind.
var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrRefNotFound       = errors.New("reference not found")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrRevisionNotFound  = errors.New("revision not found")
	ErrCorruptRepository = errors.New("corrupt repository")
	ErrIOFailure         = errors.New("i/o failure")
	ErrDeserialization   = errors.New("cannot decode object")

	ErrNotARepository = fmt.Errorf("not a mygit repository: %w", ErrNotFound)
	ErrLocked         = errors.New("repository is locked by another process")
)

// IOError tags a filesystem failure with ErrIOFailure while keeping the cause reachable.
func IOError(op, name string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIOFailure, op, name, err)
}
