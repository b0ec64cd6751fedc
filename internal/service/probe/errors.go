package probe

import "errors"

var (
	ErrTargetNotFound = errors.New("probe target not found")
	ErrInvalidLimit   = errors.New("invalid history limit")
	ErrNoChecker      = errors.New("no checker for target")
)
