package branch

import "errors"

var (
	ErrBranchNotFound    = errors.New("branch not found")
	ErrBranchNoLocation  = errors.New("branch has no location configured")
)
