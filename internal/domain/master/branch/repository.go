package branch

import "context"

type BranchRepository interface {
	// GetByCode returns ErrBranchNotFound when no row matches and
	// ErrBranchNoLocation when the branch exists but its coordinates were
	// never configured.
	GetByCode(ctx context.Context, code string) (Branch, error)
}
