package leave

import (
	"context"
	"time"
)

// LeaveRepository is read-only here; the approval workflow that writes these
// tables lives outside the attendance core.
type LeaveRepository interface {
	// ListOverlapping returns approved leaves whose [start, end] range
	// overlaps [from, to], ordered by start date.
	ListOverlapping(ctx context.Context, nik string, from, to time.Time) ([]Leave, error)
}
