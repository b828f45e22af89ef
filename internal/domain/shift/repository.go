package shift

import (
	"context"
	"time"
)

// CatalogRepository reads the shift-definition catalog.
type CatalogRepository interface {
	// GetByCode returns ErrShiftNotFound when the code has no catalog entry.
	GetByCode(ctx context.Context, code string) (Definition, error)

	// List returns the whole catalog ordered by code.
	List(ctx context.Context) ([]Definition, error)
}

// ScheduleSourceRepository exposes the five overlapping schedule-assignment
// sources. Every lookup returns nil (not an error) when no row matches; the
// Has* variants back the resolver's cascade-suppression checks.
type ScheduleSourceRepository interface {
	// DateOverride is the ad hoc per-date assignment, the highest priority
	// source.
	DateOverride(ctx context.Context, nik string, date time.Time) (*string, error)

	// RosterShift is the published monthly roster row for an exact date.
	RosterShift(ctx context.Context, nik string, date time.Time) (*string, error)

	// HasRosterInMonth reports whether any roster row exists for the
	// employee anywhere in the given month.
	HasRosterInMonth(ctx context.Context, nik string, year int, month time.Month) (bool, error)

	// RecurringShift is the personal weekday pattern.
	RecurringShift(ctx context.Context, nik string, weekday string) (*string, error)

	// HasRecurring reports whether the employee has any weekday pattern row.
	HasRecurring(ctx context.Context, nik string) (bool, error)

	// DepartmentShift resolves the department default through the
	// department schedule-group key.
	DepartmentShift(ctx context.Context, branchCode, deptCode, weekday string) (*string, error)

	// HasDepartmentSchedule reports whether the (branch, department) pair
	// has a schedule group at all.
	HasDepartmentSchedule(ctx context.Context, branchCode, deptCode string) (bool, error)
}

// PolicyRepository reads and writes the singleton window policy.
type PolicyRepository interface {
	GetWindowPolicy(ctx context.Context) (WindowPolicy, error)
	UpdateWindowPolicy(ctx context.Context, policy WindowPolicy) error
}
