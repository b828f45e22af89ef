package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The table
// carries a unique constraint on (nik, date); Create surfaces a violation as
// ErrAlreadyClockedIn, which makes the check-then-insert race harmless.
type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)

	// GetByNIKAndDate returns nil when no record exists for that work day.
	GetByNIKAndDate(ctx context.Context, nik string, date time.Time) (*Record, error)

	// GetOpenByDate returns the record for the given work day only if it is
	// still open (clock-in set, clock-out null); nil otherwise.
	GetOpenByDate(ctx context.Context, nik string, date time.Time) (*Record, error)

	// GetOpenCrossMidnight is GetOpenByDate restricted to records whose
	// crosses-midnight copy-flag is set. Used for carry-over lookups.
	GetOpenCrossMidnight(ctx context.Context, nik string, date time.Time) (*Record, error)

	// ListByMonth returns all records for the employee in the given month.
	ListByMonth(ctx context.Context, nik string, year int, month time.Month) ([]Record, error)

	// ListOpen returns every open record, oldest first. Backs the
	// auto-close job.
	ListOpen(ctx context.Context) ([]Record, error)

	// CloseRecord fills the clock-out fields of an open record.
	// closedBySystem marks records closed by the auto-close job rather than
	// by the employee.
	CloseRecord(ctx context.Context, id string, clockOut time.Time, latitude, longitude *float64, closedBySystem bool) error
}
