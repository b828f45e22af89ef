package attendance

import (
	"context"
	"time"
)

// AttendanceService defines the attendance operations exposed to handlers.
// Every method takes the caller's "now" explicitly; nothing below the handler
// layer reads the wall clock.
type AttendanceService interface {
	// ClockIn opens today's (or, late at night, tomorrow's) attendance
	// record after window and radius checks.
	ClockIn(ctx context.Context, req ClockInRequest, now time.Time) (RecordResponse, error)

	// ClockOut closes the open record found for today or carried over from
	// yesterday's midnight-crossing shift.
	ClockOut(ctx context.Context, req ClockOutRequest, now time.Time) (RecordResponse, error)

	// Today renders the current shift and record state for the home screen.
	Today(ctx context.Context, now time.Time) (TodayResponse, error)

	// FindOpenRecord locates the open record as of the given date: that
	// date's own open record first, else the previous day's open
	// midnight-crossing record.
	FindOpenRecord(ctx context.Context, nik string, asOf time.Time) (*Record, error)
}
