package attendance

import (
	"errors"
	"fmt"
	"time"
)

// Attendance domain errors
var (
	// Clock-in / clock-out errors
	ErrAlreadyClockedIn     = errors.New("you have already clocked in for this shift")
	ErrAlreadyClockedOut    = errors.New("you have already clocked out")
	ErrNotClockedIn         = errors.New("you have not clocked in yet")
	ErrNoScheduleFound      = errors.New("no work shift applies to you today")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed branch radius")

	// Window errors; always wrapped in a WindowError carrying the boundary
	ErrTooEarly     = errors.New("too early for this action")
	ErrWindowClosed = errors.New("the attendance window has closed")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)

// WindowError decorates a window rejection with the concrete boundary the
// caller needed to meet, so the user is never told a bare "denied".
type WindowError struct {
	Err      error
	Boundary time.Time
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s (boundary: %s)", e.Err.Error(), e.Boundary.Format("2006-01-02 15:04:05"))
}

func (e *WindowError) Unwrap() error {
	return e.Err
}
