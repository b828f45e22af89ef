package response

import (
	"errors"
	"net/http"

	"github.com/k3guard/attendance-backend-go/internal/domain/attendance"
	"github.com/k3guard/attendance-backend-go/internal/domain/auth"
	"github.com/k3guard/attendance-backend-go/internal/domain/employee"
	"github.com/k3guard/attendance-backend-go/internal/domain/master/branch"
	"github.com/k3guard/attendance-backend-go/internal/domain/shift"
	"github.com/k3guard/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Window rejections carry
// the concrete boundary instant in the details so the client can show the
// user when the action becomes (or stopped being) possible.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var windowErr *attendance.WindowError
	if errors.As(err, &windowErr) {
		code := "TOO_EARLY"
		if errors.Is(windowErr.Err, attendance.ErrWindowClosed) {
			code = "WINDOW_CLOSED"
		}
		UnprocessableEntity(w, code, windowErr.Err.Error(), map[string]string{
			"boundary": windowErr.Boundary.Format("2006-01-02 15:04:05"),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid NIK or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is no longer active")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNoScheduleFound):
		UnprocessableEntity(w, "NO_SCHEDULE", err.Error(), nil)
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		UnprocessableEntity(w, "OUTSIDE_RADIUS", err.Error(), nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrPolicyNotConfigured):
		NotFound(w, "Attendance window policy not configured")
	case errors.Is(err, shift.ErrInvalidTimeFormat):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrInvalidGraceHours):
		BadRequest(w, err.Error(), nil)

	// Branch domain errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
