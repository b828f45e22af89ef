package shift

import "errors"

var (
	ErrShiftNotFound       = errors.New("shift definition not found")
	ErrPolicyNotConfigured = errors.New("attendance window policy is not configured")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM or HH:MM:SS")
	ErrInvalidGraceHours   = errors.New("grace hours must be between 0 and 24")
)
