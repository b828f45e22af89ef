package shift

import (
	"time"

	"github.com/k3guard/attendance-backend-go/internal/pkg/validator"
)

type DefinitionResponse struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	BreakStart      *string `json:"break_start,omitempty"`
	BreakEnd        *string `json:"break_end,omitempty"`
	CrossesMidnight bool    `json:"crosses_midnight"`
	DurationHours   int     `json:"duration_hours"`
	Description     *string `json:"description,omitempty"`
}

func ToDefinitionResponse(def Definition) DefinitionResponse {
	resp := DefinitionResponse{
		Code:            def.Code,
		Name:            def.Name,
		StartTime:       def.StartTime.Format("15:04"),
		EndTime:         def.EndTime.Format("15:04"),
		CrossesMidnight: def.CrossesMidnight,
		DurationHours:   def.DurationHours,
		Description:     def.Description,
	}
	if def.BreakStart != nil {
		s := def.BreakStart.Format("15:04")
		resp.BreakStart = &s
	}
	if def.BreakEnd != nil {
		s := def.BreakEnd.Format("15:04")
		resp.BreakEnd = &s
	}
	return resp
}

type WindowPolicyResponse struct {
	ClockInGraceHours  int    `json:"clock_in_grace_hours"`
	ClockOutGraceHours int    `json:"clock_out_grace_hours"`
	EarlyArrivalCutoff string `json:"early_arrival_cutoff"`
	EarlyArrivalFloor  string `json:"early_arrival_floor"`
}

func ToWindowPolicyResponse(policy WindowPolicy) WindowPolicyResponse {
	return WindowPolicyResponse{
		ClockInGraceHours:  policy.ClockInGraceHours,
		ClockOutGraceHours: policy.ClockOutGraceHours,
		EarlyArrivalCutoff: policy.EarlyArrivalCutoff.Format("15:04"),
		EarlyArrivalFloor:  policy.EarlyArrivalFloor.Format("15:04"),
	}
}

type UpdateWindowPolicyRequest struct {
	ClockInGraceHours  int    `json:"clock_in_grace_hours"`
	ClockOutGraceHours int    `json:"clock_out_grace_hours"`
	EarlyArrivalCutoff string `json:"early_arrival_cutoff"`
	EarlyArrivalFloor  string `json:"early_arrival_floor"`
}

func (r UpdateWindowPolicyRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.ClockInGraceHours < 0 || r.ClockInGraceHours > 24 {
		errs = append(errs, validator.ValidationError{Field: "clock_in_grace_hours", Message: "must be between 0 and 24"})
	}
	if r.ClockOutGraceHours < 0 || r.ClockOutGraceHours > 24 {
		errs = append(errs, validator.ValidationError{Field: "clock_out_grace_hours", Message: "must be between 0 and 24"})
	}
	if _, ok := validator.IsValidClockTime(r.EarlyArrivalCutoff); !ok {
		errs = append(errs, validator.ValidationError{Field: "early_arrival_cutoff", Message: "must be a HH:MM clock time"})
	}
	if _, ok := validator.IsValidClockTime(r.EarlyArrivalFloor); !ok {
		errs = append(errs, validator.ValidationError{Field: "early_arrival_floor", Message: "must be a HH:MM clock time"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToPolicy converts a validated request into the entity. Call Validate first;
// a malformed clock time here becomes ErrInvalidTimeFormat.
func (r UpdateWindowPolicyRequest) ToPolicy() (WindowPolicy, error) {
	cutoff, err := parseClock(r.EarlyArrivalCutoff)
	if err != nil {
		return WindowPolicy{}, ErrInvalidTimeFormat
	}
	floor, err := parseClock(r.EarlyArrivalFloor)
	if err != nil {
		return WindowPolicy{}, ErrInvalidTimeFormat
	}
	return WindowPolicy{
		ClockInGraceHours:  r.ClockInGraceHours,
		ClockOutGraceHours: r.ClockOutGraceHours,
		EarlyArrivalCutoff: cutoff,
		EarlyArrivalFloor:  floor,
	}, nil
}

func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}
