package attendance

import (
	"github.com/k3guard/attendance-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	// ShiftCode lets an employee with an unlocked schedule and no resolvable
	// shift pick one explicitly. Ignored when the cascade resolves a shift.
	ShiftCode *string `json:"shift_code"`
}

func (r ClockInRequest) Validate() error {
	var errs validator.ValidationErrors
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be sent together"})
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	if r.ShiftCode != nil && validator.IsEmpty(*r.ShiftCode) {
		errs = append(errs, validator.ValidationError{Field: "shift_code", Message: "must not be blank when provided"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be sent together"})
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID              string  `json:"id"`
	NIK             string  `json:"nik"`
	Date            string  `json:"date"`
	ShiftCode       string  `json:"shift_code"`
	ShiftName       *string `json:"shift_name,omitempty"`
	Status          string  `json:"status"`
	CrossesMidnight bool    `json:"crosses_midnight"`
	ClockInTime     *string `json:"clock_in_time"`
	ClockOutTime    *string `json:"clock_out_time"`
}

// TodayResponse backs the mobile home screen: the shift that applies right
// now (today's resolution or yesterday's carry-over) plus the state of the
// clock-in/out buttons.
type TodayResponse struct {
	NIK            string  `json:"nik"`
	EmployeeName   string  `json:"employee_name"`
	Date           string  `json:"date"`
	ShiftCode      *string `json:"shift_code"`
	ShiftName      *string `json:"shift_name"`
	ShiftStart     *string `json:"shift_start"`
	ShiftEnd       *string `json:"shift_end"`
	Source         string  `json:"source"`
	CarryOver      bool    `json:"carry_over"`
	ClockInTime    *string `json:"clock_in_time"`
	ClockOutTime   *string `json:"clock_out_time"`
	ClockInDone    bool    `json:"clock_in_done"`
	ClockOutDone   bool    `json:"clock_out_done"`
	ScheduleLocked bool    `json:"schedule_locked"`
	LocationLocked bool    `json:"location_locked"`
}
