package attendance

import "time"

// Record is one attendance row. Date is the work day the record is filed
// under, which for a carried-over night shift is the day the shift started,
// not the day the clock-out happens. CrossesMidnight is copied from the
// resolved shift at clock-in time so later catalog edits cannot reclassify
// an open record.
type Record struct {
	ID                string
	NIK               string
	Date              time.Time
	ShiftCode         string
	Status            Status
	CrossesMidnight   bool
	ClockIn           *time.Time
	ClockOut          *time.Time
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	ClosedBySystem    bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Open reports whether the record is clocked in but not yet clocked out.
func (r Record) Open() bool {
	return r.ClockIn != nil && r.ClockOut == nil
}

// Status is the legacy single-letter attendance status code.
type Status string

const (
	StatusPresent Status = "H" // hadir
	StatusLeave   Status = "I" // izin
	StatusSick    Status = "S" // sakit
	StatusAbsent  Status = "A" // alpha
	StatusDayOff  Status = "L" // libur
)
