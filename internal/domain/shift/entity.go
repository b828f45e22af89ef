package shift

import "time"

// Definition is one entry of the shift catalog (master jam kerja). StartTime
// and EndTime are wall-clock values; their date parts are meaningless.
type Definition struct {
	Code            string
	Name            string
	StartTime       time.Time
	EndTime         time.Time
	BreakStart      *time.Time
	BreakEnd        *time.Time
	CrossesMidnight bool
	DurationHours   int
	Description     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SpansNextDay reports whether the shift's window end falls on the calendar
// day after its window start. A shift whose end time is numerically at or
// before its start time spans midnight even if the catalog flag was never set.
func (d Definition) SpansNextDay() bool {
	if d.CrossesMidnight {
		return true
	}
	end := d.EndTime.Hour()*3600 + d.EndTime.Minute()*60 + d.EndTime.Second()
	start := d.StartTime.Hour()*3600 + d.StartTime.Minute()*60 + d.StartTime.Second()
	return end <= start
}

// Source identifies which schedule-assignment source produced a resolution.
type Source string

const (
	SourceOverride        Source = "override"   // ad hoc per-date assignment (swap/extra shift)
	SourceRoster          Source = "roster"     // published monthly roster row
	SourceRecurring       Source = "recurring"  // personal weekday pattern
	SourceDepartment      Source = "department" // department default per weekday
	SourceEmployeeDefault Source = "default"    // legacy default code on the employee
	SourceNone            Source = ""
)

// WindowPolicy is the singleton attendance-window configuration. The
// three-hour early clock-in allowance is fixed and lives in the evaluator;
// everything here is administrator-tunable.
type WindowPolicy struct {
	// ClockInGraceHours bounds how long after the nominal shift end a
	// clock-in is still accepted.
	ClockInGraceHours int
	// ClockOutGraceHours bounds how long after the (possibly next-day)
	// shift end a clock-out is still accepted.
	ClockOutGraceHours int
	// EarlyArrivalCutoff and EarlyArrivalFloor are wall-clock boundaries for
	// the late-night rule: a request arriving at or after the cutoff, for an
	// employee whose next-day shift starts at or before the floor, is filed
	// under tomorrow's date.
	EarlyArrivalCutoff time.Time
	EarlyArrivalFloor  time.Time
	UpdatedAt          time.Time
}
