package shift

import (
	"time"

	"github.com/k3guard/attendance-backend-go/internal/domain/shift"
)

type Action string

const (
	ActionClockIn  Action = "clock_in"
	ActionClockOut Action = "clock_out"
)

type Reason string

const (
	ReasonTooEarly     Reason = "TOO_EARLY"
	ReasonWindowClosed Reason = "WINDOW_CLOSED"
)

// EarlyClockInAllowance is how long before the nominal shift start a
// clock-in is accepted. Fixed, not administrator-tunable.
const EarlyClockInAllowance = 3 * time.Hour

// Decision is the evaluator verdict. Boundary is the concrete instant the
// caller failed to meet, filled only on denial.
type Decision struct {
	Allowed     bool
	Reason      Reason
	Boundary    time.Time
	WindowStart time.Time
	WindowEnd   time.Time
}

// Window computes the concrete [start, end) instant range of a shift filed
// under the given work day. A midnight-crossing shift ends on the next
// calendar day.
func Window(def shift.Definition, date time.Time) (start, end time.Time) {
	start = combine(date, def.StartTime)
	end = combine(date, def.EndTime)
	if def.SpansNextDay() {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// EvaluateWindow decides whether an action is permitted at `now` for a shift
// filed under `date`. Windowing only binds employees with a locked schedule;
// everyone else is always allowed.
//
// Boundaries are inclusive up to the limit and exclusive at it: the action
// is still allowed one second before `end + grace` and denied at exactly
// that instant.
func EvaluateWindow(def shift.Definition, date time.Time, action Action, now time.Time, policy shift.WindowPolicy, scheduleLocked bool) Decision {
	start, end := Window(def, date)
	allowed := Decision{Allowed: true, WindowStart: start, WindowEnd: end}

	if !scheduleLocked {
		return allowed
	}

	switch action {
	case ActionClockIn:
		earliest := start.Add(-EarlyClockInAllowance)
		if now.Before(earliest) {
			return Decision{Reason: ReasonTooEarly, Boundary: earliest, WindowStart: start, WindowEnd: end}
		}
		latest := end.Add(time.Duration(policy.ClockInGraceHours) * time.Hour)
		if !now.Before(latest) {
			return Decision{Reason: ReasonWindowClosed, Boundary: latest, WindowStart: start, WindowEnd: end}
		}
	case ActionClockOut:
		// No early clock-out: the shift has to run to its nominal end.
		if now.Before(end) {
			return Decision{Reason: ReasonTooEarly, Boundary: end, WindowStart: start, WindowEnd: end}
		}
		latest := end.Add(time.Duration(policy.ClockOutGraceHours) * time.Hour)
		if !now.Before(latest) {
			return Decision{Reason: ReasonWindowClosed, Boundary: latest, WindowStart: start, WindowEnd: end}
		}
	}

	return allowed
}

// ClockOutDeadline is the last instant an open record can still be closed by
// its owner; past it the auto-close job takes over.
func ClockOutDeadline(def shift.Definition, date time.Time, policy shift.WindowPolicy) time.Time {
	_, end := Window(def, date)
	return end.Add(time.Duration(policy.ClockOutGraceHours) * time.Hour)
}

func combine(date time.Time, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location())
}
