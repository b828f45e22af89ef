package schedule

import (
	"context"
	"time"

	"github.com/k3guard/attendance-backend-go/internal/domain/attendance"
	"github.com/k3guard/attendance-backend-go/internal/domain/employee"
	"github.com/k3guard/attendance-backend-go/internal/domain/leave"
	domainshift "github.com/k3guard/attendance-backend-go/internal/domain/shift"
	shiftservice "github.com/k3guard/attendance-backend-go/internal/service/shift"
)

// DayView is one calendar day of the monthly projection: the resolved shift,
// the attendance actually recorded, and the status letter the two add up to.
type DayView struct {
	Date         string  `json:"date"`
	Weekday      string  `json:"weekday"`
	ShiftCode    *string `json:"shift_code"`
	ShiftName    *string `json:"shift_name"`
	ScheduledIn  *string `json:"scheduled_in"`
	ScheduledOut *string `json:"scheduled_out"`
	Source       string  `json:"source"`
	ActualIn     *string `json:"actual_in"`
	ActualOut    *string `json:"actual_out"`
	Status       string  `json:"status"`
}

// MonthView is the full projection for one employee and month.
type MonthView struct {
	NIK   string    `json:"nik"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Days  []DayView `json:"days"`
}

type Projector struct {
	resolver    *shiftservice.Resolver
	attendances attendance.AttendanceRepository
	leaves      leave.LeaveRepository
}

func NewProjector(resolver *shiftservice.Resolver, attendances attendance.AttendanceRepository, leaves leave.LeaveRepository) *Projector {
	return &Projector{
		resolver:    resolver,
		attendances: attendances,
		leaves:      leaves,
	}
}

// ProjectMonth resolves every day of the month through the schedule cascade
// and merges in recorded attendance and approved leaves. Precedence per day:
// a recorded attendance row wins, then an approved leave, then the schedule
// alone (present-pending if the day has a shift, day off if it does not).
func (p *Projector) ProjectMonth(ctx context.Context, emp employee.Employee, year int, month time.Month, loc *time.Location) (MonthView, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	records, err := p.attendances.ListByMonth(ctx, emp.NIK, year, month)
	if err != nil {
		return MonthView{}, err
	}
	byDate := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byDate[rec.Date.Format("2006-01-02")] = rec
	}

	leaves, err := p.leaves.ListOverlapping(ctx, emp.NIK, first, last)
	if err != nil {
		return MonthView{}, err
	}

	view := MonthView{
		NIK:   emp.NIK,
		Year:  year,
		Month: int(month),
		Days:  make([]DayView, 0, last.Day()),
	}

	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		day := DayView{
			Date:    date.Format("2006-01-02"),
			Weekday: domainshift.WeekdayName(date),
		}

		res, err := p.resolver.Resolve(ctx, emp, date)
		if err != nil {
			return MonthView{}, err
		}
		if res.Found() {
			day.ShiftCode = &res.Shift.Code
			day.ShiftName = &res.Shift.Name
			day.ScheduledIn = clockString(res.Shift.StartTime)
			day.ScheduledOut = clockString(res.Shift.EndTime)
			day.Source = string(res.Source)
		}

		day.Status = p.statusFor(date, res, byDate, leaves)

		if rec, ok := byDate[day.Date]; ok {
			day.ActualIn = timePtrToString(rec.ClockIn)
			day.ActualOut = timePtrToString(rec.ClockOut)
			if day.ShiftCode == nil {
				// Recorded against a shift the cascade no longer resolves
				// (e.g. an unlocked employee's explicit pick).
				day.ShiftCode = &rec.ShiftCode
			}
		}

		view.Days = append(view.Days, day)
	}

	return view, nil
}

func (p *Projector) statusFor(date time.Time, res shiftservice.Resolution, byDate map[string]attendance.Record, leaves []leave.Leave) string {
	if rec, ok := byDate[date.Format("2006-01-02")]; ok {
		return string(rec.Status)
	}
	for _, l := range leaves {
		if l.Covers(date) {
			return leaveStatus(l.Type)
		}
	}
	if !res.Found() {
		return string(attendance.StatusDayOff)
	}
	return string(attendance.StatusAbsent)
}

func leaveStatus(t leave.Type) string {
	switch t {
	case leave.TypeSick:
		return string(attendance.StatusSick)
	case leave.TypeAnnual, leave.TypePermit, leave.TypeOfficial:
		return string(attendance.StatusLeave)
	default:
		return string(attendance.StatusLeave)
	}
}

func clockString(t time.Time) *string {
	s := t.Format("15:04")
	return &s
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04:05")
	return &s
}
