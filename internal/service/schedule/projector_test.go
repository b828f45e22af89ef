package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/k3guard/attendance-backend-go/internal/domain/attendance"
	"github.com/k3guard/attendance-backend-go/internal/domain/employee"
	"github.com/k3guard/attendance-backend-go/internal/domain/leave"
	domainshift "github.com/k3guard/attendance-backend-go/internal/domain/shift"
	shiftservice "github.com/k3guard/attendance-backend-go/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNIK = "200100234"

type fakeCatalog map[string]domainshift.Definition

func (f fakeCatalog) GetByCode(_ context.Context, code string) (domainshift.Definition, error) {
	def, ok := f[code]
	if !ok {
		return domainshift.Definition{}, domainshift.ErrShiftNotFound
	}
	return def, nil
}

func (f fakeCatalog) List(_ context.Context) ([]domainshift.Definition, error) {
	out := make([]domainshift.Definition, 0, len(f))
	for _, def := range f {
		out = append(out, def)
	}
	return out, nil
}

type fakeSources struct {
	overrides map[string]string
	recurring map[string]string
}

func (f *fakeSources) DateOverride(_ context.Context, _ string, date time.Time) (*string, error) {
	if code, ok := f.overrides[date.Format("2006-01-02")]; ok {
		return &code, nil
	}
	return nil, nil
}
func (f *fakeSources) RosterShift(context.Context, string, time.Time) (*string, error) {
	return nil, nil
}
func (f *fakeSources) HasRosterInMonth(context.Context, string, int, time.Month) (bool, error) {
	return false, nil
}
func (f *fakeSources) RecurringShift(_ context.Context, _ string, weekday string) (*string, error) {
	if code, ok := f.recurring[weekday]; ok {
		return &code, nil
	}
	return nil, nil
}
func (f *fakeSources) HasRecurring(context.Context, string) (bool, error) {
	return len(f.recurring) > 0, nil
}
func (f *fakeSources) DepartmentShift(context.Context, string, string, string) (*string, error) {
	return nil, nil
}
func (f *fakeSources) HasDepartmentSchedule(context.Context, string, string) (bool, error) {
	return false, nil
}

type fakeAttendance map[string]attendance.Record // date string

func (f fakeAttendance) Create(_ context.Context, r attendance.Record) (attendance.Record, error) {
	return r, nil
}
func (f fakeAttendance) GetByNIKAndDate(_ context.Context, _ string, date time.Time) (*attendance.Record, error) {
	if rec, ok := f[date.Format("2006-01-02")]; ok {
		return &rec, nil
	}
	return nil, nil
}
func (f fakeAttendance) GetOpenByDate(context.Context, string, time.Time) (*attendance.Record, error) {
	return nil, nil
}
func (f fakeAttendance) GetOpenCrossMidnight(context.Context, string, time.Time) (*attendance.Record, error) {
	return nil, nil
}
func (f fakeAttendance) ListByMonth(_ context.Context, _ string, year int, month time.Month) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f {
		if rec.Date.Year() == year && rec.Date.Month() == month {
			out = append(out, rec)
		}
	}
	return out, nil
}
func (f fakeAttendance) ListOpen(context.Context) ([]attendance.Record, error) {
	return nil, nil
}
func (f fakeAttendance) CloseRecord(context.Context, string, time.Time, *float64, *float64, bool) error {
	return nil
}

type fakeLeaves []leave.Leave

func (f fakeLeaves) ListOverlapping(_ context.Context, _ string, from, to time.Time) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f {
		if !l.StartDate.After(to) && !l.EndDate.Before(from) {
			out = append(out, l)
		}
	}
	return out, nil
}

func clock(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func ts(day, hour, minute int) time.Time {
	return time.Date(2026, 2, day, hour, minute, 0, 0, time.UTC)
}

func testEmployee() employee.Employee {
	return employee.Employee{
		NIK:            testNIK,
		FullName:       "Budi Santoso",
		BranchCode:     "JKT",
		DepartmentCode: "SEC",
		ScheduleLocked: true,
		Active:         true,
	}
}

func newProjector(sources *fakeSources, records fakeAttendance, leaves fakeLeaves) *Projector {
	catalog := fakeCatalog{
		"PAGI": {Code: "PAGI", Name: "Shift Pagi", StartTime: clock(7, 0), EndTime: clock(15, 0), DurationHours: 8},
		"SORE": {Code: "SORE", Name: "Shift Sore", StartTime: clock(15, 0), EndTime: clock(23, 0), DurationHours: 8},
	}
	resolver := shiftservice.NewResolver(catalog, sources)
	return NewProjector(resolver, records, leaves)
}

func weekdays(code string) map[string]string {
	return map[string]string{
		"Senin": code, "Selasa": code, "Rabu": code, "Kamis": code, "Jumat": code,
	}
}

func TestProjectMonth_CoversEveryDay(t *testing.T) {
	p := newProjector(&fakeSources{recurring: weekdays("PAGI")}, fakeAttendance{}, nil)

	view, err := p.ProjectMonth(context.Background(), testEmployee(), 2026, time.February, time.UTC)

	require.NoError(t, err)
	assert.Len(t, view.Days, 28)
	assert.Equal(t, "2026-02-01", view.Days[0].Date)
	assert.Equal(t, "2026-02-28", view.Days[27].Date)
}

func TestProjectMonth_WeekendIsDayOff(t *testing.T) {
	p := newProjector(&fakeSources{recurring: weekdays("PAGI")}, fakeAttendance{}, nil)

	view, err := p.ProjectMonth(context.Background(), testEmployee(), 2026, time.February, time.UTC)

	require.NoError(t, err)
	// 2026-02-01 is a Sunday.
	sunday := view.Days[0]
	assert.Equal(t, "Minggu", sunday.Weekday)
	assert.Nil(t, sunday.ShiftCode)
	assert.Equal(t, "L", sunday.Status)

	monday := view.Days[1]
	assert.Equal(t, "Senin", monday.Weekday)
	require.NotNil(t, monday.ShiftCode)
	assert.Equal(t, "PAGI", *monday.ShiftCode)
	assert.Equal(t, "07:00", *monday.ScheduledIn)
	assert.Equal(t, "15:00", *monday.ScheduledOut)
	assert.Equal(t, "recurring", monday.Source)
}

func TestProjectMonth_OverrideDayShowsActualTimes(t *testing.T) {
	// A swapped shift (override) on a day the guard actually worked:
	// shift_code must come from the override, the times from the record.
	clockIn := ts(10, 15, 2)
	clockOut := ts(10, 23, 10)
	records := fakeAttendance{
		"2026-02-10": {
			ID:        "rec-1",
			NIK:       testNIK,
			Date:      ts(10, 0, 0),
			ShiftCode: "SORE",
			Status:    attendance.StatusPresent,
			ClockIn:   &clockIn,
			ClockOut:  &clockOut,
		},
	}
	sources := &fakeSources{
		overrides: map[string]string{"2026-02-10": "SORE"},
		recurring: weekdays("PAGI"),
	}
	p := newProjector(sources, records, nil)

	view, err := p.ProjectMonth(context.Background(), testEmployee(), 2026, time.February, time.UTC)

	require.NoError(t, err)
	day := view.Days[9]
	require.NotNil(t, day.ShiftCode)
	assert.Equal(t, "SORE", *day.ShiftCode)
	assert.Equal(t, "override", day.Source)
	assert.Equal(t, "15:00", *day.ScheduledIn)
	assert.Equal(t, "2026-02-10 15:02:00", *day.ActualIn)
	assert.Equal(t, "2026-02-10 23:10:00", *day.ActualOut)
	assert.Equal(t, "H", day.Status)
}

func TestProjectMonth_AttendanceBeatsLeave(t *testing.T) {
	clockIn := ts(11, 7, 0)
	records := fakeAttendance{
		"2026-02-11": {
			ID:        "rec-2",
			NIK:       testNIK,
			Date:      ts(11, 0, 0),
			ShiftCode: "PAGI",
			Status:    attendance.StatusPresent,
			ClockIn:   &clockIn,
		},
	}
	leaves := fakeLeaves{{
		ID:        "leave-1",
		NIK:       testNIK,
		Type:      leave.TypeSick,
		StartDate: ts(11, 0, 0),
		EndDate:   ts(13, 0, 0),
	}}
	p := newProjector(&fakeSources{recurring: weekdays("PAGI")}, records, leaves)

	view, err := p.ProjectMonth(context.Background(), testEmployee(), 2026, time.February, time.UTC)

	require.NoError(t, err)
	// The recorded day shows the record's status, the remaining leave days
	// show the leave letter.
	assert.Equal(t, "H", view.Days[10].Status)
	assert.Equal(t, "S", view.Days[11].Status)
	assert.Equal(t, "S", view.Days[12].Status)
}

func TestProjectMonth_ScheduledDayWithoutRecordIsAbsent(t *testing.T) {
	p := newProjector(&fakeSources{recurring: weekdays("PAGI")}, fakeAttendance{}, nil)

	view, err := p.ProjectMonth(context.Background(), testEmployee(), 2026, time.February, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, "A", view.Days[1].Status)
}
