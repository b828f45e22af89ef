package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/k3guard/attendance-backend-go/internal/domain/attendance"
	"github.com/k3guard/attendance-backend-go/internal/domain/employee"
	"github.com/k3guard/attendance-backend-go/internal/domain/master/branch"
	domainshift "github.com/k3guard/attendance-backend-go/internal/domain/shift"
	shiftservice "github.com/k3guard/attendance-backend-go/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNIK = "200100234"

// ===== fakes =====

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

// fakeSources backs the resolver with a single recurring pattern.
type fakeSources struct {
	recurring map[string]string
}

func (f *fakeSources) DateOverride(context.Context, string, time.Time) (*string, error) {
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

type fakeAttendanceRepo struct {
	records map[string]*attendance.Record // nik|date
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Record)}
}

func key(nik string, date time.Time) string {
	return nik + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	k := key(record.NIK, record.Date)
	if _, exists := f.records[k]; exists {
		return attendance.Record{}, attendance.ErrAlreadyClockedIn
	}
	rec := record
	f.records[k] = &rec
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByNIKAndDate(_ context.Context, nik string, date time.Time) (*attendance.Record, error) {
	if rec, ok := f.records[key(nik, date)]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetOpenByDate(_ context.Context, nik string, date time.Time) (*attendance.Record, error) {
	if rec, ok := f.records[key(nik, date)]; ok && rec.Open() {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetOpenCrossMidnight(_ context.Context, nik string, date time.Time) (*attendance.Record, error) {
	if rec, ok := f.records[key(nik, date)]; ok && rec.Open() && rec.CrossesMidnight {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, nik string, year int, month time.Month) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.NIK == nik && rec.Date.Year() == year && rec.Date.Month() == month {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpen(_ context.Context) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.Open() {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) CloseRecord(_ context.Context, id string, clockOut time.Time, lat, lon *float64, closedBySystem bool) error {
	for _, rec := range f.records {
		if rec.ID == id && rec.ClockOut == nil {
			out := clockOut
			rec.ClockOut = &out
			rec.ClockOutLatitude = lat
			rec.ClockOutLongitude = lon
			rec.ClosedBySystem = closedBySystem
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

type fakeEmployees map[string]employee.Employee

func (f fakeEmployees) GetByNIK(_ context.Context, nik string) (employee.Employee, error) {
	emp, ok := f[nik]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeBranches map[string]branch.Branch

func (f fakeBranches) GetByCode(_ context.Context, code string) (branch.Branch, error) {
	b, ok := f[code]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

type fakePolicies struct {
	policy domainshift.WindowPolicy
}

func (f *fakePolicies) GetWindowPolicy(context.Context) (domainshift.WindowPolicy, error) {
	return f.policy, nil
}

func (f *fakePolicies) UpdateWindowPolicy(_ context.Context, policy domainshift.WindowPolicy) error {
	f.policy = policy
	return nil
}

// ===== fixtures =====

func clock(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func testPolicy() domainshift.WindowPolicy {
	return domainshift.WindowPolicy{
		ClockInGraceHours:  1,
		ClockOutGraceHours: 3,
		EarlyArrivalCutoff: clock(20, 0),
		EarlyArrivalFloor:  clock(6, 0),
	}
}

func authedContext(t *testing.T, nik string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"nik":  nik,
		"type": "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type env struct {
	svc        attendance.AttendanceService
	attendance *fakeAttendanceRepo
	employees  fakeEmployees
	branches   fakeBranches
}

func newEnv(emp employee.Employee, recurring map[string]string) *env {
	catalog := fakeCatalog{
		"PAGI": {Code: "PAGI", Name: "Shift Pagi", StartTime: clock(7, 0), EndTime: clock(15, 0), DurationHours: 8},
		"MLAM": {Code: "MLAM", Name: "Shift Malam", StartTime: clock(20, 0), EndTime: clock(6, 0), CrossesMidnight: true, DurationHours: 10},
	}
	attendanceRepo := newFakeAttendanceRepo()
	employees := fakeEmployees{emp.NIK: emp}
	branches := fakeBranches{
		"JKT": {Code: "JKT", Name: "Jakarta", Latitude: -6.2, Longitude: 106.816666, RadiusMeters: 100},
	}
	resolver := shiftservice.NewResolver(catalog, &fakeSources{recurring: recurring})

	return &env{
		svc:        NewAttendanceService(attendanceRepo, employees, branches, &fakePolicies{policy: testPolicy()}, resolver),
		attendance: attendanceRepo,
		employees:  employees,
		branches:   branches,
	}
}

func guard() employee.Employee {
	return employee.Employee{
		NIK:            testNIK,
		FullName:       "Budi Santoso",
		BranchCode:     "JKT",
		DepartmentCode: "SEC",
		ScheduleLocked: true,
		Active:         true,
		Role:           employee.RoleGuard,
	}
}

// Every Indonesian weekday name mapped to one code, so resolution succeeds
// for any test date.
func everyDay(code string) map[string]string {
	return map[string]string{
		"Senin": code, "Selasa": code, "Rabu": code, "Kamis": code,
		"Jumat": code, "Sabtu": code, "Minggu": code,
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 2, day, hour, minute, 0, 0, time.UTC)
}

// ===== clock-in =====

func TestClockIn_CreatesOpenRecord(t *testing.T) {
	e := newEnv(guard(), everyDay("PAGI"))
	ctx := authedContext(t, testNIK)

	resp, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 7, 5))

	require.NoError(t, err)
	assert.Equal(t, "2026-02-16", resp.Date)
	assert.Equal(t, "PAGI", resp.ShiftCode)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.False(t, resp.CrossesMidnight)
	require.NotNil(t, resp.ClockInTime)
	assert.Nil(t, resp.ClockOutTime)
}

func TestClockIn_NightShiftCapturesCrossFlag(t *testing.T) {
	e := newEnv(guard(), everyDay("MLAM"))
	ctx := authedContext(t, testNIK)

	resp, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 19, 45))

	require.NoError(t, err)
	assert.True(t, resp.CrossesMidnight)
}

func TestClockIn_TwiceIsRejected(t *testing.T) {
	e := newEnv(guard(), everyDay("PAGI"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 7, 0))
	require.NoError(t, err)

	_, err = e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 8, 0))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockIn_BlockedByOpenCarriedOverRecord(t *testing.T) {
	e := newEnv(guard(), everyDay("MLAM"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 20, 0))
	require.NoError(t, err)

	// The next evening the night-shift record from Feb 16 is still open.
	_, err = e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(17, 20, 0))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	open, err := e.attendance.ListOpen(context.Background())
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestClockIn_AfterClockOutIsRejected(t *testing.T) {
	e := newEnv(guard(), everyDay("PAGI"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 7, 0))
	require.NoError(t, err)
	_, err = e.svc.ClockOut(ctx, attendance.ClockOutRequest{}, at(16, 15, 30))
	require.NoError(t, err)

	_, err = e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 16, 0))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClockIn_LockedScheduleWithoutShiftFails(t *testing.T) {
	e := newEnv(guard(), nil)
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 7, 0))
	assert.ErrorIs(t, err, attendance.ErrNoScheduleFound)
}

func TestClockIn_UnlockedScheduleAcceptsExplicitShift(t *testing.T) {
	emp := guard()
	emp.ScheduleLocked = false
	e := newEnv(emp, nil)
	ctx := authedContext(t, testNIK)

	code := "PAGI"
	resp, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{ShiftCode: &code}, at(16, 3, 0))

	require.NoError(t, err)
	assert.Equal(t, "PAGI", resp.ShiftCode)
}

func TestClockIn_TooEarlyCarriesBoundary(t *testing.T) {
	e := newEnv(guard(), everyDay("PAGI"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 3, 0))

	require.ErrorIs(t, err, attendance.ErrTooEarly)
	var windowErr *attendance.WindowError
	require.True(t, errors.As(err, &windowErr))
	assert.Equal(t, at(16, 4, 0), windowErr.Boundary)
}

func TestClockIn_OutsideRadiusRejected(t *testing.T) {
	emp := guard()
	emp.LocationLocked = true
	e := newEnv(emp, everyDay("PAGI"))
	ctx := authedContext(t, testNIK)

	lat, lon := -6.3, 106.9 // ~15 km from the branch pin
	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{Latitude: &lat, Longitude: &lon}, at(16, 7, 0))
	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)
}

func TestClockIn_InsideRadiusAccepted(t *testing.T) {
	emp := guard()
	emp.LocationLocked = true
	e := newEnv(emp, everyDay("PAGI"))
	ctx := authedContext(t, testNIK)

	lat, lon := -6.2001, 106.8167
	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{Latitude: &lat, Longitude: &lon}, at(16, 7, 0))
	assert.NoError(t, err)
}

// ===== carry-over and clock-out =====

func TestFindOpenRecord_TodayBeatsYesterday(t *testing.T) {
	e := newEnv(guard(), everyDay("MLAM"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 20, 0))
	require.NoError(t, err)

	record, err := e.svc.FindOpenRecord(context.Background(), testNIK, at(16, 23, 0))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "2026-02-16", record.Date.Format("2006-01-02"))
}

func TestFindOpenRecord_CarryOverFromYesterday(t *testing.T) {
	e := newEnv(guard(), everyDay("MLAM"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 20, 0))
	require.NoError(t, err)

	// The next morning the record is not findable under Feb 17's own date,
	// only as the carry-over from Feb 16.
	open, err := e.attendance.GetOpenByDate(context.Background(), testNIK, at(17, 0, 0))
	require.NoError(t, err)
	assert.Nil(t, open)

	record, err := e.svc.FindOpenRecord(context.Background(), testNIK, at(17, 5, 0))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "2026-02-16", record.Date.Format("2006-01-02"))
	assert.True(t, record.CrossesMidnight)
}

func TestFindOpenRecord_NonCrossingShiftDoesNotCarryOver(t *testing.T) {
	e := newEnv(guard(), everyDay("PAGI"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 7, 0))
	require.NoError(t, err)

	record, err := e.svc.FindOpenRecord(context.Background(), testNIK, at(17, 5, 0))
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestClockOut_ClosesCarriedOverRecord(t *testing.T) {
	e := newEnv(guard(), everyDay("MLAM"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 20, 0))
	require.NoError(t, err)

	// 06:30 the next day: past the rolled window end, within the 3h grace.
	resp, err := e.svc.ClockOut(ctx, attendance.ClockOutRequest{}, at(17, 6, 30))

	require.NoError(t, err)
	assert.Equal(t, "2026-02-16", resp.Date)
	require.NotNil(t, resp.ClockOutTime)
}

func TestClockOut_RecordDateFromDatabaseIsUTCMidnight(t *testing.T) {
	e := newEnv(guard(), everyDay("MLAM"))
	ctx := authedContext(t, testNIK)
	wib := time.FixedZone("WIB", 7*3600)

	// Postgres date columns scan as UTC midnight regardless of the app
	// timezone. Seed the record the way the repository would return it.
	clockIn := time.Date(2026, 2, 16, 20, 0, 0, 0, wib)
	_, err := e.attendance.Create(context.Background(), attendance.Record{
		ID:              "rec-utc",
		NIK:             testNIK,
		Date:            time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC),
		ShiftCode:       "MLAM",
		Status:          attendance.StatusPresent,
		CrossesMidnight: true,
		ClockIn:         &clockIn,
	})
	require.NoError(t, err)

	// 06:30 local the next morning is inside the clock-out window even
	// though the stored date carries a different offset.
	resp, err := e.svc.ClockOut(ctx, attendance.ClockOutRequest{}, time.Date(2026, 2, 17, 6, 30, 0, 0, wib))

	require.NoError(t, err)
	assert.Equal(t, "2026-02-16", resp.Date)
}

func TestToday_UTCRecordDateForTodayIsNotCarryOver(t *testing.T) {
	e := newEnv(guard(), everyDay("MLAM"))
	ctx := authedContext(t, testNIK)
	wib := time.FixedZone("WIB", 7*3600)

	clockIn := time.Date(2026, 2, 16, 20, 0, 0, 0, wib)
	_, err := e.attendance.Create(context.Background(), attendance.Record{
		ID:              "rec-utc-today",
		NIK:             testNIK,
		Date:            time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC),
		ShiftCode:       "MLAM",
		Status:          attendance.StatusPresent,
		CrossesMidnight: true,
		ClockIn:         &clockIn,
	})
	require.NoError(t, err)

	resp, err := e.svc.Today(ctx, time.Date(2026, 2, 16, 21, 0, 0, 0, wib))

	require.NoError(t, err)
	assert.False(t, resp.CarryOver)
	assert.Equal(t, "2026-02-16", resp.Date)
}

func TestClockOut_BeforeShiftEndRejected(t *testing.T) {
	e := newEnv(guard(), everyDay("MLAM"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 20, 0))
	require.NoError(t, err)

	_, err = e.svc.ClockOut(ctx, attendance.ClockOutRequest{}, at(16, 23, 0))

	require.ErrorIs(t, err, attendance.ErrTooEarly)
	var windowErr *attendance.WindowError
	require.True(t, errors.As(err, &windowErr))
	assert.Equal(t, at(17, 6, 0), windowErr.Boundary)
}

func TestClockOut_WithoutOpenRecordRejected(t *testing.T) {
	e := newEnv(guard(), everyDay("PAGI"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockOut(ctx, attendance.ClockOutRequest{}, at(16, 15, 0))
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestClockOut_UnlockedScheduleSkipsWindow(t *testing.T) {
	emp := guard()
	emp.ScheduleLocked = false
	e := newEnv(emp, everyDay("PAGI"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 7, 0))
	require.NoError(t, err)

	// Mid-shift clock-out, allowed only because the schedule is unlocked.
	_, err = e.svc.ClockOut(ctx, attendance.ClockOutRequest{}, at(16, 11, 0))
	assert.NoError(t, err)
}

// ===== today view =====

func TestToday_ShowsResolvedShiftBeforeClockIn(t *testing.T) {
	e := newEnv(guard(), everyDay("PAGI"))
	ctx := authedContext(t, testNIK)

	resp, err := e.svc.Today(ctx, at(16, 6, 0))

	require.NoError(t, err)
	require.NotNil(t, resp.ShiftCode)
	assert.Equal(t, "PAGI", *resp.ShiftCode)
	assert.Equal(t, "recurring", resp.Source)
	assert.False(t, resp.ClockInDone)
}

func TestToday_CarryOverShowsYesterdayDate(t *testing.T) {
	e := newEnv(guard(), everyDay("MLAM"))
	ctx := authedContext(t, testNIK)

	_, err := e.svc.ClockIn(ctx, attendance.ClockInRequest{}, at(16, 20, 0))
	require.NoError(t, err)

	resp, err := e.svc.Today(ctx, at(17, 5, 0))

	require.NoError(t, err)
	assert.True(t, resp.CarryOver)
	assert.Equal(t, "2026-02-16", resp.Date)
	assert.True(t, resp.ClockInDone)
	assert.False(t, resp.ClockOutDone)
}
