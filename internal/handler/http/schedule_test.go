package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/k3guard/attendance-backend-go/internal/domain/attendance"
	"github.com/k3guard/attendance-backend-go/internal/domain/employee"
	"github.com/k3guard/attendance-backend-go/internal/domain/leave"
	domainshift "github.com/k3guard/attendance-backend-go/internal/domain/shift"
	"github.com/k3guard/attendance-backend-go/internal/service/schedule"
	shiftservice "github.com/k3guard/attendance-backend-go/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog map[string]domainshift.Definition

func (s stubCatalog) GetByCode(_ context.Context, code string) (domainshift.Definition, error) {
	def, ok := s[code]
	if !ok {
		return domainshift.Definition{}, domainshift.ErrShiftNotFound
	}
	return def, nil
}

func (s stubCatalog) List(context.Context) ([]domainshift.Definition, error) { return nil, nil }

type stubSources struct {
	recurring map[string]string
}

func (s *stubSources) DateOverride(context.Context, string, time.Time) (*string, error) {
	return nil, nil
}
func (s *stubSources) RosterShift(context.Context, string, time.Time) (*string, error) {
	return nil, nil
}
func (s *stubSources) HasRosterInMonth(context.Context, string, int, time.Month) (bool, error) {
	return false, nil
}
func (s *stubSources) RecurringShift(_ context.Context, _ string, weekday string) (*string, error) {
	if code, ok := s.recurring[weekday]; ok {
		return &code, nil
	}
	return nil, nil
}
func (s *stubSources) HasRecurring(context.Context, string) (bool, error) {
	return len(s.recurring) > 0, nil
}
func (s *stubSources) DepartmentShift(context.Context, string, string, string) (*string, error) {
	return nil, nil
}
func (s *stubSources) HasDepartmentSchedule(context.Context, string, string) (bool, error) {
	return false, nil
}

type stubAttendances struct{}

func (stubAttendances) Create(_ context.Context, r attendance.Record) (attendance.Record, error) {
	return r, nil
}
func (stubAttendances) GetByNIKAndDate(context.Context, string, time.Time) (*attendance.Record, error) {
	return nil, nil
}
func (stubAttendances) GetOpenByDate(context.Context, string, time.Time) (*attendance.Record, error) {
	return nil, nil
}
func (stubAttendances) GetOpenCrossMidnight(context.Context, string, time.Time) (*attendance.Record, error) {
	return nil, nil
}
func (stubAttendances) ListByMonth(context.Context, string, int, time.Month) ([]attendance.Record, error) {
	return nil, nil
}
func (stubAttendances) ListOpen(context.Context) ([]attendance.Record, error) { return nil, nil }
func (stubAttendances) CloseRecord(context.Context, string, time.Time, *float64, *float64, bool) error {
	return nil
}

type stubLeaves struct{}

func (stubLeaves) ListOverlapping(context.Context, string, time.Time, time.Time) ([]leave.Leave, error) {
	return nil, nil
}

type stubEmployees map[string]employee.Employee

func (s stubEmployees) GetByNIK(_ context.Context, nik string) (employee.Employee, error) {
	emp, ok := s[nik]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func scheduleTestHandler(t *testing.T) ScheduleHandler {
	t.Helper()
	catalog := stubCatalog{
		"PAGI": {Code: "PAGI", Name: "Shift Pagi",
			StartTime: time.Date(0, 1, 1, 7, 0, 0, 0, time.UTC),
			EndTime:   time.Date(0, 1, 1, 15, 0, 0, 0, time.UTC)},
	}
	resolver := shiftservice.NewResolver(catalog, &stubSources{recurring: map[string]string{"Senin": "PAGI"}})
	projector := schedule.NewProjector(resolver, stubAttendances{}, stubLeaves{})
	employees := stubEmployees{
		"200100234": {NIK: "200100234", FullName: "Budi Santoso", Active: true, Role: employee.RoleGuard},
	}
	return NewScheduleHandler(projector, employees, time.UTC)
}

func monthlyRequest(t *testing.T, nik, query string) *http.Request {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"nik":  nik,
		"role": string(employee.RoleGuard),
		"type": "access",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/monthly"+query, nil)
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func TestScheduleMonthly_ParsesYearAndMonthParams(t *testing.T) {
	h := scheduleTestHandler(t)

	rec := httptest.NewRecorder()
	h.Monthly(rec, monthlyRequest(t, "200100234", "?year=2026&month=2"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data schedule.MonthView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2026, body.Data.Year)
	assert.Equal(t, 2, body.Data.Month)
	assert.Len(t, body.Data.Days, 28)
}

func TestScheduleMonthly_RejectsMalformedParams(t *testing.T) {
	h := scheduleTestHandler(t)

	for _, query := range []string{"", "?year=2026", "?year=twenty&month=2", "?year=2026&month=13"} {
		rec := httptest.NewRecorder()
		h.Monthly(rec, monthlyRequest(t, "200100234", query))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}
