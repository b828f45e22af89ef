package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/k3guard/attendance-backend-go/internal/domain/attendance"
	"github.com/k3guard/attendance-backend-go/internal/domain/employee"
	"github.com/k3guard/attendance-backend-go/internal/domain/master/branch"
	domainshift "github.com/k3guard/attendance-backend-go/internal/domain/shift"
	"github.com/k3guard/attendance-backend-go/internal/pkg/utils"
	shiftservice "github.com/k3guard/attendance-backend-go/internal/service/shift"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	branch.BranchRepository
	policies domainshift.PolicyRepository
	resolver *shiftservice.Resolver
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	branchRepo branch.BranchRepository,
	policyRepo domainshift.PolicyRepository,
	resolver *shiftservice.Resolver,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		BranchRepository:     branchRepo,
		policies:             policyRepo,
		resolver:             resolver,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func nikFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	nik, ok := claims["nik"].(string)
	if !ok || nik == "" {
		return "", fmt.Errorf("nik claim is missing or invalid")
	}
	return nik, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest, now time.Time) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	nik, err := nikFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByNIK(ctx, nik)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.Active {
		return attendance.RecordResponse{}, employee.ErrEmployeeInactive
	}

	policy, err := a.policies.GetWindowPolicy(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// Any open record blocks a new clock-in, including a midnight-crossing
	// one carried over from yesterday.
	open, err := a.FindOpenRecord(ctx, nik, now)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if open != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
	}

	date, err := a.resolver.EffectiveDate(ctx, emp, now, policy, false)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByNIKAndDate(ctx, nik, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if existing != nil {
		if existing.ClockOut != nil {
			return attendance.RecordResponse{}, attendance.ErrAlreadyClockedOut
		}
		return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
	}

	def, err := a.resolveForClockIn(ctx, emp, date, req.ShiftCode)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	decision := shiftservice.EvaluateWindow(def, date, shiftservice.ActionClockIn, now, policy, emp.ScheduleLocked)
	if !decision.Allowed {
		return attendance.RecordResponse{}, windowError(decision)
	}

	if emp.LocationLocked {
		if err := a.checkRadius(ctx, emp, req.Latitude, req.Longitude); err != nil {
			return attendance.RecordResponse{}, err
		}
	}

	record, err := a.AttendanceRepository.Create(ctx, attendance.Record{
		ID:               uuid.NewString(),
		NIK:              nik,
		Date:             date,
		ShiftCode:        def.Code,
		Status:           attendance.StatusPresent,
		CrossesMidnight:  def.SpansNextDay(),
		ClockIn:          &now,
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("clock-in recorded",
		"nik", nik,
		"date", date.Format("2006-01-02"),
		"shift_code", def.Code,
	)

	return toRecordResponse(record, &def.Name), nil
}

// resolveForClockIn runs the schedule cascade and decides what happens when
// it comes back empty. A locked schedule with no resolvable shift is a hard
// failure; an unlocked one may name a shift explicitly in the request.
func (a *AttendanceServiceImpl) resolveForClockIn(ctx context.Context, emp employee.Employee, date time.Time, explicit *string) (domainshift.Definition, error) {
	res, err := a.resolver.Resolve(ctx, emp, date)
	if err != nil {
		return domainshift.Definition{}, err
	}
	if res.Found() {
		return *res.Shift, nil
	}

	if !emp.ScheduleLocked && explicit != nil {
		def, err := a.resolver.Catalog().GetByCode(ctx, *explicit)
		if err != nil {
			if errors.Is(err, domainshift.ErrShiftNotFound) {
				return domainshift.Definition{}, attendance.ErrNoScheduleFound
			}
			return domainshift.Definition{}, err
		}
		return def, nil
	}

	return domainshift.Definition{}, attendance.ErrNoScheduleFound
}

func (a *AttendanceServiceImpl) checkRadius(ctx context.Context, emp employee.Employee, lat, lon *float64) error {
	if lat == nil || lon == nil {
		return attendance.ErrOutsideAllowedRadius
	}

	b, err := a.BranchRepository.GetByCode(ctx, emp.BranchCode)
	if err != nil {
		if errors.Is(err, branch.ErrBranchNoLocation) {
			// Enforcement is on but the branch has no pin; skip the check
			// rather than locking everyone out.
			slog.Warn("branch has location lock but no coordinates", "branch_code", emp.BranchCode)
			return nil
		}
		return err
	}

	distance := utils.CalculateHaversineDistance(*lat, *lon, b.Latitude, b.Longitude)
	if distance > float64(b.RadiusMeters) {
		return attendance.ErrOutsideAllowedRadius
	}
	return nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest, now time.Time) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	nik, err := nikFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByNIK(ctx, nik)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := a.FindOpenRecord(ctx, nik, now)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if record == nil {
		return attendance.RecordResponse{}, attendance.ErrNotClockedIn
	}

	policy, err := a.policies.GetWindowPolicy(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	var shiftName *string
	def, err := a.resolver.Catalog().GetByCode(ctx, record.ShiftCode)
	switch {
	case errors.Is(err, domainshift.ErrShiftNotFound):
		// The catalog entry was deleted while the record was open. The
		// employee must still be able to leave, so skip the window check.
		slog.Warn("open attendance record references a missing shift, allowing clock-out",
			"nik", nik,
			"shift_code", record.ShiftCode,
		)
	case err != nil:
		return attendance.RecordResponse{}, err
	default:
		shiftName = &def.Name
		recordDate := shiftservice.DateIn(record.Date, now.Location())
		decision := shiftservice.EvaluateWindow(def, recordDate, shiftservice.ActionClockOut, now, policy, emp.ScheduleLocked)
		if !decision.Allowed {
			return attendance.RecordResponse{}, windowError(decision)
		}
	}

	if err := a.AttendanceRepository.CloseRecord(ctx, record.ID, now, req.Latitude, req.Longitude, false); err != nil {
		return attendance.RecordResponse{}, err
	}

	record.ClockOut = &now
	record.ClockOutLatitude = req.Latitude
	record.ClockOutLongitude = req.Longitude

	slog.Info("clock-out recorded",
		"nik", nik,
		"date", record.Date.Format("2006-01-02"),
		"shift_code", record.ShiftCode,
		"carry_over", !shiftservice.DateIn(record.Date, now.Location()).Equal(shiftservice.DateOf(now)),
	)

	return toRecordResponse(*record, shiftName), nil
}

// FindOpenRecord implements attendance.AttendanceService. Today's own open
// record wins; failing that, yesterday's open midnight-crossing record is
// the carry-over case, where the clock-out lands on the day after the record
// date.
func (a *AttendanceServiceImpl) FindOpenRecord(ctx context.Context, nik string, asOf time.Time) (*attendance.Record, error) {
	today := shiftservice.DateOf(asOf)

	record, err := a.AttendanceRepository.GetOpenByDate(ctx, nik, today)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	yesterday := today.AddDate(0, 0, -1)
	return a.AttendanceRepository.GetOpenCrossMidnight(ctx, nik, yesterday)
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, now time.Time) (attendance.TodayResponse, error) {
	nik, err := nikFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByNIK(ctx, nik)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	today := shiftservice.DateOf(now)
	resp := attendance.TodayResponse{
		NIK:            nik,
		EmployeeName:   emp.FullName,
		Date:           today.Format("2006-01-02"),
		ScheduleLocked: emp.ScheduleLocked,
		LocationLocked: emp.LocationLocked,
	}

	record, err := a.FindOpenRecord(ctx, nik, now)
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	if record == nil {
		// Nothing open; a closed record for today still matters for the
		// button state.
		record, err = a.AttendanceRepository.GetByNIKAndDate(ctx, nik, today)
		if err != nil {
			return attendance.TodayResponse{}, err
		}
	}

	if record != nil {
		resp.Date = record.Date.Format("2006-01-02")
		resp.CarryOver = !shiftservice.DateIn(record.Date, now.Location()).Equal(today)
		resp.ShiftCode = &record.ShiftCode
		resp.ClockInTime = timePtrToString(record.ClockIn)
		resp.ClockOutTime = timePtrToString(record.ClockOut)
		resp.ClockInDone = record.ClockIn != nil
		resp.ClockOutDone = record.ClockOut != nil

		def, err := a.resolver.Catalog().GetByCode(ctx, record.ShiftCode)
		if err == nil {
			resp.ShiftName = &def.Name
			resp.ShiftStart = clockString(def.StartTime)
			resp.ShiftEnd = clockString(def.EndTime)
		}
		return resp, nil
	}

	res, err := a.resolver.Resolve(ctx, emp, today)
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	if res.Found() {
		resp.ShiftCode = &res.Shift.Code
		resp.ShiftName = &res.Shift.Name
		resp.ShiftStart = clockString(res.Shift.StartTime)
		resp.ShiftEnd = clockString(res.Shift.EndTime)
		resp.Source = string(res.Source)
	}

	return resp, nil
}

func windowError(d shiftservice.Decision) error {
	base := attendance.ErrTooEarly
	if d.Reason == shiftservice.ReasonWindowClosed {
		base = attendance.ErrWindowClosed
	}
	return &attendance.WindowError{Err: base, Boundary: d.Boundary}
}

func clockString(t time.Time) *string {
	s := t.Format("15:04")
	return &s
}

func toRecordResponse(record attendance.Record, shiftName *string) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:              record.ID,
		NIK:             record.NIK,
		Date:            record.Date.Format("2006-01-02"),
		ShiftCode:       record.ShiftCode,
		ShiftName:       shiftName,
		Status:          string(record.Status),
		CrossesMidnight: record.CrossesMidnight,
		ClockInTime:     timePtrToString(record.ClockIn),
		ClockOutTime:    timePtrToString(record.ClockOut),
	}
}
