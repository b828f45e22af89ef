package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/k3guard/attendance-backend-go/internal/domain/attendance"
	domainshift "github.com/k3guard/attendance-backend-go/internal/domain/shift"
	shiftservice "github.com/k3guard/attendance-backend-go/internal/service/shift"
)

// AttendanceJobs closes attendance records whose employees never clocked out.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	catalog        domainshift.CatalogRepository
	policies       domainshift.PolicyRepository
	location       *time.Location
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	catalog domainshift.CatalogRepository,
	policies domainshift.PolicyRepository,
	location *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		catalog:        catalog,
		policies:       policies,
		location:       location,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("auto_close_open_attendances", interval, func(ctx context.Context) error {
		return j.AutoCloseOpenAttendances(ctx, time.Now().In(j.location))
	})
}

// AutoCloseOpenAttendances closes every open record whose clock-out window
// has fully passed as of now. The record is closed at its nominal window
// end, not at the moment the job runs, so the stored hours match the
// schedule.
func (j *AttendanceJobs) AutoCloseOpenAttendances(ctx context.Context, now time.Time) error {
	policy, err := j.policies.GetWindowPolicy(ctx)
	if err != nil {
		return fmt.Errorf("failed to load window policy: %w", err)
	}

	open, err := j.attendanceRepo.ListOpen(ctx)
	if err != nil {
		return fmt.Errorf("failed to list open records: %w", err)
	}
	if len(open) == 0 {
		return nil
	}

	closed := 0
	for _, record := range open {
		def, err := j.catalog.GetByCode(ctx, record.ShiftCode)
		if err != nil {
			if errors.Is(err, domainshift.ErrShiftNotFound) {
				slog.Warn("Cron: open record references a missing shift, skipping",
					"record_id", record.ID, "shift_code", record.ShiftCode)
				continue
			}
			return err
		}

		date := shiftservice.DateIn(record.Date, j.location)
		deadline := shiftservice.ClockOutDeadline(def, date, policy)
		if now.Before(deadline) {
			continue
		}

		_, windowEnd := shiftservice.Window(def, date)
		if err := j.attendanceRepo.CloseRecord(ctx, record.ID, windowEnd, nil, nil, true); err != nil {
			slog.Error("Cron: failed to auto-close attendance record",
				"record_id", record.ID, "nik", record.NIK, "error", err)
			continue
		}
		closed++
	}

	if closed > 0 {
		slog.Info("Cron: auto-closed stale attendance records", "count", closed)
	}
	return nil
}
