package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/k3guard/attendance-backend-go/internal/domain/shift"
	"github.com/k3guard/attendance-backend-go/internal/pkg/database"
)

type scheduleSourceRepository struct {
	db *database.DB
}

// DateOverride implements shift.ScheduleSourceRepository. The table carries a
// unique constraint on (nik, tanggal) so at most one override exists per day.
func (r *scheduleSourceRepository) DateOverride(ctx context.Context, nik string, date time.Time) (*string, error) {
	query := `
		SELECT kode_jam_kerja
		FROM presensi_jamkerja_bydate_extra
		WHERE nik = $1 AND tanggal = $2
	`
	return r.lookupCode(ctx, query, nik, date)
}

// RosterShift implements shift.ScheduleSourceRepository.
func (r *scheduleSourceRepository) RosterShift(ctx context.Context, nik string, date time.Time) (*string, error) {
	query := `
		SELECT kode_jam_kerja
		FROM presensi_jamkerja_bydate
		WHERE nik = $1 AND tanggal = $2
	`
	return r.lookupCode(ctx, query, nik, date)
}

// HasRosterInMonth implements shift.ScheduleSourceRepository.
func (r *scheduleSourceRepository) HasRosterInMonth(ctx context.Context, nik string, year int, month time.Month) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM presensi_jamkerja_bydate
			WHERE nik = $1
			  AND EXTRACT(YEAR FROM tanggal) = $2
			  AND EXTRACT(MONTH FROM tanggal) = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, nik, year, int(month)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check roster month: %w", err)
	}
	return exists, nil
}

// RecurringShift implements shift.ScheduleSourceRepository. Weekday names are
// stored in Indonesian (Senin through Minggu).
func (r *scheduleSourceRepository) RecurringShift(ctx context.Context, nik string, weekday string) (*string, error) {
	query := `
		SELECT kode_jam_kerja
		FROM presensi_jamkerja_byday
		WHERE nik = $1 AND hari = $2
	`
	return r.lookupCode(ctx, query, nik, weekday)
}

// HasRecurring implements shift.ScheduleSourceRepository.
func (r *scheduleSourceRepository) HasRecurring(ctx context.Context, nik string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM presensi_jamkerja_byday WHERE nik = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, nik).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check recurring pattern: %w", err)
	}
	return exists, nil
}

// DepartmentShift implements shift.ScheduleSourceRepository. The department
// default is keyed through a schedule-group header row per (branch, dept).
func (r *scheduleSourceRepository) DepartmentShift(ctx context.Context, branchCode, deptCode, weekday string) (*string, error) {
	query := `
		SELECT d.kode_jam_kerja
		FROM presensi_jamkerja_bydept h
		JOIN presensi_jamkerja_bydept_detail d ON d.kode_jk_dept = h.kode_jk_dept
		WHERE h.kode_cabang = $1 AND h.kode_dept = $2 AND d.hari = $3
	`
	return r.lookupCode(ctx, query, branchCode, deptCode, weekday)
}

// HasDepartmentSchedule implements shift.ScheduleSourceRepository.
func (r *scheduleSourceRepository) HasDepartmentSchedule(ctx context.Context, branchCode, deptCode string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM presensi_jamkerja_bydept
			WHERE kode_cabang = $1 AND kode_dept = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, branchCode, deptCode).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check department schedule: %w", err)
	}
	return exists, nil
}

// lookupCode runs a single-column code query and maps no-rows to nil, which
// is how the resolver distinguishes "no assignment" from an error.
func (r *scheduleSourceRepository) lookupCode(ctx context.Context, query string, args ...any) (*string, error) {
	q := GetQuerier(ctx, r.db)

	var code string
	err := q.QueryRow(ctx, query, args...).Scan(&code)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up schedule source: %w", err)
	}
	return &code, nil
}

func NewScheduleSourceRepository(db *database.DB) shift.ScheduleSourceRepository {
	return &scheduleSourceRepository{db: db}
}
