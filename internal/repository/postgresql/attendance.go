package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/k3guard/attendance-backend-go/internal/domain/attendance"
	"github.com/k3guard/attendance-backend-go/internal/pkg/database"
)

const attendanceColumns = `
	id, nik, tanggal, kode_jam_kerja, status, lintashari,
	jam_in, jam_out,
	lat_in, lon_in, lat_out, lon_out,
	closed_by_system, created_at, updated_at
`

type attendanceRepository struct {
	db *database.DB
}

// Create implements attendance.AttendanceRepository. The unique constraint on
// (nik, tanggal) makes the service's check-then-insert race harmless: the
// loser of the race gets ErrAlreadyClockedIn instead of a duplicate row.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO presensi (
			id, nik, tanggal, kode_jam_kerja, status, lintashari,
			jam_in, lat_in, lon_in
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.NIK,
		record.Date,
		record.ShiftCode,
		record.Status,
		record.CrossesMidnight,
		record.ClockIn,
		record.ClockInLatitude,
		record.ClockInLongitude,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByNIKAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByNIKAndDate(ctx context.Context, nik string, date time.Time) (*attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM presensi
		WHERE nik = $1 AND tanggal = $2
	`
	return r.getOne(ctx, query, nik, date)
}

// GetOpenByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenByDate(ctx context.Context, nik string, date time.Time) (*attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM presensi
		WHERE nik = $1 AND tanggal = $2
		  AND jam_in IS NOT NULL AND jam_out IS NULL
	`
	return r.getOne(ctx, query, nik, date)
}

// GetOpenCrossMidnight implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenCrossMidnight(ctx context.Context, nik string, date time.Time) (*attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM presensi
		WHERE nik = $1 AND tanggal = $2
		  AND lintashari = TRUE
		  AND jam_in IS NOT NULL AND jam_out IS NULL
	`
	return r.getOne(ctx, query, nik, date)
}

// ListByMonth implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByMonth(ctx context.Context, nik string, year int, month time.Month) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM presensi
		WHERE nik = $1
		  AND EXTRACT(YEAR FROM tanggal) = $2
		  AND EXTRACT(MONTH FROM tanggal) = $3
		ORDER BY tanggal
	`

	rows, err := q.Query(ctx, query, nik, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by month: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListOpen implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListOpen(ctx context.Context) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM presensi
		WHERE jam_in IS NOT NULL AND jam_out IS NULL
		ORDER BY tanggal, jam_in
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// CloseRecord implements attendance.AttendanceRepository. The jam_out guard
// keeps a concurrent close from overwriting an already-closed record.
func (r *attendanceRepository) CloseRecord(ctx context.Context, id string, clockOut time.Time, latitude, longitude *float64, closedBySystem bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE presensi
		SET jam_out = $2,
			lat_out = $3,
			lon_out = $4,
			closed_by_system = $5,
			updated_at = NOW()
		WHERE id = $1 AND jam_out IS NULL
	`

	tag, err := q.Exec(ctx, query, id, clockOut, latitude, longitude, closedBySystem)
	if err != nil {
		return fmt.Errorf("failed to close attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

func (r *attendanceRepository) getOne(ctx context.Context, query string, args ...any) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	record, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &record, nil
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.NIK, &rec.Date, &rec.ShiftCode, &rec.Status, &rec.CrossesMidnight,
		&rec.ClockIn, &rec.ClockOut,
		&rec.ClockInLatitude, &rec.ClockInLongitude,
		&rec.ClockOutLatitude, &rec.ClockOutLongitude,
		&rec.ClosedBySystem, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func scanRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
