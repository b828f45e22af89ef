package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/k3guard/attendance-backend-go/internal/domain/shift"
	"github.com/k3guard/attendance-backend-go/internal/pkg/database"
)

type catalogRepository struct {
	db *database.DB
}

// GetByCode implements shift.CatalogRepository.
func (r *catalogRepository) GetByCode(ctx context.Context, code string) (shift.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT kode_jam_kerja, nama_jam_kerja, jam_masuk, jam_pulang,
			   jam_awal_istirahat, jam_akhir_istirahat,
			   lintashari, total_jam, keterangan, created_at, updated_at
		FROM presensi_jamkerja
		WHERE kode_jam_kerja = $1
	`

	def, err := scanDefinition(q.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Definition{}, shift.ErrShiftNotFound
		}
		return shift.Definition{}, fmt.Errorf("failed to get shift %s: %w", code, err)
	}

	return def, nil
}

// List implements shift.CatalogRepository.
func (r *catalogRepository) List(ctx context.Context) ([]shift.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT kode_jam_kerja, nama_jam_kerja, jam_masuk, jam_pulang,
			   jam_awal_istirahat, jam_akhir_istirahat,
			   lintashari, total_jam, keterangan, created_at, updated_at
		FROM presensi_jamkerja
		ORDER BY kode_jam_kerja
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var defs []shift.Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		defs = append(defs, def)
	}

	return defs, rows.Err()
}

func scanDefinition(row pgx.Row) (shift.Definition, error) {
	var (
		def        shift.Definition
		lintashari string
	)
	err := row.Scan(
		&def.Code, &def.Name, &def.StartTime, &def.EndTime,
		&def.BreakStart, &def.BreakEnd,
		&lintashari, &def.DurationHours, &def.Description,
		&def.CreatedAt, &def.UpdatedAt,
	)
	if err != nil {
		return shift.Definition{}, err
	}
	// Legacy column, CHAR(1) '1'/'0'. Converted here so the rest of the
	// code only ever sees a bool.
	def.CrossesMidnight = lintashari == "1"
	return def, nil
}

func NewCatalogRepository(db *database.DB) shift.CatalogRepository {
	return &catalogRepository{db: db}
}

type policyRepository struct {
	db *database.DB
}

// GetWindowPolicy implements shift.PolicyRepository. The settings table is a
// singleton row.
func (r *policyRepository) GetWindowPolicy(ctx context.Context) (shift.WindowPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT batas_jam_absen, batas_jam_absen_pulang,
			   toleransi_shift_malam_mulai, toleransi_shift_malam_batas,
			   updated_at
		FROM pengaturan_umum
		LIMIT 1
	`

	var policy shift.WindowPolicy
	err := q.QueryRow(ctx, query).Scan(
		&policy.ClockInGraceHours,
		&policy.ClockOutGraceHours,
		&policy.EarlyArrivalCutoff,
		&policy.EarlyArrivalFloor,
		&policy.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.WindowPolicy{}, shift.ErrPolicyNotConfigured
		}
		return shift.WindowPolicy{}, fmt.Errorf("failed to get window policy: %w", err)
	}

	return policy, nil
}

// UpdateWindowPolicy implements shift.PolicyRepository.
func (r *policyRepository) UpdateWindowPolicy(ctx context.Context, policy shift.WindowPolicy) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pengaturan_umum
		SET batas_jam_absen = $1,
			batas_jam_absen_pulang = $2,
			toleransi_shift_malam_mulai = $3,
			toleransi_shift_malam_batas = $4,
			updated_at = $5
	`

	tag, err := q.Exec(ctx, query,
		policy.ClockInGraceHours,
		policy.ClockOutGraceHours,
		policy.EarlyArrivalCutoff.Format("15:04:05"),
		policy.EarlyArrivalFloor.Format("15:04:05"),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update window policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrPolicyNotConfigured
	}

	return nil
}

func NewPolicyRepository(db *database.DB) shift.PolicyRepository {
	return &policyRepository{db: db}
}
