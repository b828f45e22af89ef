package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/k3guard/attendance-backend-go/internal/domain/leave"
	"github.com/k3guard/attendance-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

// ListOverlapping implements leave.LeaveRepository. Only approved requests
// are visible to the attendance core.
func (r *leaveRepository) ListOverlapping(ctx context.Context, nik string, from, to time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, nik, jenis_izin, tanggal_mulai, tanggal_selesai,
			   keterangan, created_at, updated_at
		FROM izin
		WHERE nik = $1
		  AND status = 'Disetujui'
		  AND tanggal_mulai <= $3
		  AND tanggal_selesai >= $2
		ORDER BY tanggal_mulai
	`

	rows, err := q.Query(ctx, query, nik, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var (
			l     leave.Leave
			jenis string
		)
		err := rows.Scan(
			&l.ID, &l.NIK, &jenis, &l.StartDate, &l.EndDate,
			&l.Reason, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		l.Type = leaveType(jenis)
		leaves = append(leaves, l)
	}

	return leaves, rows.Err()
}

// leaveType folds the legacy request-type enum into the single-letter status
// vocabulary the projector emits.
func leaveType(jenis string) leave.Type {
	switch jenis {
	case "SAKIT":
		return leave.TypeSick
	case "CUTI":
		return leave.TypeAnnual
	case "DINAS LUAR":
		return leave.TypeOfficial
	default:
		return leave.TypePermit
	}
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
