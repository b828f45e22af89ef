package postgresql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/k3guard/attendance-backend-go/internal/domain/master/branch"
	"github.com/k3guard/attendance-backend-go/internal/pkg/database"
)

type branchRepository struct {
	db *database.DB
}

// GetByCode implements branch.BranchRepository. The legacy schema stores the
// branch location as a single "lat,lon" string; it is split into floats here
// so the radius check never parses text.
func (r *branchRepository) GetByCode(ctx context.Context, code string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT kode_cabang, nama_cabang, lokasi_cabang, radius_cabang,
			   created_at, updated_at
		FROM cabang
		WHERE kode_cabang = $1
	`

	var (
		b        branch.Branch
		location string
	)
	err := q.QueryRow(ctx, query, code).Scan(
		&b.Code, &b.Name, &location, &b.RadiusMeters,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch %s: %w", code, err)
	}

	lat, lon, err := parseLocation(location)
	if err != nil {
		return branch.Branch{}, branch.ErrBranchNoLocation
	}
	b.Latitude = lat
	b.Longitude = lon

	return b, nil
}

func parseLocation(s string) (lat, lon float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed location %q", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepository{db: db}
}
