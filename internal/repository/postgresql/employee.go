package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/k3guard/attendance-backend-go/internal/domain/employee"
	"github.com/k3guard/attendance-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// GetByNIK implements employee.EmployeeRepository. The legacy table stores
// its flags as CHAR(1) '1'/'0'; they become real booleans here and nowhere
// else.
func (r *employeeRepository) GetByNIK(ctx context.Context, nik string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT nik, nama_karyawan, kode_cabang, kode_dept, kode_jabatan,
			   kode_jadwal, lock_jam_kerja, lock_location, status_aktif_karyawan,
			   role, password, no_hp, tanggal_masuk, created_at, updated_at
		FROM karyawan
		WHERE nik = $1
	`

	var (
		emp          employee.Employee
		lockSchedule string
		lockLocation string
		active       string
	)
	err := q.QueryRow(ctx, query, nik).Scan(
		&emp.NIK, &emp.FullName, &emp.BranchCode, &emp.DepartmentCode, &emp.PositionCode,
		&emp.DefaultShiftCode, &lockSchedule, &lockLocation, &active,
		&emp.Role, &emp.PasswordHash, &emp.Phone, &emp.HireDate,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", nik, err)
	}

	emp.ScheduleLocked = lockSchedule == "1"
	emp.LocationLocked = lockLocation == "1"
	emp.Active = active == "1"

	return emp, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
