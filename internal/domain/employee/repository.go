package employee

import "context"

// EmployeeRepository reads employee master data. The HR module owns the
// table; the attendance core never writes it.
type EmployeeRepository interface {
	// GetByNIK returns ErrEmployeeNotFound when no row matches.
	GetByNIK(ctx context.Context, nik string) (Employee, error)
}
