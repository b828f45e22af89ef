package employee

import "time"

// Employee is the read-only slice of the HR record the attendance core needs.
// The lock flags are stored as CHAR(1) '1'/'0' in the legacy schema; the
// repository converts them so nothing above it ever sees string booleans.
type Employee struct {
	NIK              string
	FullName         string
	BranchCode       string
	DepartmentCode   string
	PositionCode     string
	DefaultShiftCode *string
	ScheduleLocked   bool
	LocationLocked   bool
	Active           bool
	Role             Role
	PasswordHash     string
	Phone            *string
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Role string

const (
	RoleGuard Role = "guard"
	RoleAdmin Role = "admin"
)
