package rbac

import (
	"time"

	"github.com/google/uuid"
)

// RoleAssignment binds an employee to exactly one payroll function role
// within a company. The permission matrix hanging off the role is fixed in
// code; only the assignment itself is data.
type RoleAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_role_assignment,unique"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_role_assignment,unique"`
	Role       string    `gorm:"type:varchar(30);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
