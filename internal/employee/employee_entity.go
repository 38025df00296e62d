package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusResigned = "RESIGNED"
)

// Employee is owned by the HR directory service; this engine only reads it.
// CTC is the monthly cost-to-company figure every salary component derives
// from. Location drives both the HRA tier and the professional-tax state.
type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_employees_company_status"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`

	EmployeeCode string `gorm:"type:varchar(30);not null"`
	FullName     string `gorm:"type:varchar(120);not null"`
	Email        string `gorm:"type:varchar(120)"`
	Designation  string `gorm:"type:varchar(60)"`
	Location     string `gorm:"type:varchar(120)"`

	CTC    float64 `gorm:"type:decimal(18,2);not null;default:0"`
	Status string  `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_employees_company_status"`

	JoinedAt  *time.Time `gorm:"type:date"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
