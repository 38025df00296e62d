package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
)

type Attendance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_employee_date"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_employee_date"`

	AttendanceDate time.Time  `gorm:"type:date;not null;index:idx_attendance_employee_date"`
	ClockIn        *time.Time `gorm:"index"`
	ClockOut       *time.Time
	Status         string  `gorm:"type:varchar(20);not null;default:'PRESENT'"`
	Source         string  `gorm:"type:varchar(20);not null;default:'MANUAL'"`
	Notes          *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
