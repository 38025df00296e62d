package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive = "ACTIVE"
	StatusClosed = "CLOSED"
)

type Loan struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_loans_company_employee"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_loans_company_employee"`

	Principal     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AnnualRate    float64         `gorm:"type:decimal(6,2);not null;default:0"`
	TenorMonths   int             `gorm:"type:int;not null"`
	Installment   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalInterest decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	Status      string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	DisbursedAt time.Time `gorm:"type:date;not null"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Schedule []EmiScheduleEntry `gorm:"foreignKey:LoanID"`
}

// EmiScheduleEntry is one installment due date of an active loan.
// PayrollRecordID is a weak back-reference: it stays NULL until the payroll
// record that pays the installment exists, because that record id is only
// known after the payroll insert (hence the two-pass link in the payroll
// service).
type EmiScheduleEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	LoanID    uuid.UUID `gorm:"type:uuid;not null;index:idx_emi_loan_sequence,unique"`
	Sequence  int       `gorm:"type:int;not null;index:idx_emi_loan_sequence,unique"`

	DueDate     time.Time       `gorm:"type:date;not null;index"`
	Installment decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Principal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Interest    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,2);not null"`

	PayrollRecordID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
