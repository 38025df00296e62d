package payroll

import (
	"time"

	"github.com/google/uuid"
)

// PayrollRecord is one employee's payroll for one (month, year), unique per
// company. Amounts are stored in currency units with two decimal places.
// GrossSalary and NetSalary are always derived; recomputeTotals is the only
// writer.
type PayrollRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_payroll_period,unique"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_payroll_period,unique"`
	PayMonth   int       `gorm:"type:int;not null;index:idx_payroll_period,unique"`
	PayYear    int       `gorm:"type:int;not null;index:idx_payroll_period,unique"`

	// Earnings
	BasicSalary        float64 `gorm:"type:decimal(18,2);not null;default:0"`
	DearnessAllowance  float64 `gorm:"type:decimal(18,2);not null;default:0"`
	HouseRentAllowance float64 `gorm:"type:decimal(18,2);not null;default:0"`
	OtherAllowances    float64 `gorm:"type:decimal(18,2);not null;default:0"`
	GrossSalary        float64 `gorm:"type:decimal(18,2);not null;default:0"`

	// Statutory deductions and contributions
	PfEmployee  float64 `gorm:"type:decimal(18,2);not null;default:0"`
	PfEmployer  float64 `gorm:"type:decimal(18,2);not null;default:0"`
	EsiEmployee float64 `gorm:"type:decimal(18,2);not null;default:0"`
	EsiEmployer float64 `gorm:"type:decimal(18,2);not null;default:0"`
	IncomeTax   float64 `gorm:"type:decimal(18,2);not null;default:0"`
	ProfTax     float64 `gorm:"type:decimal(18,2);not null;default:0"`

	// Period deductions
	LopDays      int     `gorm:"type:int;not null;default:0"`
	LopDeduction float64 `gorm:"type:decimal(18,2);not null;default:0"`
	LoanDeduction float64 `gorm:"type:decimal(18,2);not null;default:0"`

	NetSalary float64 `gorm:"type:decimal(18,2);not null;default:0"`

	// Workflow
	Status            string     `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_payroll_company_status"`
	MakerID           uuid.UUID  `gorm:"type:uuid;not null"`
	CheckerID         *uuid.UUID `gorm:"type:uuid"`
	FinanceApproverID *uuid.UUID `gorm:"type:uuid"`
	RejectionReason   *string    `gorm:"type:text"`

	SubmittedAt *time.Time
	ApprovedAt  *time.Time
	RejectedAt  *time.Time
	PaidAt      *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Details []LoanDeductionDetail `gorm:"foreignKey:PayrollRecordID"`
	History []ApprovalEntry       `gorm:"foreignKey:PayrollRecordID"`
}

// LoanDeductionDetail is one loan's contribution to the record's total loan
// deduction for the period.
type LoanDeductionDetail struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollRecordID uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	LoanID          uuid.UUID `gorm:"type:uuid;not null"`

	Installment  float64 `gorm:"type:decimal(18,2);not null"`
	BalanceAfter float64 `gorm:"type:decimal(18,2);not null"`

	CreatedAt time.Time
}

// ApprovalEntry is one append-only row of a record's approval history.
type ApprovalEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollRecordID uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null"`

	Action  string    `gorm:"type:varchar(20);not null"`
	ActorID uuid.UUID `gorm:"type:uuid;not null"`
	Role    string    `gorm:"type:varchar(30);not null"`
	Comment string    `gorm:"type:text"`

	CreatedAt time.Time
}

// recomputeTotals rederives gross and net from the component fields. It runs
// on every mutation while the record is still DRAFT; after submission the
// amounts are frozen.
func recomputeTotals(r *PayrollRecord) {
	r.GrossSalary = round2(r.BasicSalary + r.DearnessAllowance + r.HouseRentAllowance + r.OtherAllowances)
	r.NetSalary = round2(r.GrossSalary - (r.PfEmployee +
		r.EsiEmployee +
		r.IncomeTax +
		r.ProfTax +
		r.LopDeduction +
		r.LoanDeduction))
}
