package payroll

type CreatePayrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
}

// UpdatePayrollRequest adjusts the few hand-set components of a DRAFT
// record; everything derived is recomputed server-side.
type UpdatePayrollRequest struct {
	OtherAllowances *float64 `json:"other_allowances"`
	LopDays         *int     `json:"lop_days"`
}

type TransitionRequest struct {
	Comment string `json:"comment"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type BulkRunRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000,max=2100"`
}

type LoanDeductionDetailResponse struct {
	LoanID       string  `json:"loan_id"`
	Installment  float64 `json:"installment"`
	BalanceAfter float64 `json:"balance_after"`
}

type ApprovalEntryResponse struct {
	Action    string `json:"action"`
	ActorID   string `json:"actor_id"`
	Role      string `json:"role"`
	Comment   string `json:"comment,omitempty"`
	Timestamp string `json:"timestamp"`
}

type PayrollResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	BasicSalary        float64 `json:"basic_salary"`
	DearnessAllowance  float64 `json:"dearness_allowance"`
	HouseRentAllowance float64 `json:"house_rent_allowance"`
	OtherAllowances    float64 `json:"other_allowances"`
	GrossSalary        float64 `json:"gross_salary"`

	PfEmployee  float64 `json:"pf_employee"`
	PfEmployer  float64 `json:"pf_employer"`
	EsiEmployee float64 `json:"esi_employee"`
	EsiEmployer float64 `json:"esi_employer"`
	IncomeTax   float64 `json:"income_tax"`
	ProfTax     float64 `json:"professional_tax"`

	LopDays       int     `json:"lop_days"`
	LopDeduction  float64 `json:"lop_deduction"`
	LoanDeduction float64 `json:"loan_deduction"`

	NetSalary float64 `json:"net_salary"`

	Status            string  `json:"status"`
	MakerID           string  `json:"maker_id"`
	CheckerID         *string `json:"checker_id,omitempty"`
	FinanceApproverID *string `json:"finance_approver_id,omitempty"`
	RejectionReason   *string `json:"rejection_reason,omitempty"`

	SubmittedAt *string `json:"submitted_at,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	RejectedAt  *string `json:"rejected_at,omitempty"`
	PaidAt      *string `json:"paid_at,omitempty"`

	Details []LoanDeductionDetailResponse `json:"loan_details,omitempty"`
	History []ApprovalEntryResponse       `json:"approval_history,omitempty"`
}

const (
	RunOutcomeSkipped = "SKIPPED"
	RunOutcomeFailed  = "FAILED"
)

// BulkRunError is one employee's non-created outcome of a bulk run. An
// existing record for the period reports as skipped, everything else as
// failed; both carry the employee code so callers can act per employee.
type BulkRunError struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Outcome      string `json:"outcome"`
	Code         string `json:"code"`
	Message      string `json:"message"`
}

type DesignationSummary struct {
	Designation string  `json:"designation"`
	Count       int     `json:"count"`
	TotalBasic  float64 `json:"total_basic"`
	TotalGross  float64 `json:"total_gross"`
	TotalNet    float64 `json:"total_net"`
}

// PeriodSummaryResponse aggregates one period's stored records, whatever run
// or manual creation produced them.
type PeriodSummaryResponse struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	Total int `json:"total"`

	ByStatus map[string]int       `json:"by_status"`
	Summary  []DesignationSummary `json:"summary"`
}

type BulkRunResult struct {
	Month   int    `json:"month"`
	Year    int    `json:"year"`
	Status  string `json:"status"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`

	Errors  []BulkRunError       `json:"errors,omitempty"`
	Summary []DesignationSummary `json:"summary"`
}
