package loan

type CreateLoanRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	Principal   float64 `json:"principal" binding:"required"`
	AnnualRate  float64 `json:"annual_rate"`
	TenorMonths int     `json:"tenor_months" binding:"required"`
	DisbursedAt string  `json:"disbursed_at" binding:"required"`
}

type ScheduleEntryResponse struct {
	ID          string  `json:"id"`
	Sequence    int     `json:"sequence"`
	DueDate     string  `json:"due_date"`
	Installment float64 `json:"installment"`
	Principal   float64 `json:"principal"`
	Interest    float64 `json:"interest"`
	Balance     float64 `json:"balance"`
	PayrollID   *string `json:"payroll_record_id,omitempty"`
}

type LoanResponse struct {
	ID            string                  `json:"id"`
	CompanyID     string                  `json:"company_id"`
	EmployeeID    string                  `json:"employee_id"`
	Principal     float64                 `json:"principal"`
	AnnualRate    float64                 `json:"annual_rate"`
	TenorMonths   int                     `json:"tenor_months"`
	Installment   float64                 `json:"installment"`
	TotalInterest float64                 `json:"total_interest"`
	Status        string                  `json:"status"`
	DisbursedAt   string                  `json:"disbursed_at"`
	Schedule      []ScheduleEntryResponse `json:"schedule,omitempty"`
}
