package domain

// EnforceRequest is the authorization question asked before a payroll action:
// may this employee, inside this company, perform action on resource?
type EnforceRequest struct {
	EmployeeID string
	CompanyID  string
	Resource   string
	Action     string
}
