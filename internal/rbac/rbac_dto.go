package rbac

type AssignRoleRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Role       string `json:"role" binding:"required"`
}

type RoleAssignmentResponse struct {
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
}
