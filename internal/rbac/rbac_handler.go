package rbac

import (
	"net/http"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/middleware"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/shared/apperror"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Me returns the caller's own function role.
func (h *Handler) Me(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)
	employeeID := c.GetString(middleware.ContextEmployeeID)

	role, err := h.service.RoleOf(c.Request.Context(), companyID, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, RoleAssignmentResponse{
		EmployeeID: employeeID,
		Role:       role,
	}, nil)
}

func (h *Handler) Assign(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.AssignRole(c.Request.Context(), companyID, req.EmployeeID, req.Role); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, RoleAssignmentResponse{
		EmployeeID: req.EmployeeID,
		Role:       req.Role,
	}, nil)
}

func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)

	assignments, err := h.service.GetAssignments(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]RoleAssignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = RoleAssignmentResponse{
			EmployeeID: a.EmployeeID.String(),
			Role:       a.Role,
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}
