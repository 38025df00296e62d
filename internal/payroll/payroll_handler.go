package payroll

import (
	"context"
	"net/http"
	"strconv"

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

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)
	actorID := c.GetString(middleware.ContextEmployeeID)

	var req CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Run(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)
	actorID := c.GetString(middleware.ContextEmployeeID)

	var req BulkRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RunBulk(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetAll lists the company's records; month and year query params narrow it
// to one period.
func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)

	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	resp, err := h.service.GetAll(c.Request.Context(), companyID, month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetSummary aggregates one period's records by status and designation.
func (h *Handler) GetSummary(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)

	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	resp, err := h.service.GetSummary(c.Request.Context(), companyID, month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)
	actorID := c.GetString(middleware.ContextEmployeeID)
	id := c.Param("id")

	var req UpdatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), companyID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	h.applyTransition(c, h.service.Submit)
}

func (h *Handler) Approve(c *gin.Context) {
	h.applyTransition(c, h.service.Approve)
}

func (h *Handler) Process(c *gin.Context) {
	h.applyTransition(c, h.service.Process)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	h.applyTransition(c, h.service.MarkPaid)
}

func (h *Handler) Reject(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)
	actorID := c.GetString(middleware.ContextEmployeeID)
	id := c.Param("id")

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), companyID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	companyID := c.GetString(middleware.ContextCompanyID)
	actorID := c.GetString(middleware.ContextEmployeeID)
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), companyID, actorID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// The transition body is optional; an empty body means no comment.
func (h *Handler) applyTransition(
	c *gin.Context,
	apply func(ctx context.Context, companyID, actorID, id string, req TransitionRequest) (PayrollResponse, error),
) {
	companyID := c.GetString(middleware.ContextCompanyID)
	actorID := c.GetString(middleware.ContextEmployeeID)
	id := c.Param("id")

	var req TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	resp, err := apply(c.Request.Context(), companyID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
