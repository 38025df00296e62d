package middleware

import (
	"net/http"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/shared/contextutil"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextEmployeeID = "employee_id"
	ContextCompanyID  = "company_id"
)

// ActorContext reads the tenant and actor identity forwarded by the API
// gateway. Authentication itself happens upstream; this service only trusts
// the already-verified headers.
func ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader("X-Company-ID")
		employeeID := c.GetHeader("X-Employee-ID")

		if _, err := uuid.Parse(companyID); err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid tenant context", nil)
			c.Abort()
			return
		}
		if _, err := uuid.Parse(employeeID); err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid actor context", nil)
			c.Abort()
			return
		}

		c.Set(ContextCompanyID, companyID)
		c.Set(ContextEmployeeID, employeeID)

		ctx := contextutil.WithActorID(c.Request.Context(), employeeID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
