package payroll

import (
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.ActorContext())
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		payrolls.GET("/summary", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetSummary)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
		payrolls.POST("", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Create)
		payrolls.POST("/run",
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			handler.Run,
		)
		payrolls.PUT("/:id", middleware.RBACAuthorize(rbacService, "payroll", "update"), handler.Update)
		payrolls.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", "delete"), handler.Delete)

		payrolls.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "payroll", "submit"), handler.Submit)
		payrolls.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.Approve)
		payrolls.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.Reject)
		payrolls.POST("/:id/process", middleware.RBACAuthorize(rbacService, "payroll", "process"), handler.Process)
		payrolls.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payroll", "mark-paid"), handler.MarkPaid)
	}
}
