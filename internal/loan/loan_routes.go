package loan

import (
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	loans := r.Group("/loans")
	loans.Use(middleware.ActorContext())
	{
		loans.GET("", middleware.RBACAuthorize(rbacService, "loan", "read"), handler.GetAll)
		loans.GET("/:id", middleware.RBACAuthorize(rbacService, "loan", "read"), handler.GetByID)
		loans.POST("", middleware.RBACAuthorize(rbacService, "loan", "create"), handler.Create)
	}
}
