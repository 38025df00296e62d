package rbac

import (
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	roles := r.Group("/roles")
	roles.Use(middleware.ActorContext())
	{
		roles.GET("/me", handler.Me)
		roles.GET("", middleware.RBACAuthorize(rbacService, "rbac", "manage"), handler.List)
		roles.POST("", middleware.RBACAuthorize(rbacService, "rbac", "manage"), handler.Assign)
	}
}
