package rbac

import (
	"github.com/armandonoel2022/srcapp-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, jwtSecret string) {
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware(jwtSecret))
	{
		roles.GET("", middleware.RBACAuthorize(rbacService, "role", "read"), h.ListRoles)
		roles.GET("/:name", middleware.RBACAuthorize(rbacService, "role", "read"), h.GetRole)
	}
}
