package worklocation

import (
	"github.com/armandonoel2022/srcapp-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, jwtSecret string) {
	locations := r.Group("/work-locations")
	locations.Use(middleware.AuthMiddleware(jwtSecret))
	{
		locations.GET("", middleware.RBACAuthorize(rbacService, "worklocation", "read"), h.GetAll)
		locations.POST("", middleware.RBACAuthorize(rbacService, "worklocation", "create"), h.Create)
		locations.PATCH("/:id", middleware.RBACAuthorize(rbacService, "worklocation", "update"), h.Update)
		locations.DELETE("/:id", middleware.RBACAuthorize(rbacService, "worklocation", "delete"), h.Delete)

		// Punch-screen lookups; read access is enough.
		locations.POST("/validate", middleware.RBACAuthorize(rbacService, "worklocation", "read"), h.Validate)
		locations.POST("/nearest", middleware.RBACAuthorize(rbacService, "worklocation", "read"), h.Nearest)
	}
}
