package position

import (
	"github.com/armandonoel2022/srcapp-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, jwtSecret string) {
	devices := r.Group("/devices")
	devices.Use(middleware.AuthMiddleware(jwtSecret))
	{
		devices.GET("/:device_id/history",
			middleware.RBACAuthorize(rbacService, "history", "read"),
			h.History)
	}
}
