package punch

import (
	"github.com/armandonoel2022/srcapp-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, rdb *redis.Client, jwtSecret string) {
	punches := r.Group("/punches")
	punches.Use(middleware.AuthMiddleware(jwtSecret))
	{
		// Punches are at most a handful per shift; anything faster is a
		// stuck client retry loop.
		punches.POST("",
			middleware.RBACAuthorize(rbacService, "punch", "create"),
			middleware.RateLimitByEmployee(rate.Limit(1), 3),
			middleware.Idempotency(rdb),
			h.Register)
		punches.GET("/today", middleware.RBACAuthorize(rbacService, "punch", "read"), h.GetDay)
		punches.GET("", middleware.RBACAuthorize(rbacService, "punch", "read"), h.GetRange)
		punches.GET("/all", middleware.RBACAuthorize(rbacService, "punch", "read_all"), h.GetAllForCompany)
		punches.GET("/compliance", middleware.RBACAuthorize(rbacService, "punch", "read_all"), h.Compliance)
	}
}
