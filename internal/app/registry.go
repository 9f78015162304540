package app

import (
	"database/sql"
	"net/http"
	"path/filepath"
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/config"
	"github.com/armandonoel2022/srcapp-sub001/internal/geocode"
	"github.com/armandonoel2022/srcapp-sub001/internal/messaging/kafka"
	"github.com/armandonoel2022/srcapp-sub001/internal/middleware"
	"github.com/armandonoel2022/srcapp-sub001/internal/position"
	"github.com/armandonoel2022/srcapp-sub001/internal/punch"
	"github.com/armandonoel2022/srcapp-sub001/internal/rbac"
	"github.com/armandonoel2022/srcapp-sub001/internal/rbac/infra"
	"github.com/armandonoel2022/srcapp-sub001/internal/routing"
	"github.com/armandonoel2022/srcapp-sub001/internal/worklocation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) error {
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	worklocationRepo := worklocation.NewRepository(gormDB)
	punchRepo := punch.NewRepository(gormDB)
	positionRepo := position.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	worklocationService := worklocation.NewService(worklocationRepo)
	punchService := punch.NewService(db, punchRepo, worklocationService, outboxRepo)
	positionService := position.NewService(positionRepo)

	snapper := routing.NewSnapper(
		&http.Client{Timeout: 10 * time.Second},
		cfg.RoutingBaseURL,
		cfg.RoutingAPIKey,
	)
	geocoder := geocode.NewClient(
		&http.Client{Timeout: 10 * time.Second},
		cfg.GeocodeBaseURL,
		cfg.GeocodeAPIKey,
		rdb,
	)

	// --- Handlers ---
	worklocationHandler := worklocation.NewHandler(worklocationService)
	punchHandler := punch.NewHandlerWithRedis(punchService, rdb)
	positionHandler := position.NewHandler(positionService, snapper, geocoder)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		worklocation.RegisterRoutes(api, worklocationHandler, rbacService, cfg.JWTSecret)
		punch.RegisterRoutes(api, punchHandler, rbacService, rdb, cfg.JWTSecret)
		position.RegisterRoutes(api, positionHandler, rbacService, cfg.JWTSecret)
		rbac.RegisterRoutes(api, rbacHandler, rbacService, cfg.JWTSecret)
	}

	return nil
}
