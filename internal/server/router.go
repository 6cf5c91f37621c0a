// Package server wires repositories, services and handlers into the HTTP router.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cabinrental/internal/config"
	"cabinrental/internal/middleware"
	"cabinrental/internal/modules/auth"
	"cabinrental/internal/modules/blocks"
	"cabinrental/internal/modules/catalog"
	"cabinrental/internal/modules/events"
	"cabinrental/internal/pkg/jwt"
	"cabinrental/internal/pkg/response"
	"cabinrental/internal/repository"
)

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Hub    *events.Hub
	Log    *slog.Logger
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	hub := d.Hub
	if hub == nil {
		hub = events.NewHub(log)
	}

	cabinRepo := repository.NewCabinRepository(d.DB)
	blockRepo := repository.NewBlockRepository(d.DB)
	adminRepo := repository.NewAdminRepository(d.DB)

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := auth.NewHandler(
		auth.NewService(adminRepo, jwtService),
		auth.CookieConfig{Name: cfg.AdminCookieName, Secure: cfg.CookieSecure, TTL: cfg.JWTTTL},
	)
	catalogHandler := catalog.NewHandler(catalog.NewService(cabinRepo, blockRepo, hub))
	blocksHandler := blocks.NewHandler(blocks.NewService(blockRepo, hub))
	eventsHandler := events.NewHandler(hub, cfg.CORSOrigins, log)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", healthHandler(d.DB))

	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterRoutes(v1)

		admin := v1.Group("/admin")
		authHandler.RegisterPublicRoutes(admin)

		protected := admin.Group("")
		protected.Use(middleware.AdminSession(jwtService, cfg.AdminCookieName))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterAdminRoutes(protected)
			blocksHandler.RegisterAdminRoutes(protected)
			eventsHandler.RegisterRoutes(protected)
		}
	}

	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
