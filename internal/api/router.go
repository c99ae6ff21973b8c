package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/videotube/backend/internal/api/handler"
	"github.com/videotube/backend/internal/api/middleware"
	"github.com/videotube/backend/internal/core/ports"
	"github.com/videotube/backend/internal/core/service"
	"github.com/videotube/backend/internal/infrastructure/config"
	mongodb "github.com/videotube/backend/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The view dispatcher is constructed in main (it owns worker goroutines tied
// to the process lifetime) and injected here.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	media ports.MediaStorage,
	views service.ViewDispatcher,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit("64M"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	videoRepo := mongodb.NewVideoRepository(db)

	tokenService := service.NewTokenService(userRepo, service.TokenConfig{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	}, log)
	authService := service.NewAuthService(userRepo, tokenService, media, log)
	videoService := service.NewVideoService(videoRepo, media, views, log)

	cookies := handler.CookieConfig{
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	}
	authHandler := handler.NewAuthHandler(authService, cookies)
	userHandler := handler.NewUserHandler(authService)
	videoHandler := handler.NewVideoHandler(videoService)
	authRequired := middleware.Auth(cfg.Auth.AccessSecret)

	// --- Session routes ---
	users := e.Group("/api/v1/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.POST("/refresh-token", authHandler.Refresh)
	users.POST("/logout", authHandler.Logout, authRequired)
	users.POST("/change-password", authHandler.ChangePassword, authRequired)
	users.GET("/current-user", userHandler.CurrentUser, authRequired)
	users.PATCH("/update-account", userHandler.UpdateAccount, authRequired)
	users.PATCH("/avatar", userHandler.UpdateAvatar, authRequired)
	users.PATCH("/cover-image", userHandler.UpdateCoverImage, authRequired)

	// --- Video routes ---
	videos := e.Group("/api/v1/videos")
	videos.POST("", videoHandler.Create, authRequired)
	videos.GET("", videoHandler.List)
	videos.GET("/:id", videoHandler.Get)
	videos.PATCH("/:id/toggle-publish", videoHandler.TogglePublish, authRequired)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
