package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/waveform-comments/api/auth"
	"github.com/killallgit/waveform-comments/api/comments"
	"github.com/killallgit/waveform-comments/api/health"
	"github.com/killallgit/waveform-comments/api/tracks"
	"github.com/killallgit/waveform-comments/api/types"
	"github.com/killallgit/waveform-comments/api/version"
	_ "github.com/killallgit/waveform-comments/docs/swagger"
	authService "github.com/killallgit/waveform-comments/internal/services/auth"
	commentsService "github.com/killallgit/waveform-comments/internal/services/comments"
	tracksService "github.com/killallgit/waveform-comments/internal/services/tracks"
	usersService "github.com/killallgit/waveform-comments/internal/services/users"
	"github.com/killallgit/waveform-comments/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// Load config for API routes
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := initializeServices(deps, cfg); err != nil {
		return err
	}
	if deps.CommentService == nil || deps.TrackService == nil {
		// Without storage only the public routes are served
		return nil
	}

	// API v1 routes
	v1 := engine.Group("/api/v1")
	if cfg.RateLimiting.Enabled {
		v1.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, cfg.RateLimiting.RPS, cfg.RateLimiting.Burst))
	}

	authHandler := auth.NewHandler(deps.TokenService, deps.UserService)
	requireAuth := authHandler.AuthMiddleware()

	auth.RegisterRoutes(v1, authHandler)
	tracks.RegisterRoutes(v1.Group("/tracks"), deps, requireAuth)
	comments.RegisterRoutes(v1, deps, requireAuth)

	return nil
}

// initializeServices fills in whichever services the caller did not provide
func initializeServices(deps *types.Dependencies, cfg *config.Config) error {
	if deps.TokenService == nil {
		tokens, err := authService.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		if err != nil {
			return fmt.Errorf("failed to create token service: %w", err)
		}
		deps.TokenService = tokens
	}

	if deps.DB == nil || deps.DB.DB == nil {
		return nil
	}

	if deps.UserService == nil {
		deps.UserService = usersService.NewService(usersService.NewRepository(deps.DB.DB))
	}
	if deps.TrackService == nil {
		deps.TrackService = tracksService.NewService(tracksService.NewRepository(deps.DB.DB))
	}
	if deps.CommentService == nil {
		deps.CommentService = commentsService.NewService(
			commentsService.NewRepository(deps.DB.DB),
			deps.TrackService,
			commentsService.WithCache(cfg.Cache.CommentsTTL, cfg.Cache.CleanupInterval),
		)
	}
	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
