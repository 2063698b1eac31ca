package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/textwaves/censor-api/api/health"
	"github.com/textwaves/censor-api/api/preview"
	progressapi "github.com/textwaves/censor-api/api/progress"
	"github.com/textwaves/censor-api/api/render"
	"github.com/textwaves/censor-api/api/types"
	"github.com/textwaves/censor-api/api/version"
	"github.com/textwaves/censor-api/api/videos"
	_ "github.com/textwaves/censor-api/docs/swagger"
	"github.com/textwaves/censor-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}
	if deps.UploadDir == "" {
		deps.UploadDir = cfg.Storage.UploadDir
	}

	limit := func(endpoint string) gin.HandlerFunc {
		rps := cfg.RateLimiting.Endpoints[endpoint]
		if rps <= 0 {
			rps = cfg.RateLimiting.Endpoints["default"]
		}
		if rps <= 0 {
			rps = 60
		}
		return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, rps*2)
	}

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Upload and preview routes. Uploads kick off the heavy pipeline, so
	// they get the tightest limit.
	previewGroup := v1.Group("/preview")
	if cfg.RateLimiting.Enabled {
		previewGroup.Use(limit("preview"))
	}
	preview.RegisterRoutes(previewGroup, deps)

	// Render routes
	renderGroup := v1.Group("/render")
	if cfg.RateLimiting.Enabled {
		renderGroup.Use(limit("render"))
	}
	render.RegisterRoutes(renderGroup, deps)

	// Progress streaming routes. Streams poll internally, the limit only
	// applies to opening them.
	progressGroup := v1.Group("/progress")
	if cfg.RateLimiting.Enabled {
		progressGroup.Use(limit("progress"))
	}
	progressapi.RegisterRoutes(progressGroup, deps, cfg.Progress.PollInterval, cfg.Progress.MaxWait)

	// Video listing and download routes
	videosGroup := v1.Group("/videos")
	if cfg.RateLimiting.Enabled {
		videosGroup.Use(limit("videos"))
	}
	videos.RegisterRoutes(videosGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
