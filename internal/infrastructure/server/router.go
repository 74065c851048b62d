package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgpipe/internal/adapter/handler"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/middleware"
)

type Router struct {
	engine         *gin.Engine
	imageHandler   *handler.ImageHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	logger         *zap.Logger
}

type RouterConfig struct {
	ImageHandler   *handler.ImageHandler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimiter is optional; image routes are unlimited when nil.
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
	Environment string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.MaxMultipartMemory = 8 << 20

	r := &Router{
		engine:         engine,
		imageHandler:   cfg.ImageHandler,
		authMiddleware: cfg.AuthMiddleware,
		rateLimiter:    cfg.RateLimiter,
		logger:         cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	images := api.Group("/images")
	images.Use(r.authMiddleware.RequireAuth())
	if r.rateLimiter != nil {
		images.Use(r.rateLimiter.Limit())
	}
	{
		images.POST("", r.imageHandler.Upload)
		images.GET("", r.imageHandler.List)
		images.GET("/mine", r.imageHandler.ListMine)
		images.DELETE("/*key", r.imageHandler.Delete)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
