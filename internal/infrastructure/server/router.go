package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pixelvault/pixelvault/internal/adapter/handler"
	"github.com/pixelvault/pixelvault/internal/infrastructure/middleware"
)

type Router struct {
	engine          *gin.Engine
	resourceHandler *handler.ResourceHandler
	mediaHandler    *handler.MediaHandler
	logger          *zap.Logger
}

type RouterConfig struct {
	ResourceHandler *handler.ResourceHandler
	MediaHandler    *handler.MediaHandler
	Logger          *zap.Logger
	Environment     string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:          engine,
		resourceHandler: cfg.ResourceHandler,
		mediaHandler:    cfg.MediaHandler,
		logger:          cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")
	{
		resources := api.Group("/resources")
		resources.Use(middleware.Identity())
		{
			resources.POST("", r.resourceHandler.Upload)
			resources.GET("/:id", r.resourceHandler.Get)
			resources.DELETE("/:id", r.resourceHandler.Delete)

			resources.POST("/:id/transform", r.mediaHandler.Transform)
			resources.POST("/:id/preview", r.mediaHandler.Preview)
			resources.GET("/:id/content", r.mediaHandler.Retrieve)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
