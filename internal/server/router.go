package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/notevault/notevault-backend/internal/http/handlers"
	"github.com/notevault/notevault-backend/internal/http/middleware"
	"github.com/notevault/notevault-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	NoteHandler *handlers.NoteHandler

	// Directory served under /uploads when the local blob backend is
	// active. Empty disables the static route.
	UploadsDir string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("notevault"))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS())

	router.GET("/", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/upload", cfg.NoteHandler.Upload)
		api.GET("/search", cfg.NoteHandler.Search)
		api.GET("/notes", cfg.NoteHandler.ListRecent)
	}

	if cfg.UploadsDir != "" {
		router.Static("/uploads", cfg.UploadsDir)
	}

	return router
}
