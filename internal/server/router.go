package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/crestline/origination-backend/internal/http/handlers"
	"github.com/crestline/origination-backend/internal/http/middleware"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log                *logger.Logger
	Mode               string
	OtelEnabled        bool
	ServiceName        string
	AuthHandler        *handlers.AuthHandler
	ApplicationHandler *handlers.ApplicationHandler
	FundingHandler     *handlers.FundingHandler
	HealthHandler      *handlers.HealthHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	if cfg.OtelEnabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	router.POST("/api/auth/login", cfg.AuthHandler.Login)
	router.POST("/api/auth/register", cfg.AuthHandler.Register)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	{
		api.POST("/applications", cfg.ApplicationHandler.Create)
		api.GET("/applications", cfg.ApplicationHandler.List)
		api.GET("/applications/:id", cfg.ApplicationHandler.GetByID)
		api.PATCH("/applications/:id", cfg.ApplicationHandler.Update)
		api.DELETE("/applications/:id", cfg.ApplicationHandler.Delete)

		api.POST("/applications/:id/notes", cfg.ApplicationHandler.AddNote)
		api.GET("/applications/:id/notes", cfg.ApplicationHandler.ListNotes)
		api.POST("/applications/:id/documents", cfg.ApplicationHandler.AddDocument)
		api.GET("/applications/:id/documents", cfg.ApplicationHandler.ListDocuments)
		api.GET("/applications/:id/servicing", cfg.ApplicationHandler.GetServicing)

		api.POST("/applications/:id/funding-calculations", cfg.FundingHandler.Calculate)
		api.GET("/applications/:id/funding-calculations", cfg.FundingHandler.History)
	}

	return router
}
