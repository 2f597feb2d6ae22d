package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/leadbridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/leadbridge-backend/internal/http/middleware"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware
	HealthHandler  *httpH.HealthHandler
	RecordsHandler *httpH.RecordsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	v1 := r.Group("/api/v1")
	records := v1.Group("/records")
	{
		records.Use(cfg.AuthMiddleware.RequireAuth())

		if cfg.RecordsHandler != nil {
			records.POST("/upload", cfg.RecordsHandler.Upload)
			records.GET("/runs", cfg.RecordsHandler.ListRuns)
			records.GET("/runs/:id", cfg.RecordsHandler.GetRun)
		}
	}

	return r
}
