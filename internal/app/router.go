package app

import (
	httpserver "github.com/yungbote/leadbridge-backend/internal/http"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *httpserver.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:            log,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.AllowedOrigins,
		AuthMiddleware: middleware.Auth,
		HealthHandler:  handlers.Health,
		RecordsHandler: handlers.Records,
	})
}
