package app

import (
	httpMW "github.com/yungbote/leadbridge-backend/internal/http/middleware"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

type Middleware struct {
	// Auth is nil when no signing secret is configured.
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey),
	}
}
