package app

import (
	"time"

	"github.com/yungbote/leadbridge-backend/internal/data/db"
	httpH "github.com/yungbote/leadbridge-backend/internal/http/handlers"
	"github.com/yungbote/leadbridge-backend/internal/observability"
	"github.com/yungbote/leadbridge-backend/internal/platform/envutil"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

type Config struct {
	Port            string
	AutoMigrate     bool
	JWTSecretKey    string
	UploadMaxBytes  int64
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	Postgres db.PostgresConfig
	Otel     observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.String("PORT", "8080"),
		AutoMigrate:     envutil.Bool("AUTO_MIGRATE", true),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", ""),
		UploadMaxBytes:  envutil.Int64("UPLOAD_MAX_BYTES", httpH.DefaultUploadMaxBytes),
		AllowedOrigins:  envutil.List("CORS_ALLOWED_ORIGINS", nil),
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 15*time.Second),
		Postgres:        db.PostgresConfigFromEnv(),
		Otel:            observability.OtelConfigFromEnv(),
	}
	if cfg.JWTSecretKey == "" {
		log.Warn("JWT_SECRET_KEY not set; record routes are unauthenticated")
	}
	if cfg.UploadMaxBytes <= 0 {
		cfg.UploadMaxBytes = httpH.DefaultUploadMaxBytes
	}
	return cfg
}
