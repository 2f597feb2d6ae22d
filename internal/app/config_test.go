package app

import (
	"testing"
	"time"

	httpH "github.com/yungbote/leadbridge-backend/internal/http/handlers"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "AUTO_MIGRATE", "JWT_SECRET_KEY", "UPLOAD_MAX_BYTES", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(logger.Nop())
	if cfg.Port != "8080" || !cfg.AutoMigrate || cfg.JWTSecretKey != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.UploadMaxBytes != httpH.DefaultUploadMaxBytes || cfg.ShutdownTimeout != 15*time.Second || cfg.AllowedOrigins != nil {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("UPLOAD_MAX_BYTES", "-5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("SHUTDOWN_TIMEOUT", "3")

	cfg := LoadConfig(logger.Nop())
	if cfg.Port != "9090" || cfg.AutoMigrate {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.UploadMaxBytes != httpH.DefaultUploadMaxBytes {
		t.Fatalf("non-positive limit should fall back, got %d", cfg.UploadMaxBytes)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("origins: %v", cfg.AllowedOrigins)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("shutdown timeout: %v", cfg.ShutdownTimeout)
	}
}
