package app

import (
	httpH "github.com/yungbote/leadbridge-backend/internal/http/handlers"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Records *httpH.RecordsHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services, ping httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(ping),
		Records: httpH.NewRecordsHandler(log, services.Records, cfg.UploadMaxBytes),
	}
}
