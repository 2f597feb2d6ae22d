package app

import (
	"github.com/yungbote/leadbridge-backend/internal/ingestion/records"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

type Services struct {
	Engine  *records.Engine
	Records records.Service
}

func wireServices(log *logger.Logger, repos Repos) Services {
	log.Info("Wiring services...")
	engine := records.NewEngine(repos.LeadWriter, log)
	return Services{
		Engine:  engine,
		Records: records.NewService(log, engine, repos.IngestRuns),
	}
}
