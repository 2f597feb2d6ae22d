package app

import (
	"gorm.io/gorm"

	repoleads "github.com/yungbote/leadbridge-backend/internal/data/repos/leads"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

type Repos struct {
	LeadWriter *repoleads.BatchWriter
	IngestRuns repoleads.IngestRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		LeadWriter: repoleads.NewBatchWriter(db, log),
		IngestRuns: repoleads.NewIngestRunRepo(db, log),
	}
}
