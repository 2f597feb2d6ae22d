package leads

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/leadbridge-backend/internal/domain/leads"
	"github.com/yungbote/leadbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

type IngestRunRepo interface {
	Create(dbc dbctx.Context, run *types.IngestRun) error
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.IngestRun, error)
	ListRecent(dbc dbctx.Context, kind string, limit int) ([]*types.IngestRun, error)
}

type ingestRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngestRunRepo(db *gorm.DB, baseLog *logger.Logger) IngestRunRepo {
	return &ingestRunRepo{db: db, log: baseLog.With("repo", "IngestRunRepo")}
}

func (r *ingestRunRepo) Create(dbc dbctx.Context, run *types.IngestRun) error {
	if run == nil {
		return nil
	}
	return dbc.Conn(r.db).Create(run).Error
}

func (r *ingestRunRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return dbc.Conn(r.db).
		Model(&types.IngestRun{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// GetByID returns gorm.ErrRecordNotFound when no run matches.
func (r *ingestRunRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.IngestRun, error) {
	var run types.IngestRun
	if err := dbc.Conn(r.db).Where("id = ?", id).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRecent returns the newest runs first; kind "" matches every kind.
func (r *ingestRunRepo) ListRecent(dbc dbctx.Context, kind string, limit int) ([]*types.IngestRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := dbc.Conn(r.db).Order("created_at DESC").Limit(limit)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var out []*types.IngestRun
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
