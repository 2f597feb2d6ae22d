package leads

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	IngestRunRunning   = "running"
	IngestRunSucceeded = "succeeded"
	IngestRunFailed    = "failed"
)

// IngestRun records one spreadsheet upload: what came in, what was dropped
// by validation, and how far the batched upsert got before it finished or
// failed.
type IngestRun struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Kind       string    `gorm:"column:kind;not null;index" json:"kind"`
	FileName   string    `gorm:"column:file_name;not null" json:"file_name"`
	OperatorID string    `gorm:"column:operator_id;index" json:"operator_id,omitempty"`
	Status     string    `gorm:"column:status;not null;index" json:"status"`

	TotalRecords     int `gorm:"column:total_records;not null;default:0" json:"total_records"`
	AcceptedRecords  int `gorm:"column:accepted_records;not null;default:0" json:"accepted_records"`
	RejectedRecords  int `gorm:"column:rejected_records;not null;default:0" json:"rejected_records"`
	ProcessedRecords int `gorm:"column:processed_records;not null;default:0" json:"processed_records"`
	BatchesCommitted int `gorm:"column:batches_committed;not null;default:0" json:"batches_committed"`

	Error string `gorm:"column:error" json:"error,omitempty"`
	// RejectedRows is a JSON array of {"row": n, "missing": [...]}.
	RejectedRows datatypes.JSON `gorm:"column:rejected_rows" json:"rejected_rows"`

	FinishedAt *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null;index" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (IngestRun) TableName() string { return "ingest_runs" }

func (r *IngestRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
