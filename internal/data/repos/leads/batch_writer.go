package leads

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/leadbridge-backend/internal/domain/leads"
	"github.com/yungbote/leadbridge-backend/internal/ingestion/records"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

// BatchWriter upserts canonical records with one INSERT ... ON CONFLICT
// statement per batch and fans GST business natures out into their own
// table inside the same transaction.
type BatchWriter struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewBatchWriter(db *gorm.DB, baseLog *logger.Logger) *BatchWriter {
	return &BatchWriter{
		db:  db,
		log: baseLog.With("repo", "LeadBatchWriter"),
		now: func() time.Time { return time.Now().UTC() },
	}
}

var _ records.BatchWriter = (*BatchWriter)(nil)

func (w *BatchWriter) WriteBatch(ctx context.Context, spec *records.Spec, batch []records.Record) error {
	if len(batch) == 0 {
		return nil
	}
	now := w.now()
	rows := upsertRows(spec, batch, now)
	natures := naturePairs(spec, batch, now)

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keys := make([]clause.Column, 0, len(spec.KeyColumns))
		for _, k := range spec.KeyColumns {
			keys = append(keys, clause.Column{Name: k})
		}
		updates := append(spec.UpdateColumns(), "updated_at")

		if err := tx.Table(spec.Table).
			Clauses(clause.OnConflict{
				Columns:   keys,
				DoUpdates: clause.AssignmentColumns(updates),
			}).
			Create(rows).Error; err != nil {
			return fmt.Errorf("upsert %s: %w", spec.Table, err)
		}

		for _, chunk := range records.Chunk(natures, records.MaxBatchSize) {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "gstin"}, {Name: "business_nature"}},
				DoNothing: true,
			}).Create(&chunk).Error; err != nil {
				return fmt.Errorf("insert business natures: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		fields := []interface{}{"table", spec.Table, "rows", len(rows), "natures", len(natures), "error", err}
		w.log.Warn("lead batch rolled back", append(fields, pgErrorFields(err)...)...)
	}
	return err
}

// upsertRows builds one column map per distinct natural key. A key seen
// twice keeps the values of its last occurrence: Postgres refuses to
// update the same row twice in one ON CONFLICT statement.
func upsertRows(spec *records.Spec, batch []records.Record, now time.Time) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(batch))
	pos := make(map[string]int, len(batch))
	for _, rec := range batch {
		row := make(map[string]interface{}, len(spec.Columns)+2)
		for _, col := range spec.Columns {
			row[col.Name] = rec.Values[col.Name]
		}
		row["created_at"] = now
		row["updated_at"] = now

		key := rec.Key(spec)
		if i, seen := pos[key]; seen {
			rows[i] = row
			continue
		}
		pos[key] = len(rows)
		rows = append(rows, row)
	}
	return rows
}

func naturePairs(spec *records.Spec, batch []records.Record, now time.Time) []types.GSTBusinessNature {
	if !spec.FansOutNatures() {
		return nil
	}
	var out []types.GSTBusinessNature
	seen := map[[2]string]struct{}{}
	for _, rec := range batch {
		gstin, _ := rec.Values["gstin"].(string)
		if gstin == "" {
			continue
		}
		for _, tag := range rec.BusinessNatures {
			if tag == "" {
				continue
			}
			k := [2]string{gstin, tag}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, types.GSTBusinessNature{GSTIN: gstin, BusinessNature: tag, CreatedAt: now})
		}
	}
	return out
}
