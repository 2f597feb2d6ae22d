package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/leadbridge-backend/internal/domain/leads"
)

func SeedIngestRun(tb testing.TB, ctx context.Context, tx *gorm.DB, kind, status string) *types.IngestRun {
	tb.Helper()
	run := &types.IngestRun{
		ID:           uuid.New(),
		Kind:         kind,
		FileName:     kind + ".xlsx",
		Status:       status,
		RejectedRows: datatypes.JSON([]byte("[]")),
	}
	if err := tx.WithContext(ctx).Create(run).Error; err != nil {
		tb.Fatalf("seed ingest run: %v", err)
	}
	return run
}

// CountRows counts every row of table.
func CountRows(tb testing.TB, tx *gorm.DB, table string) int64 {
	tb.Helper()
	var n int64
	if err := tx.Table(table).Count(&n).Error; err != nil {
		tb.Fatalf("count %s: %v", table, err)
	}
	return n
}
