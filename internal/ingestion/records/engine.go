package records

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

// MaxBatchSize bounds the records written by one upsert statement.
const MaxBatchSize = 500

var tracer = otel.Tracer("github.com/yungbote/leadbridge-backend/internal/ingestion/records")

// BatchWriter persists one batch atomically: the batch is either fully
// written (including any business-nature fan-out) or not at all.
type BatchWriter interface {
	WriteBatch(ctx context.Context, spec *Spec, batch []Record) error
}

// BatchProgress is reported after each committed batch.
type BatchProgress struct {
	Batch     int
	Size      int
	Processed int
}

type ProgressFunc func(ctx context.Context, p BatchProgress)

type Engine struct {
	writer    BatchWriter
	log       *logger.Logger
	batchSize int
}

func NewEngine(writer BatchWriter, baseLog *logger.Logger) *Engine {
	return &Engine{
		writer:    writer,
		log:       baseLog.With("component", "UpsertEngine"),
		batchSize: MaxBatchSize,
	}
}

// Upsert writes records in consecutive batches of at most MaxBatchSize,
// strictly one after another. It returns the number of records handed to
// committed batches. A failing batch stops the run with a *BatchError;
// earlier batches are not rolled back.
func (e *Engine) Upsert(ctx context.Context, spec *Spec, records []Record, progress ProgressFunc) (int, error) {
	processed := 0
	for i, batch := range Chunk(records, e.batchSize) {
		if err := ctx.Err(); err != nil {
			return processed, &BatchError{Batch: i, Committed: processed, Err: err}
		}
		if err := e.writeBatch(ctx, spec, i, batch); err != nil {
			e.log.Error("batch upsert failed",
				"kind", string(spec.Kind),
				"batch", i,
				"size", len(batch),
				"committed", processed,
				"error", err,
			)
			return processed, &BatchError{Batch: i, Committed: processed, Err: err}
		}
		processed += len(batch)
		e.log.Debug("batch committed", "kind", string(spec.Kind), "batch", i, "size", len(batch), "processed", processed)
		if progress != nil {
			progress(ctx, BatchProgress{Batch: i, Size: len(batch), Processed: processed})
		}
	}
	return processed, nil
}

func (e *Engine) writeBatch(ctx context.Context, spec *Spec, index int, batch []Record) error {
	ctx, span := tracer.Start(ctx, "records.upsert_batch", trace.WithAttributes(
		attribute.String("records.kind", string(spec.Kind)),
		attribute.String("db.sql.table", spec.Table),
		attribute.Int("records.batch", index),
		attribute.Int("records.batch_size", len(batch)),
	))
	defer span.End()
	if err := e.writer.WriteBatch(ctx, spec, batch); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch upsert failed")
		return err
	}
	return nil
}

// Chunk splits records into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = MaxBatchSize
	}
	if len(items) == 0 {
		return nil
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}
