package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/leadbridge-backend/internal/domain/leads"
	"github.com/yungbote/leadbridge-backend/internal/ingestion/spreadsheet"
	"github.com/yungbote/leadbridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/leadbridge-backend/internal/platform/dbctx"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

// RunStore persists the ingest run ledger.
type RunStore interface {
	Create(dbc dbctx.Context, run *leads.IngestRun) error
	UpdateFields(dbc dbctx.Context, id uuid.UUID, fields map[string]any) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*leads.IngestRun, error)
	ListRecent(dbc dbctx.Context, kind string, limit int) ([]*leads.IngestRun, error)
}

type UploadInput struct {
	Filename   string
	Data       []byte
	Kind       string
	OperatorID string
}

type UploadResult struct {
	FileName        string     `json:"fileName"`
	TotalRecords    int        `json:"totalRecords"`
	InsertedRecords int        `json:"insertedRecords"`
	RejectedRecords int        `json:"rejectedRecords"`
	RunID           *uuid.UUID `json:"runId,omitempty"`
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
	GetRun(ctx context.Context, id uuid.UUID) (*leads.IngestRun, error)
	ListRuns(ctx context.Context, kind string, limit int) ([]*leads.IngestRun, error)
}

type service struct {
	log    *logger.Logger
	engine *Engine
	runs   RunStore
}

// NewService wires the pipeline. runs may be nil, in which case uploads
// are not recorded.
func NewService(baseLog *logger.Logger, engine *Engine, runs RunStore) Service {
	return &service{
		log:    baseLog.With("service", "RecordIngestService"),
		engine: engine,
		runs:   runs,
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	spec, err := Lookup(in.Kind)
	if err != nil {
		return nil, err
	}
	if len(in.Data) == 0 {
		return nil, ErrEmptyUpload
	}

	ctx, span := tracer.Start(ctx, "records.upload", trace.WithAttributes(
		attribute.String("records.kind", string(spec.Kind)),
		attribute.String("records.file_name", in.Filename),
		attribute.Int("records.file_bytes", len(in.Data)),
	))
	defer span.End()

	log := s.log.With(append([]interface{}{"kind", string(spec.Kind), "file_name", in.Filename}, ctxutil.LogFields(ctx)...)...)

	rows, err := spreadsheet.Read(in.Filename, in.Data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read spreadsheet")
		log.Warn("spreadsheet rejected", "error", err)
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}

	kept, rejected := Partition(spec, rows)
	recs := Transform(spec, kept)
	span.SetAttributes(
		attribute.Int("records.total", len(rows)),
		attribute.Int("records.accepted", len(kept)),
		attribute.Int("records.rejected", len(rejected)),
	)
	log.Info("spreadsheet parsed", "total", len(rows), "accepted", len(kept), "rejected", len(rejected))

	// Once parsing succeeded the write runs to completion even if the
	// caller goes away.
	ctx = context.WithoutCancel(ctx)
	run := s.startRun(ctx, log, spec, in, len(rows), len(kept), rejected)

	processed, err := s.engine.Upsert(ctx, spec, recs, func(ctx context.Context, p BatchProgress) {
		s.updateRun(ctx, log, run, map[string]any{
			"processed_records": p.Processed,
			"batches_committed": p.Batch + 1,
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert")
		s.finishRun(ctx, log, run, leads.IngestRunFailed, processed, err)
		return nil, err
	}
	s.finishRun(ctx, log, run, leads.IngestRunSucceeded, processed, nil)
	log.Info("upload ingested", "processed", processed)

	res := &UploadResult{
		FileName:        in.Filename,
		TotalRecords:    len(rows),
		InsertedRecords: processed,
		RejectedRecords: len(rejected),
	}
	if run != nil {
		id := run.ID
		res.RunID = &id
	}
	return res, nil
}

func (s *service) GetRun(ctx context.Context, id uuid.UUID) (*leads.IngestRun, error) {
	if s.runs == nil {
		return nil, ErrRunNotFound
	}
	run, err := s.runs.GetByID(dbctx.Of(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load ingest run: %w", err)
	}
	return run, nil
}

// ListRuns returns recent runs, newest first. kind may be empty; a
// non-empty kind must be registered.
func (s *service) ListRuns(ctx context.Context, kind string, limit int) ([]*leads.IngestRun, error) {
	if kind != "" {
		spec, err := Lookup(kind)
		if err != nil {
			return nil, err
		}
		kind = string(spec.Kind)
	}
	if s.runs == nil {
		return []*leads.IngestRun{}, nil
	}
	runs, err := s.runs.ListRecent(dbctx.Of(ctx), kind, limit)
	if err != nil {
		return nil, fmt.Errorf("list ingest runs: %w", err)
	}
	return runs, nil
}

// The run ledger is best effort: a failed write is logged and the upload
// carries on.

func (s *service) startRun(ctx context.Context, log *logger.Logger, spec *Spec, in UploadInput, total, accepted int, rejected []Rejection) *leads.IngestRun {
	if s.runs == nil {
		return nil
	}
	if rejected == nil {
		rejected = []Rejection{}
	}
	report, err := json.Marshal(rejected)
	if err != nil {
		report = []byte("[]")
	}
	run := &leads.IngestRun{
		ID:              uuid.New(),
		Kind:            string(spec.Kind),
		FileName:        in.Filename,
		OperatorID:      in.OperatorID,
		Status:          leads.IngestRunRunning,
		TotalRecords:    total,
		AcceptedRecords: accepted,
		RejectedRecords: len(rejected),
		RejectedRows:    datatypes.JSON(report),
	}
	if err := s.runs.Create(dbctx.Of(ctx), run); err != nil {
		log.Warn("ingest run not recorded", "error", err)
		return nil
	}
	return run
}

func (s *service) updateRun(ctx context.Context, log *logger.Logger, run *leads.IngestRun, fields map[string]any) {
	if run == nil {
		return
	}
	if err := s.runs.UpdateFields(dbctx.Of(ctx), run.ID, fields); err != nil {
		log.Warn("ingest run update failed", "run_id", run.ID.String(), "error", err)
	}
}

func (s *service) finishRun(ctx context.Context, log *logger.Logger, run *leads.IngestRun, status string, processed int, cause error) {
	if run == nil {
		return
	}
	fields := map[string]any{
		"status":            status,
		"processed_records": processed,
		"finished_at":       time.Now().UTC(),
	}
	if cause != nil {
		fields["error"] = cause.Error()
	}
	// A cancelled request still gets its final status written.
	s.updateRun(context.WithoutCancel(ctx), log, run, fields)
}
