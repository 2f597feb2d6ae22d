package records

import (
	"errors"
	"fmt"

	"github.com/yungbote/leadbridge-backend/internal/ingestion/spreadsheet"
)

var (
	ErrUnsupportedFormat = spreadsheet.ErrUnsupportedFormat
	ErrUnknownRecordKind = errors.New("invalid record type")
	ErrBatchExecution    = errors.New("batch upsert failed")
	ErrEmptyUpload       = errors.New("no file uploaded")
	ErrRunNotFound       = errors.New("ingest run not found")
)

// BatchError reports the batch that failed. Batches before it were
// committed and stay committed.
type BatchError struct {
	// Batch is the 0-based index of the failing batch.
	Batch int
	// Committed counts records in batches that committed before the failure.
	Committed int
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d (after %d committed records): %v", e.Batch, e.Committed, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

func (e *BatchError) Is(target error) bool { return target == ErrBatchExecution }
