package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/leadbridge-backend/internal/http/response"
	"github.com/yungbote/leadbridge-backend/internal/ingestion/records"
	"github.com/yungbote/leadbridge-backend/internal/platform/apierr"
	"github.com/yungbote/leadbridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

// DefaultUploadMaxBytes caps a single uploaded file.
const DefaultUploadMaxBytes int64 = 15 << 20

// Driver errors stay in the logs; clients get these.
var (
	errBatchUpsertFailed = errors.New("batch upsert failed")
	errIngestionFailed   = errors.New("record ingestion failed")
)

// multipart framing allowance on top of the file itself
const formOverheadBytes int64 = 1 << 20

type RecordsHandler struct {
	log      *logger.Logger
	svc      records.Service
	maxBytes int64
}

func NewRecordsHandler(log *logger.Logger, svc records.Service, maxBytes int64) *RecordsHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}
	return &RecordsHandler{
		log:      log.With("handler", "RecordsHandler"),
		svc:      svc,
		maxBytes: maxBytes,
	}
}

// POST /api/v1/records/upload
func (h *RecordsHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+formOverheadBytes)
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", fmt.Errorf("upload exceeds %d bytes", h.maxBytes))
			return
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}
	defer func() { _ = c.Request.MultipartForm.RemoveAll() }()

	kind := strings.TrimSpace(c.Request.FormValue("type"))
	if _, err := records.Lookup(kind); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_record_type", err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", records.ErrEmptyUpload)
		return
	}
	if fh.Size > h.maxBytes {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", fmt.Errorf("upload exceeds %d bytes", h.maxBytes))
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.log.Error("cannot open uploaded file", "error", err)
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		h.log.Error("cannot read uploaded file", "error", err)
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}

	res, err := h.svc.Upload(c.Request.Context(), records.UploadInput{
		Filename:   fh.Filename,
		Data:       data,
		Kind:       kind,
		OperatorID: ctxutil.OperatorID(c.Request.Context()),
	})
	if err != nil {
		ae := uploadError(err)
		if ae.Status >= http.StatusInternalServerError {
			h.log.Error("record upload failed", append(ctxutil.LogFields(c.Request.Context()), "kind", kind, "error", err)...)
		}
		response.RespondAPIError(c, ae, "ingestion_failed")
		return
	}
	response.RespondOK(c, res)
}

// GET /api/v1/records/runs/:id
func (h *RecordsHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_run_id", err)
		return
	}
	run, err := h.svc.GetRun(c.Request.Context(), id)
	if errors.Is(err, records.ErrRunNotFound) {
		response.RespondError(c, http.StatusNotFound, "run_not_found", err)
		return
	}
	if err != nil {
		h.log.Error("load ingest run failed", "run_id", id, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_run_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"run": run})
}

// GET /api/v1/records/runs?kind=&limit=
func (h *RecordsHandler) ListRuns(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", fmt.Errorf("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	runs, err := h.svc.ListRuns(c.Request.Context(), strings.TrimSpace(c.Query("kind")), limit)
	if errors.Is(err, records.ErrUnknownRecordKind) {
		response.RespondError(c, http.StatusBadRequest, "invalid_record_type", err)
		return
	}
	if err != nil {
		h.log.Error("list ingest runs failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_runs_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"runs": runs})
}

func uploadError(err error) *apierr.Error {
	switch {
	case errors.Is(err, records.ErrUnknownRecordKind):
		return apierr.New(http.StatusBadRequest, "invalid_record_type", err)
	case errors.Is(err, records.ErrEmptyUpload):
		return apierr.New(http.StatusBadRequest, "missing_file", err)
	case errors.Is(err, records.ErrUnsupportedFormat):
		return apierr.New(http.StatusBadRequest, "unsupported_file", records.ErrUnsupportedFormat)
	case errors.Is(err, records.ErrBatchExecution):
		return apierr.New(http.StatusInternalServerError, "ingestion_failed", errBatchUpsertFailed)
	default:
		return apierr.New(http.StatusInternalServerError, "ingestion_failed", errIngestionFailed)
	}
}
