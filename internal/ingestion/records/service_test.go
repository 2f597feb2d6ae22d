package records_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	repoleads "github.com/yungbote/leadbridge-backend/internal/data/repos/leads"
	"github.com/yungbote/leadbridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/leadbridge-backend/internal/domain/leads"
	"github.com/yungbote/leadbridge-backend/internal/ingestion/records"
)

func gstWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"GSTIN", "Legal Name", "Registration Date", "Business Nature"},
		{"27AAAAA0000A1Z5", "Acme Traders", 45000, "['Retail', 'Wholesale']"},
		{"", "No GSTIN Pvt Ltd", 45001, "Retail"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		vals := r
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func mcaCSV(n int) []byte {
	var b strings.Builder
	b.WriteString("Company,CIN,DIN,DATE OF REGISTRATION\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "Company %d,U%05d,D%05d,15/03/2024\n", i, i, i)
	}
	return []byte(b.String())
}

func newTestService(t *testing.T, wrap func(records.BatchWriter) records.BatchWriter) (records.Service, func(table string) int64) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	writer := repoleads.NewBatchWriter(db, log)
	var bw records.BatchWriter = writer
	if wrap != nil {
		bw = wrap(writer)
	}
	runs := repoleads.NewIngestRunRepo(db, log)
	svc := records.NewService(log, records.NewEngine(bw, log), runs)
	count := func(table string) int64 { return testutil.CountRows(t, db, table) }
	return svc, count
}

func TestUploadGSTWorkbook(t *testing.T) {
	svc, count := newTestService(t, nil)
	ctx := context.Background()

	res, err := svc.Upload(ctx, records.UploadInput{Filename: "gst.xlsx", Data: gstWorkbook(t), Kind: "gst", OperatorID: "op-1"})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.TotalRecords != 2 || res.InsertedRecords != 1 || res.RejectedRecords != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if n := count("gst_basics"); n != 1 {
		t.Fatalf("gst_basics: got=%d want=1", n)
	}
	if n := count("gst_business_natures"); n != 2 {
		t.Fatalf("gst_business_natures: got=%d want=2", n)
	}

	if res.RunID == nil {
		t.Fatalf("expected a run id")
	}
	run, err := svc.GetRun(ctx, *res.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status != types.IngestRunSucceeded || run.ProcessedRecords != 1 || run.BatchesCommitted != 1 || run.OperatorID != "op-1" {
		t.Fatalf("unexpected run: %+v", run)
	}
	var rejected []records.Rejection
	if err := json.Unmarshal(run.RejectedRows, &rejected); err != nil {
		t.Fatalf("decode rejected rows: %v", err)
	}
	if len(rejected) != 1 || rejected[0].Row != 3 || rejected[0].Missing[0] != "GSTIN" {
		t.Fatalf("unexpected rejected rows: %+v", rejected)
	}

	// Re-uploading the same sheet changes nothing.
	if _, err := svc.Upload(ctx, records.UploadInput{Filename: "gst.xlsx", Data: gstWorkbook(t), Kind: "GST"}); err != nil {
		t.Fatalf("second Upload: %v", err)
	}
	if count("gst_basics") != 1 || count("gst_business_natures") != 2 {
		t.Fatalf("re-upload must be idempotent")
	}
}

func TestUploadBatchesLargeCSV(t *testing.T) {
	svc, count := newTestService(t, nil)
	res, err := svc.Upload(context.Background(), records.UploadInput{Filename: "mca.csv", Data: mcaCSV(1200), Kind: "mca"})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.TotalRecords != 1200 || res.InsertedRecords != 1200 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if n := count("mca_new_leads"); n != 1200 {
		t.Fatalf("mca_new_leads: got=%d want=1200", n)
	}
	run, err := svc.GetRun(context.Background(), *res.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.BatchesCommitted != 3 {
		t.Fatalf("batches committed: got=%d want=3", run.BatchesCommitted)
	}
}

type failSecondBatch struct {
	inner records.BatchWriter
	calls int
}

func (f *failSecondBatch) WriteBatch(ctx context.Context, spec *records.Spec, batch []records.Record) error {
	f.calls++
	if f.calls == 2 {
		return errors.New("connection reset by peer")
	}
	return f.inner.WriteBatch(ctx, spec, batch)
}

func TestUploadFailureKeepsCommittedBatches(t *testing.T) {
	svc, count := newTestService(t, func(w records.BatchWriter) records.BatchWriter { return &failSecondBatch{inner: w} })
	ctx := context.Background()

	_, err := svc.Upload(ctx, records.UploadInput{Filename: "mca.csv", Data: mcaCSV(1200), Kind: "mca"})
	if !errors.Is(err, records.ErrBatchExecution) {
		t.Fatalf("expected ErrBatchExecution, got %v", err)
	}
	if n := count("mca_new_leads"); n != 500 {
		t.Fatalf("first batch must stay committed: got=%d want=500", n)
	}

	runs, err := svc.ListRuns(ctx, "mca", 5)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
	run := runs[0]
	if run.Status != types.IngestRunFailed || run.ProcessedRecords != 500 || run.BatchesCommitted != 1 || run.Error == "" {
		t.Fatalf("unexpected failed run: %+v", run)
	}
}

func TestUploadRejectsBeforeParsing(t *testing.T) {
	svc, count := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, records.UploadInput{Filename: "leads.pdf", Data: []byte("%PDF"), Kind: "pan"}); !errors.Is(err, records.ErrUnknownRecordKind) {
		t.Fatalf("kind must be checked first, got %v", err)
	}
	if _, err := svc.Upload(ctx, records.UploadInput{Filename: "leads.pdf", Data: []byte("%PDF"), Kind: "gst"}); !errors.Is(err, records.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := svc.Upload(ctx, records.UploadInput{Filename: "gst.xlsx", Kind: "gst"}); !errors.Is(err, records.ErrEmptyUpload) {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
	if n := count("ingest_runs"); n != 0 {
		t.Fatalf("rejected uploads must not open runs, got %d", n)
	}
	if _, err := svc.ListRuns(ctx, "pan", 5); !errors.Is(err, records.ErrUnknownRecordKind) {
		t.Fatalf("ListRuns with unknown kind: got %v", err)
	}
}

func TestUploadIgnoresCallerCancellation(t *testing.T) {
	svc, count := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.Upload(ctx, records.UploadInput{Filename: "mca.csv", Data: mcaCSV(600), Kind: "mca"})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.InsertedRecords != 600 || count("mca_new_leads") != 600 {
		t.Fatalf("upload must run to completion: %+v", res)
	}
}
