package leads

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/yungbote/leadbridge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/leadbridge-backend/internal/domain/leads"
	"github.com/yungbote/leadbridge-backend/internal/ingestion/records"
)

func gstRecord(gstin, legal string, natures ...string) records.Record {
	spec, _ := records.Lookup("gst")
	vals := map[string]any{}
	for _, c := range spec.Columns {
		vals[c.Name] = nil
	}
	vals["gstin"] = gstin
	if legal != "" {
		vals["legal_name"] = legal
	}
	vals["registration_date"] = "2024-03-15"
	return records.Record{Values: vals, BusinessNatures: natures}
}

func TestBatchWriterUpsertIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	w := NewBatchWriter(db, testutil.Logger(t))
	spec, _ := records.Lookup("gst")

	batch := []records.Record{
		gstRecord("27AAAAA0000A1Z5", "Acme Traders", "Retail", "Wholesale"),
		gstRecord("29BBBBB1111B1Z6", "", "Retail"),
	}
	for i := 0; i < 2; i++ {
		if err := w.WriteBatch(ctx, spec, batch); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	if n := testutil.CountRows(t, db, "gst_basics"); n != 2 {
		t.Fatalf("gst_basics rows: got=%d want=2", n)
	}
	if n := testutil.CountRows(t, db, "gst_business_natures"); n != 3 {
		t.Fatalf("gst_business_natures rows: got=%d want=3", n)
	}

	var got types.GSTBasic
	if err := db.Where("gstin = ?", "27AAAAA0000A1Z5").First(&got).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.LegalName == nil || *got.LegalName != "Acme Traders" {
		t.Fatalf("legal_name: got %v", got.LegalName)
	}
	if got.RegistrationDate == nil || got.RegistrationDate.Format("2006-01-02") != "2024-03-15" {
		t.Fatalf("registration_date: got %v", got.RegistrationDate)
	}
}

func TestBatchWriterLastWriteWinsAndKeepsCreatedAt(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	w := NewBatchWriter(db, testutil.Logger(t))
	spec, _ := records.Lookup("gst")

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return first }
	if err := w.WriteBatch(ctx, spec, []records.Record{gstRecord("27AAAAA0000A1Z5", "Old Name", "Retail")}); err != nil {
		t.Fatalf("first write: %v", err)
	}

	second := first.Add(24 * time.Hour)
	w.now = func() time.Time { return second }
	if err := w.WriteBatch(ctx, spec, []records.Record{gstRecord("27AAAAA0000A1Z5", "New Name", "Works Contract")}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	var got types.GSTBasic
	if err := db.Where("gstin = ?", "27AAAAA0000A1Z5").First(&got).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.LegalName == nil || *got.LegalName != "New Name" {
		t.Fatalf("expected last write to win, got %v", got.LegalName)
	}
	if !got.CreatedAt.Equal(first) {
		t.Fatalf("created_at must survive an upsert: got %v want %v", got.CreatedAt, first)
	}
	if !got.UpdatedAt.Equal(second) {
		t.Fatalf("updated_at must move: got %v want %v", got.UpdatedAt, second)
	}

	var tags []types.GSTBusinessNature
	if err := db.Where("gstin = ?", "27AAAAA0000A1Z5").Order("business_nature").Find(&tags).Error; err != nil {
		t.Fatalf("load tags: %v", err)
	}
	if len(tags) != 2 || tags[0].BusinessNature != "Retail" || tags[1].BusinessNature != "Works Contract" {
		t.Fatalf("tags must accumulate, got %+v", tags)
	}
}

func TestBatchWriterCollapsesDuplicateKeysInBatch(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	w := NewBatchWriter(db, testutil.Logger(t))
	spec, _ := records.Lookup("mca")

	rec := func(cin, din, company string) records.Record {
		vals := map[string]any{}
		for _, c := range spec.Columns {
			vals[c.Name] = nil
		}
		vals["cin"], vals["din"], vals["company"] = cin, din, company
		return records.Record{Values: vals}
	}
	batch := []records.Record{
		rec("U1", "D1", "First"),
		rec("U1", "D2", "Other director"),
		rec("U1", "D1", "Second"),
	}
	if err := w.WriteBatch(ctx, spec, batch); err != nil {
		t.Fatalf("write: %v", err)
	}
	if n := testutil.CountRows(t, db, "mca_new_leads"); n != 2 {
		t.Fatalf("mca_new_leads rows: got=%d want=2", n)
	}
	var got types.MCANewLead
	if err := db.Where("cin = ? AND din = ?", "U1", "D1").First(&got).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Company != "Second" {
		t.Fatalf("expected last occurrence to win, got %q", got.Company)
	}
}

func TestBatchWriterIEC(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	w := NewBatchWriter(db, testutil.Logger(t))
	spec, _ := records.Lookup("iec")

	batch := make([]records.Record, 0, 3)
	for i := 0; i < 3; i++ {
		vals := map[string]any{}
		for _, c := range spec.Columns {
			vals[c.Name] = nil
		}
		vals["iec_code"] = fmt.Sprintf("05123456%02d", i)
		vals["issue_date"] = "2023-03-15"
		batch = append(batch, records.Record{Values: vals})
	}
	if err := w.WriteBatch(ctx, spec, batch); err != nil {
		t.Fatalf("write: %v", err)
	}
	if n := testutil.CountRows(t, db, "iec_leads"); n != 3 {
		t.Fatalf("iec_leads rows: got=%d want=3", n)
	}
	if n := testutil.CountRows(t, db, "gst_business_natures"); n != 0 {
		t.Fatalf("iec must not fan out natures, got %d tag rows", n)
	}
}
