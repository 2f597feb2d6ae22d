package records

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"gorm.io/gorm/schema"

	"github.com/yungbote/leadbridge-backend/internal/ingestion/spreadsheet"
)

func row(n int, cells map[string]any) spreadsheet.Row {
	return spreadsheet.Row{Number: n, Cells: cells}
}

func TestLookup(t *testing.T) {
	for _, raw := range []string{"mca", "IEC", " gst "} {
		if _, err := Lookup(raw); err != nil {
			t.Fatalf("Lookup(%q): %v", raw, err)
		}
	}
	for _, raw := range []string{"", "pan", "mcax"} {
		if _, err := Lookup(raw); !errors.Is(err, ErrUnknownRecordKind) {
			t.Fatalf("Lookup(%q): expected ErrUnknownRecordKind, got %v", raw, err)
		}
	}
}

func TestEveryKindHasConsistentSpec(t *testing.T) {
	cache := &sync.Map{}
	for _, kind := range Kinds() {
		spec, err := Lookup(string(kind))
		if err != nil {
			t.Fatalf("kind %s not registered: %v", kind, err)
		}
		s, err := schema.Parse(spec.Model, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("%s: parse model: %v", kind, err)
		}
		if s.Table != spec.Table {
			t.Fatalf("%s: model table %q != spec table %q", kind, s.Table, spec.Table)
		}
		cols := map[string]bool{}
		for _, c := range spec.Columns {
			if cols[c.Name] {
				t.Fatalf("%s: duplicate column %s", kind, c.Name)
			}
			cols[c.Name] = true
			if _, ok := s.FieldsByDBName[c.Name]; !ok {
				t.Fatalf("%s: column %s missing from model", kind, c.Name)
			}
		}
		for _, k := range spec.KeyColumns {
			if !cols[k] {
				t.Fatalf("%s: key column %s not in schema", kind, k)
			}
		}
		if got := len(spec.UpdateColumns()) + len(spec.KeyColumns); got != len(spec.Columns) {
			t.Fatalf("%s: update+key columns = %d, want %d", kind, got, len(spec.Columns))
		}
	}
}

func TestValidateKeepsOrderAndDropsMissingMandatory(t *testing.T) {
	spec, _ := Lookup("mca")
	rows := []spreadsheet.Row{
		row(2, map[string]any{"CIN": "U1", "DIN": "D1"}),
		row(3, map[string]any{"CIN": "U2"}),
		row(4, map[string]any{"CIN": "U3", "DIN": "   "}),
		row(5, map[string]any{"cin": "U4", "din": float64(12345)}),
		row(6, map[string]any{"DIN": "D6", "CIN": nil}),
	}

	kept, rejected := Partition(spec, rows)
	if len(kept) != 2 || kept[0].Number != 2 || kept[1].Number != 5 {
		t.Fatalf("unexpected kept rows: %+v", kept)
	}
	want := []Rejection{
		{Row: 3, Missing: []string{"DIN"}},
		{Row: 4, Missing: []string{"DIN"}},
		{Row: 6, Missing: []string{"CIN"}},
	}
	if !reflect.DeepEqual(rejected, want) {
		t.Fatalf("rejections: got %+v want %+v", rejected, want)
	}
	if got := Validate(spec, rows); len(got) != 2 {
		t.Fatalf("Validate should agree with Partition, got %d rows", len(got))
	}
}

func TestTransformMCA(t *testing.T) {
	spec, _ := Lookup("mca")
	recs := Transform(spec, []spreadsheet.Row{
		row(2, map[string]any{
			"CIN":                  " U12345MH2024PTC000001 ",
			"DIN":                  float64(9876543),
			"DATE OF REGISTRATION": "15/03/2024",
			"Date Of Birth":        float64(30000),
			"Mobile":               float64(9876543210),
			"PAIDUP CAPITAL":       100000.5,
			"City":                 "  ",
		}),
	})
	if len(recs) != 1 {
		t.Fatalf("expected one record, got %d", len(recs))
	}
	v := recs[0].Values
	checks := map[string]any{
		"company":              "",
		"cin":                  "U12345MH2024PTC000001",
		"din":                  "9876543",
		"date_of_registration": "2024-03-15",
		"date_of_birth":        "1982-02-18",
		"mobile":               "9876543210",
		"paidup_capital":       "100000.5",
		"city":                 nil,
		"email":                nil,
	}
	for col, want := range checks {
		if got := v[col]; got != want {
			t.Fatalf("%s: got %#v want %#v", col, got, want)
		}
	}
	if len(v) != len(spec.Columns) {
		t.Fatalf("record should carry every column: got %d want %d", len(v), len(spec.Columns))
	}
	if recs[0].BusinessNatures != nil {
		t.Fatalf("mca records do not fan out natures")
	}
}

func TestTransformGSTNatures(t *testing.T) {
	spec, _ := Lookup("gst")
	recs := Transform(spec, []spreadsheet.Row{
		row(2, map[string]any{"GSTIN": "27AAAAA0000A1Z5", "Business Nature": "['Retail', 'Wholesale']", "Registration Date": "2024-03-15"}),
		row(3, map[string]any{"GSTIN": "29BBBBB1111B1Z6"}),
	})
	if got := recs[0].BusinessNatures; !reflect.DeepEqual(got, []string{"Retail", "Wholesale"}) {
		t.Fatalf("natures: got %q", got)
	}
	if got := recs[0].Values["registration_date"]; got != "2024-03-15" {
		t.Fatalf("registration_date: got %#v", got)
	}
	if len(recs[1].BusinessNatures) != 0 {
		t.Fatalf("missing natures should yield none, got %q", recs[1].BusinessNatures)
	}
	if _, ok := recs[0].Values["business_nature"]; ok {
		t.Fatalf("natures must not leak into the main row")
	}
}

func TestRecordKey(t *testing.T) {
	spec, _ := Lookup("mca")
	a := Record{Values: map[string]any{"cin": "U1", "din": "D1"}}
	b := Record{Values: map[string]any{"cin": "U1D", "din": "1"}}
	if a.Key(spec) == b.Key(spec) {
		t.Fatalf("composite keys must not collide on concatenation")
	}
}

func TestCoerceText(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{nil, "", false},
		{" x ", "x", true},
		{"", "", false},
		{float64(9876543210), "9876543210", true},
		{1.5e21, "1500000000000000000000", true},
		{0.1, "0.1", true},
		{true, "true", true},
		{int64(7), "7", true},
	}
	for _, tc := range cases {
		got, ok := CoerceText(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("CoerceText(%v) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
