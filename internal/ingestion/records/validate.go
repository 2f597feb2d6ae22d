package records

import "github.com/yungbote/leadbridge-backend/internal/ingestion/spreadsheet"

// Rejection describes a row dropped by validation.
type Rejection struct {
	Row     int      `json:"row"`
	Missing []string `json:"missing"`
}

// Validate keeps, in order, the rows that carry every mandatory field of
// spec. A field holding only whitespace counts as missing.
func Validate(spec *Spec, rows []spreadsheet.Row) []spreadsheet.Row {
	kept, _ := Partition(spec, rows)
	return kept
}

// Partition is Validate plus a report of what was dropped and why.
func Partition(spec *Spec, rows []spreadsheet.Row) ([]spreadsheet.Row, []Rejection) {
	kept := make([]spreadsheet.Row, 0, len(rows))
	var rejected []Rejection
	for _, row := range rows {
		var missing []string
		for _, field := range spec.Mandatory {
			v, ok := row.Get(field)
			if !ok || isBlank(v) {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			rejected = append(rejected, Rejection{Row: row.Number, Missing: missing})
			continue
		}
		kept = append(kept, row)
	}
	return kept, rejected
}
