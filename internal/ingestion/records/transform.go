package records

import "github.com/yungbote/leadbridge-backend/internal/ingestion/spreadsheet"

// Record is one canonical row ready for the upsert engine.
type Record struct {
	// Values holds every schema column: a string, or nil for null.
	Values map[string]any
	// BusinessNatures is only set for kinds that fan out natures.
	BusinessNatures []string
}

// Key returns the natural-key values of r joined for map lookups.
func (r Record) Key(spec *Spec) string {
	var key string
	for i, col := range spec.KeyColumns {
		if i > 0 {
			key += "\x1f"
		}
		if s, ok := r.Values[col].(string); ok {
			key += s
		}
	}
	return key
}

// Transform maps validated rows onto spec's canonical schema, in order.
func Transform(spec *Spec, rows []spreadsheet.Row) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, transformRow(spec, row))
	}
	return out
}

func transformRow(spec *Spec, row spreadsheet.Row) Record {
	rec := Record{Values: make(map[string]any, len(spec.Columns))}
	for _, col := range spec.Columns {
		raw, _ := row.Get(col.Source)
		var (
			s  string
			ok bool
		)
		switch col.Type {
		case ColumnDate:
			s, ok = NormalizeDate(raw)
		default:
			s, ok = CoerceText(raw)
		}
		if !ok {
			if def, has := spec.Defaults[col.Name]; has {
				rec.Values[col.Name] = def
				continue
			}
			rec.Values[col.Name] = nil
			continue
		}
		rec.Values[col.Name] = s
	}
	if spec.FansOutNatures() {
		raw, _ := row.Get(spec.NaturesSource)
		rec.BusinessNatures = ParseBusinessNatures(raw)
	}
	return rec
}
