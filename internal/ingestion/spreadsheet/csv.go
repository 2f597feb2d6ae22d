package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readCSV decodes UTF-8 (with or without BOM) and BOM-marked UTF-16 text.
// All values stay strings.
func readCSV(data []byte) ([][]any, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	r := csv.NewReader(transform.NewReader(bytes.NewReader(data), decoder))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var grid [][]any
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		cells := make([]any, len(rec))
		for j, v := range rec {
			if v != "" {
				cells[j] = v
			}
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
