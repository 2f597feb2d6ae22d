// Package spreadsheet turns uploaded workbook bytes into header-keyed rows.
//
// Only the first sheet is read. The first non-empty row supplies the headers;
// every later non-empty row becomes a Row whose cells are keyed by header
// text. Cell values are string, float64 (numeric cells, including Excel date
// serials) or absent.
package spreadsheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

var ErrUnsupportedFormat = errors.New("unsupported file type or error parsing file")

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
)

// Row is one data row of a sheet.
type Row struct {
	// Number is the 1-based row position in the sheet; the header row is 1
	// when the sheet starts at the top.
	Number int
	Cells  map[string]any
}

// Get returns the cell stored under header. An exact header match wins;
// otherwise headers are compared after NormalizeHeader.
func (r Row) Get(header string) (any, bool) {
	if v, ok := r.Cells[header]; ok {
		return v, true
	}
	want := NormalizeHeader(header)
	if want == "" {
		return nil, false
	}
	for k, v := range r.Cells {
		if NormalizeHeader(k) == want {
			return v, true
		}
	}
	return nil, false
}

// NormalizeHeader lower-cases s and keeps only letters and digits, so
// "Date Of Birth", "date_of_birth" and "DATE-OF-BIRTH" compare equal.
func NormalizeHeader(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DetectFormat maps a filename extension to a Format.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(strings.TrimSpace(filename)), ".")) {
	case "xlsx", "xlsm":
		return FormatXLSX, nil
	case "xls":
		return FormatXLS, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Read decodes data according to the extension of filename.
func Read(filename string, data []byte) ([]Row, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	var grid [][]any
	switch format {
	case FormatXLSX:
		grid, err = readXLSX(data)
	case FormatXLS:
		grid, err = readXLS(data)
	case FormatCSV:
		grid, err = readCSV(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, format, err)
	}
	return rowsFromGrid(grid), nil
}

// rowsFromGrid keys each data row by the header row. grid[i] is sheet row
// i+1; empty cells are nil.
func rowsFromGrid(grid [][]any) []Row {
	headerAt := -1
	for i, cells := range grid {
		if !blankCells(cells) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return []Row{}
	}
	headers := make([]string, len(grid[headerAt]))
	for j, v := range grid[headerAt] {
		if s, ok := v.(string); ok {
			headers[j] = strings.TrimSpace(s)
		} else if v != nil {
			headers[j] = strings.TrimSpace(fmt.Sprint(v))
		}
	}

	out := make([]Row, 0, len(grid)-headerAt-1)
	for i := headerAt + 1; i < len(grid); i++ {
		cells := grid[i]
		if blankCells(cells) {
			continue
		}
		row := Row{Number: i + 1, Cells: make(map[string]any, len(headers))}
		for j, h := range headers {
			if h == "" {
				continue
			}
			if _, dup := row.Cells[h]; dup {
				continue
			}
			var v any
			if j < len(cells) {
				v = cells[j]
			}
			row.Cells[h] = v
		}
		out = append(out, row)
	}
	return out
}

func blankCells(cells []any) bool {
	for _, v := range cells {
		switch t := v.(type) {
		case nil:
		case string:
			if strings.TrimSpace(t) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
