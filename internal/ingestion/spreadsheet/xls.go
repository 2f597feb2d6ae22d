package spreadsheet

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/extrame/xls"
)

func readXLS(data []byte) ([][]any, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("first sheet unreadable")
	}

	grid := make([][]any, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		last := row.LastCol()
		if last <= 0 {
			continue
		}
		cells := make([]any, last)
		for j := row.FirstCol(); j < last; j++ {
			cells[j] = xlsCellValue(row.Col(j))
		}
		grid[i] = cells
	}
	return grid, nil
}

// xlsCellValue types a BIFF cell. The decoder hands back formatted text for
// every cell, so plain numbers are recovered here; values with a leading
// zero (pincodes, mobile numbers with a trunk prefix) stay text.
func xlsCellValue(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if s[0] == '+' || (len(s) > 1 && s[0] == '0' && s[1] != '.') {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	return f
}
