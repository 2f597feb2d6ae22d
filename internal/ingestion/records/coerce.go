package records

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CoerceText renders a raw cell as trimmed text. Blank values and nil give
// false. Numbers are written positionally, never in exponent form, so long
// identifiers typed as numbers survive intact.
func CoerceText(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		s = t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		s = decimal.NewFromFloat(t).String()
	case float32:
		s = decimal.NewFromFloat32(t).String()
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case bool:
		s = strconv.FormatBool(t)
	case time.Time:
		if t.IsZero() {
			return "", false
		}
		s = t.In(IST).Format(dateLayout)
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// isBlank reports whether a raw cell counts as missing for validation.
func isBlank(v any) bool {
	_, ok := CoerceText(v)
	return !ok
}
