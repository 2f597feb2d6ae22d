package records

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// IST is the civil offset every stored date is expressed in.
var IST = time.FixedZone("IST", 5*60*60+30*60)

const (
	dateLayout = "2006-01-02"

	// Numbers above this are millisecond epochs rather than day serials.
	epochMillisThreshold = 1e12
	// 9999-12-31 and 0001-01-01 as Excel serials.
	maxExcelSerial = 2958465
	minExcelSerial = -693593
	// 9999-12-31T23:59:59.999Z in milliseconds.
	maxEpochMillis = 253402300799999
)

var (
	excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

	slashDateRe   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	numericTextRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

	instantLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05",
	}
)

// NormalizeDate renders v as YYYY-MM-DD in IST. The second result is false
// when v is empty or no interpretation applies.
//
// Trial order: time values; numbers (millisecond epoch above 1e12, Excel
// day serial otherwise); D/M/YYYY text tried month-first then day-first;
// YYYY-MM-DD text; ISO-8601 instants; numeric text; free-form text.
func NormalizeDate(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case time.Time:
		return formatInstant(t)
	case *time.Time:
		if t == nil {
			return "", false
		}
		return formatInstant(*t)
	case float64:
		return fromNumber(t)
	case float32:
		return fromNumber(float64(t))
	case int:
		return fromNumber(float64(t))
	case int64:
		return fromNumber(float64(t))
	case string:
		return fromText(t)
	default:
		return "", false
	}
}

func formatInstant(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	local := t.In(IST)
	if y := local.Year(); y < 1 || y > 9999 {
		return "", false
	}
	return local.Format(dateLayout), true
}

func fromNumber(n float64) (string, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "", false
	}
	if n > epochMillisThreshold {
		if n > maxEpochMillis {
			return "", false
		}
		return formatInstant(time.UnixMilli(int64(n)))
	}
	if n > maxExcelSerial || n < minExcelSerial {
		return "", false
	}
	// Days and the time of day are added separately; a whole serial range
	// in one Duration overflows int64 nanoseconds.
	whole := math.Floor(n)
	secs := math.Round((n - whole) * 24 * 60 * 60)
	return formatInstant(excelEpoch.AddDate(0, 0, int(whole)).Add(time.Duration(secs) * time.Second))
}

func fromText(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if m := slashDateRe.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if d, ok := civilDate(y, a, b); ok {
			return d, true
		}
		if d, ok := civilDate(y, b, a); ok {
			return d, true
		}
		return "", false
	}

	if isoDateRe.MatchString(s) {
		if t, err := time.Parse(dateLayout, s); err == nil {
			return t.Format(dateLayout), true
		}
		return "", false
	}

	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return formatInstant(t)
		}
	}

	if numericTextRe.MatchString(s) {
		if n, err := strconv.ParseFloat(s, 64); err == nil && (n > epochMillisThreshold || n <= maxExcelSerial) {
			return fromNumber(n)
		}
	}

	t, err := dateparse.ParseIn(s, IST)
	if err != nil {
		return "", false
	}
	return formatInstant(t)
}

// civilDate reports whether (y, m, d) is a real calendar day.
func civilDate(y, m, d int) (string, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return "", false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return "", false
	}
	return t.Format(dateLayout), true
}
