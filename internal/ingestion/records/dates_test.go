package records

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"nil", nil, "", false},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"day first when month overflows", "15/03/2024", "2024-03-15", true},
		{"month first when both fit", "03/04/2024", "2024-03-04", true},
		{"single digits", "1/2/2024", "2024-01-02", true},
		{"neither order valid", "31/31/2024", "", false},
		{"leap day month first", "2/29/2024", "2024-02-29", true},
		{"iso date", "2024-03-15", "2024-03-15", true},
		{"iso date out of range", "2024-02-30", "", false},
		{"excel serial", float64(45000), "2023-03-15", true},
		{"excel serial late in the UTC day", 45000.9, "2023-03-16", true},
		{"excel serial int", 45000, "2023-03-15", true},
		{"numeric text serial", "45000", "2023-03-15", true},
		{"serial past the 292 year duration range", float64(110000), "2201-03-02", true},
		{"last representable serial", float64(2958465), "9999-12-31", true},
		{"last representable serial as text", "2958465", "9999-12-31", true},
		{"serial past year 9999", float64(3e6), "", false},
		{"serial before year 1", float64(-700000), "", false},
		{"millisecond epoch past year 9999", float64(3e14), "", false},
		{"millisecond epoch", float64(1710460800000), "2024-03-15", true},
		{"utc instant rolls into next IST day", "2024-03-15T20:00:00Z", "2024-03-16", true},
		{"instant with offset", "2024-03-15T10:00:00+05:30", "2024-03-15", true},
		{"free form", "March 15, 2024", "2024-03-15", true},
		{"garbage", "not a date", "", false},
		{"unsupported type", struct{}{}, "", false},
		{"time value", time.Date(2024, 3, 14, 19, 0, 0, 0, time.UTC), "2024-03-15", true},
		{"zero time", time.Time{}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeDate(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("NormalizeDate(%v) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestNormalizeDateIgnoresServerZone(t *testing.T) {
	prev := time.Local
	time.Local = time.FixedZone("PST", -8*60*60)
	defer func() { time.Local = prev }()

	if got, ok := NormalizeDate(float64(45000)); !ok || got != "2023-03-15" {
		t.Fatalf("serial under a western local zone: got (%q, %v)", got, ok)
	}
}
