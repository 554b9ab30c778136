package duration

import (
	"math"
	"testing"

	apperrors "github.com/verte-zerg/slotlog/internal/errors"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"00:00:00", 0},
		{"01:00:00", 3600},
		{"02:30:00", 9000},
		{"00:01:05", 65},
		{"123:04:05", 123*3600 + 4*60 + 5},
		{"0:90:00", 5400},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"", "01:00", "01:00:00:00", "aa:00:00", "01::00", "-1:00:00", "+1:00:00", " 01:00:00", "1.5:00:00",
		"5124095576030432:00:00",
		"5124095576030431:00:00",
		"00:153722867280912931:00",
		"2562047788015215:59:9223372036854775807",
	} {
		_, err := Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q) expected error", in)
		}
		if !apperrors.Is(err, apperrors.ErrFormat) {
			t.Fatalf("Parse(%q) error = %v, want FORMAT_ERROR", in, err)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3600, "01:00:00"},
		{9000, "02:30:00"},
		{24 * 3600, "24:00:00"},
		{100*3600 + 61, "100:01:01"},
		{-3600, "-01:00:00"},
	}
	for _, tc := range cases {
		if got := Format(tc.in); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoundTripSeconds(t *testing.T) {
	for s := int64(0); s < 100*3600; s += 997 {
		got, err := Parse(Format(s))
		if err != nil {
			t.Fatalf("Parse(Format(%d)) error: %v", s, err)
		}
		if got != s {
			t.Fatalf("Parse(Format(%d)) = %d", s, got)
		}
	}
}

func TestRoundTripText(t *testing.T) {
	for _, in := range []string{"00:00:00", "05:30:00", "23:59:59", "99:00:01"} {
		s, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", in, err)
		}
		if got := Format(s); got != in {
			t.Fatalf("Format(Parse(%q)) = %q", in, got)
		}
	}
}

func TestParseLargestValue(t *testing.T) {
	got, err := Parse("00:00:9223372036854775807")
	if err != nil {
		t.Fatalf("Parse max seconds error: %v", err)
	}
	if got != math.MaxInt64 {
		t.Fatalf("Parse max seconds = %d", got)
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("01:30")
	if err != nil {
		t.Fatalf("ParseClock error: %v", err)
	}
	if got != 5400 {
		t.Fatalf("ParseClock(01:30) = %d, want 5400", got)
	}
	got, err = ParseClock(" 00:00:10 ")
	if err != nil || got != 10 {
		t.Fatalf("ParseClock(00:00:10) = %d, %v", got, err)
	}
	if _, err := ParseClock("5124095576030432:00"); !apperrors.Is(err, apperrors.ErrFormat) {
		t.Fatalf("ParseClock overflow error = %v, want FORMAT_ERROR", err)
	}
	if _, err := ParseClock("90"); err == nil {
		t.Fatalf("expected error for single field")
	}
}
