package datekey

import (
	"testing"
	"time"
)

func TestFormatIgnoresLocationAndClock(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2024, time.March, 5, 23, 59, 0, 0, loc)
	if got := Format(in); got != "2024-03-05" {
		t.Fatalf("Format = %q, want 2024-03-05", got)
	}
}

func TestParseAndValid(t *testing.T) {
	d, err := Parse("2024-01-01")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 1 {
		t.Fatalf("unexpected date: %v", d)
	}
	for _, bad := range []string{"01/01/2024", "2024-1-1", "2024-02-30", ""} {
		if Valid(bad) {
			t.Fatalf("Valid(%q) = true, want false", bad)
		}
	}
	if !Valid("2024-02-29") {
		t.Fatalf("expected leap day to be valid")
	}
}

func TestFromLegacy(t *testing.T) {
	got, err := FromLegacy("31/12/2023")
	if err != nil {
		t.Fatalf("FromLegacy error: %v", err)
	}
	if got != "2023-12-31" {
		t.Fatalf("FromLegacy = %q", got)
	}
	if _, err := FromLegacy("2023-12-31"); err == nil {
		t.Fatalf("expected error for canonical key")
	}
}

func TestAddDaysAcrossMonth(t *testing.T) {
	d, _ := Parse("2024-03-01")
	if got := Format(AddDays(d, -1)); got != "2024-02-29" {
		t.Fatalf("AddDays(-1) = %q", got)
	}
	if got := Format(AddDays(d, 31)); got != "2024-04-01" {
		t.Fatalf("AddDays(31) = %q", got)
	}
}

func TestWeekday(t *testing.T) {
	d, _ := Parse("2024-01-01")
	if got := Weekday(d); got != "Mon" {
		t.Fatalf("Weekday = %q, want Mon", got)
	}
}
