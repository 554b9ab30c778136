// Package datekey derives canonical, locale-independent keys from calendar dates.
package datekey

import (
	"time"

	apperrors "github.com/verte-zerg/slotlog/internal/errors"
)

const (
	// Layout is the canonical key layout.
	Layout = "2006-01-02"
	// LegacyLayout is the day/month/year layout written by older exports.
	LegacyLayout = "02/01/2006"
)

// Day truncates t to its calendar date. The result is UTC midnight so that
// day arithmetic never crosses a DST transition.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Format returns the canonical key for the calendar date of t.
func Format(t time.Time) string {
	return Day(t).Format(Layout)
}

// Parse decodes a canonical key into a calendar date.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, key, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.NewFormat(key, "YYYY-MM-DD")
	}
	return t, nil
}

// Valid reports whether key is a canonical date key.
func Valid(key string) bool {
	t, err := Parse(key)
	return err == nil && t.Format(Layout) == key
}

// FromLegacy converts a DD/MM/YYYY key into a canonical key.
func FromLegacy(key string) (string, error) {
	t, err := time.ParseInLocation(LegacyLayout, key, time.UTC)
	if err != nil {
		return "", apperrors.NewFormat(key, "DD/MM/YYYY")
	}
	return t.Format(Layout), nil
}

// AddDays shifts a calendar date by n days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// Weekday returns the short English weekday name for display.
func Weekday(t time.Time) string {
	return Day(t).Format("Mon")
}

// Display renders a date for humans. Never use it as a key.
func Display(t time.Time) string {
	return Day(t).Format("Mon 02 Jan 2006")
}
