// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/slotlog/internal/duration"
	"github.com/verte-zerg/slotlog/internal/model"
)

const sparkChars = " .:-=+*#%@"

// History is a read-only view of saved days. Dates must be returned in a
// stable order; aggregates that break ties do so by that order.
type History interface {
	Dates() []string
	Get(key string) (model.DaySet, bool)
}

// TotalStudied sums studied seconds over all slots.
func TotalStudied(set model.DaySet) int64 {
	var total int64
	for _, s := range set.Slots() {
		total += s.StudiedSeconds
	}
	return total
}

// TotalTarget sums target seconds over all slots.
func TotalTarget(set model.DaySet) int64 {
	var total int64
	for _, s := range set.Slots() {
		total += s.TargetSeconds
	}
	return total
}

// Efficiency returns studied time as a percentage of target time, rounded to
// one decimal. A zero target yields 0.
func Efficiency(set model.DaySet) float64 {
	target := TotalTarget(set)
	if target <= 0 {
		return 0
	}
	return round1(float64(TotalStudied(set)) / float64(target) * 100)
}

// Wasted returns the summed per-slot shortfall against target. Slots that ran
// past their target contribute negatively; the result is not clamped.
func Wasted(set model.DaySet) int64 {
	var total int64
	for _, s := range set.Slots() {
		total += s.TargetSeconds - s.StudiedSeconds
	}
	return total
}

// StudiedHours returns the total studied time in fractional hours.
func StudiedHours(set model.DaySet) float64 {
	return duration.Hours(TotalStudied(set))
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
