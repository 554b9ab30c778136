package stats

import (
	"time"

	"github.com/verte-zerg/slotlog/internal/datekey"
)

// WindowDays is the length of the weekly window.
const WindowDays = 7

// DaySummary is one day of the weekly window.
type DaySummary struct {
	Date       time.Time
	Weekday    string
	DateKey    string
	Hours      float64
	Efficiency float64
}

// WeekSummary rolls up a weekly window.
type WeekSummary struct {
	Days          []DaySummary
	TotalHours    float64
	AvgDailyHours float64
	Efficiency    float64
	BestDay       DaySummary
}

// WeeklyStats summarises the seven days before anchor, oldest first. The
// anchor date itself is not part of the window. Days without a saved set
// contribute zero hours and zero efficiency.
func WeeklyStats(h History, anchor time.Time) []DaySummary {
	start := datekey.AddDays(anchor, -WindowDays)
	out := make([]DaySummary, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		date := datekey.AddDays(start, i)
		key := datekey.Format(date)
		set, _ := h.Get(key)
		out = append(out, DaySummary{
			Date:       date,
			Weekday:    datekey.Weekday(date),
			DateKey:    key,
			Hours:      StudiedHours(set),
			Efficiency: Efficiency(set),
		})
	}
	return out
}

// SummarizeWeek computes window totals. Averages divide by the window length,
// so missing days pull them down. The best day is the first with the
// strictly greatest hours.
func SummarizeWeek(days []DaySummary) WeekSummary {
	summary := WeekSummary{Days: days}
	if len(days) == 0 {
		return summary
	}
	var effSum float64
	summary.BestDay = days[0]
	for _, d := range days {
		summary.TotalHours += d.Hours
		effSum += d.Efficiency
		if d.Hours > summary.BestDay.Hours {
			summary.BestDay = d
		}
	}
	summary.AvgDailyHours = summary.TotalHours / float64(len(days))
	summary.Efficiency = round1(effSum / float64(len(days)))
	return summary
}

// HoursSeries extracts the hours of each day, for charts.
func HoursSeries(days []DaySummary) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = d.Hours
	}
	return out
}
