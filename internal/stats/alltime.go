package stats

// AllTime summarises every saved day.
type AllTime struct {
	TotalDays     int
	TotalHours    float64
	AvgDailyHours float64
	// AvgWeeklyHours is the daily average scaled by seven, not a sum over
	// calendar weeks.
	AvgWeeklyHours float64
}

// AllTimeStats computes totals across the whole history.
func AllTimeStats(h History) AllTime {
	var out AllTime
	for _, key := range h.Dates() {
		set, ok := h.Get(key)
		if !ok {
			continue
		}
		out.TotalDays++
		out.TotalHours += StudiedHours(set)
	}
	if out.TotalDays > 0 {
		out.AvgDailyHours = out.TotalHours / float64(out.TotalDays)
		out.AvgWeeklyHours = out.TotalHours * 7 / float64(out.TotalDays)
	}
	return out
}
