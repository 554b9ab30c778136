package stats

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/slotlog/internal/datekey"
	"github.com/verte-zerg/slotlog/internal/duration"
	"github.com/verte-zerg/slotlog/internal/model"
)

// DayTotals are the headline numbers for one day.
type DayTotals struct {
	Studied    int64
	Target     int64
	Efficiency float64
	Wasted     int64
}

// Totals computes the headline numbers for a day.
func Totals(set model.DaySet) DayTotals {
	return DayTotals{
		Studied:    TotalStudied(set),
		Target:     TotalTarget(set),
		Efficiency: Efficiency(set),
		Wasted:     Wasted(set),
	}
}

// WriteDay renders the slot table and totals of one day.
func WriteDay(w io.Writer, date time.Time, set model.DaySet) error {
	if _, err := fmt.Fprintln(w, datekey.Display(date)); err != nil {
		return err
	}
	tbl := newTable(right("ID"), left("Slot"), right("Studied"), right("Target"), left("Note"))
	for _, s := range set.Slots() {
		tbl.add(
			strconv.FormatInt(s.ID, 10),
			s.Label,
			duration.Format(s.StudiedSeconds),
			duration.Format(s.TargetSeconds),
			s.Note,
		)
	}
	if err := tbl.write(w); err != nil {
		return err
	}
	totals := Totals(set)
	_, err := fmt.Fprintf(w, "\nStudied %s of %s  Efficiency %.1f%%  Wasted %s\n",
		duration.Format(totals.Studied),
		duration.Format(totals.Target),
		totals.Efficiency,
		duration.Format(totals.Wasted),
	)
	return err
}

// WriteWeek renders the weekly window as a table followed by a bar chart and
// the window summary.
func WriteWeek(w io.Writer, summary WeekSummary, barWidth int, color bool) error {
	tbl := newTable(left("Day"), left("Date"), right("Hours"), right("Efficiency"))
	for _, d := range summary.Days {
		tbl.add(d.Weekday, d.DateKey, fmt.Sprintf("%.1f", d.Hours), fmt.Sprintf("%.1f%%", d.Efficiency))
	}
	if err := tbl.write(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := RenderBars(w, WeekBars(summary.Days), barWidth, color); err != nil {
		return err
	}
	best := summary.BestDay.Weekday
	if summary.BestDay.Hours <= 0 {
		best = NoSlot
	}
	_, err := fmt.Fprintf(w, "\nTotal %.1fh  Daily avg %.1fh  Efficiency %.1f%%  Best day %s\n",
		summary.TotalHours, summary.AvgDailyHours, summary.Efficiency, best)
	return err
}

// WriteAllTime renders the all-time totals and per-label averages.
func WriteAllTime(w io.Writer, all AllTime, averages []SlotAverage) error {
	best := BestOf(averages)
	lines := []string{
		fmt.Sprintf("Days tracked    %d", all.TotalDays),
		fmt.Sprintf("Total hours     %.1f", all.TotalHours),
		fmt.Sprintf("Daily average   %.1fh", all.AvgDailyHours),
		fmt.Sprintf("Weekly average  %.1fh", all.AvgWeeklyHours),
		fmt.Sprintf("Best slot       %s", best.Label),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(averages) == 0 {
		return nil
	}
	tbl := newTable(left("Slot"), right("Avg hours"), right("Days"))
	for _, avg := range averages {
		tbl.add(avg.Label, fmt.Sprintf("%.2f", avg.AverageHours), strconv.Itoa(avg.Count))
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return tbl.write(w)
}
