// Package report renders history summaries as Markdown or HTML documents.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/verte-zerg/slotlog/internal/datekey"
	"github.com/verte-zerg/slotlog/internal/duration"
	"github.com/verte-zerg/slotlog/internal/model"
	"github.com/verte-zerg/slotlog/internal/stats"
)

// Formats accepted by Render.
const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

// Data is everything a report shows, computed once.
type Data struct {
	Date     time.Time
	Day      model.DaySet
	DaySaved bool
	Week     stats.WeekSummary
	AllTime  stats.AllTime
	Averages []stats.SlotAverage
}

// Build collects report data for date from the history.
func Build(h stats.History, date time.Time) Data {
	day, ok := h.Get(datekey.Format(date))
	averages := stats.SlotAverages(h)
	return Data{
		Date:     datekey.Day(date),
		Day:      day,
		DaySaved: ok,
		Week:     stats.SummarizeWeek(stats.WeeklyStats(h, date)),
		AllTime:  stats.AllTimeStats(h),
		Averages: averages,
	}
}

// Render produces the report in the requested format.
func Render(d Data, format string) ([]byte, error) {
	switch format {
	case "", FormatMarkdown:
		return []byte(Markdown(d)), nil
	case FormatHTML:
		return HTML(d)
	default:
		return nil, fmt.Errorf("unknown report format %q (want %s or %s)", format, FormatMarkdown, FormatHTML)
	}
}

// Markdown renders the report as GitHub-flavoured Markdown.
func Markdown(d Data) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Study report for %s\n\n", datekey.Display(d.Date))

	b.WriteString("## Day\n\n")
	if !d.DaySaved {
		b.WriteString("Nothing saved for this day.\n\n")
	} else {
		b.WriteString("| Slot | Studied | Target | Note |\n|---|---:|---:|---|\n")
		for _, s := range d.Day.Slots() {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				cell(s.Label), duration.Format(s.StudiedSeconds), duration.Format(s.TargetSeconds), cell(s.Note))
		}
		totals := stats.Totals(d.Day)
		fmt.Fprintf(&b, "\nStudied **%s** of %s, efficiency **%.1f%%**, wasted %s.\n\n",
			duration.Format(totals.Studied), duration.Format(totals.Target), totals.Efficiency, duration.Format(totals.Wasted))
	}

	b.WriteString("## Previous 7 days\n\n| Day | Date | Hours | Efficiency |\n|---|---|---:|---:|\n")
	for _, day := range d.Week.Days {
		fmt.Fprintf(&b, "| %s | %s | %.1f | %.1f%% |\n", day.Weekday, day.DateKey, day.Hours, day.Efficiency)
	}
	bestDay := d.Week.BestDay.Weekday
	if d.Week.BestDay.Hours <= 0 {
		bestDay = stats.NoSlot
	}
	fmt.Fprintf(&b, "\nTotal %.1fh, daily average %.1fh, efficiency %.1f%%, best day %s.\n\n",
		d.Week.TotalHours, d.Week.AvgDailyHours, d.Week.Efficiency, bestDay)

	b.WriteString("## All time\n\n")
	fmt.Fprintf(&b, "- Days tracked: %d\n", d.AllTime.TotalDays)
	fmt.Fprintf(&b, "- Total hours: %.1f\n", d.AllTime.TotalHours)
	fmt.Fprintf(&b, "- Daily average: %.1fh\n", d.AllTime.AvgDailyHours)
	fmt.Fprintf(&b, "- Weekly average: %.1fh\n", d.AllTime.AvgWeeklyHours)
	fmt.Fprintf(&b, "- Best slot: %s\n", cell(stats.BestOf(d.Averages).Label))
	if len(d.Averages) > 0 {
		b.WriteString("\n| Slot | Avg hours | Days |\n|---|---:|---:|\n")
		for _, avg := range d.Averages {
			fmt.Fprintf(&b, "| %s | %.2f | %d |\n", cell(avg.Label), avg.AverageHours, avg.Count)
		}
	}
	return b.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTML renders the report as a standalone HTML page.
func HTML(d Data) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(d)), &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: "Study report " + datekey.Format(d.Date),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return out.Bytes(), nil
}

// cell escapes text for a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
