package tui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/slotlog/internal/datekey"
	"github.com/verte-zerg/slotlog/internal/duration"
	"github.com/verte-zerg/slotlog/internal/model"
	"github.com/verte-zerg/slotlog/internal/stats"
)

const defaultWidth = 80

func newSlotTable() table.Model {
	t := table.New(
		table.WithColumns(slotColumns(defaultWidth)),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	t.SetStyles(slotTableStyles())
	return t
}

// slotColumns gives the note column whatever width is left.
func slotColumns(width int) []table.Column {
	columns := []table.Column{
		{Title: "Slot", Width: 16},
		{Title: "Studied", Width: 9},
		{Title: "Target", Width: 9},
		{Title: "Note", Width: 10},
	}
	used := 0
	for _, c := range columns[:3] {
		used += c.Width + 1
	}
	columns[3].Width = maxInt(10, width-used-1)
	return columns
}

func slotTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true)
	return styles
}

func newInput() textinput.Model {
	input := textinput.New()
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func slotRows(set model.DaySet) []table.Row {
	slots := set.Slots()
	rows := make([]table.Row, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, table.Row{
			s.Label,
			duration.Format(s.StudiedSeconds),
			duration.Format(s.TargetSeconds),
			s.Note,
		})
	}
	return rows
}

// refresh rebuilds every tab from the session.
func (m *Model) refresh() {
	working := m.session.Working()
	rows := slotRows(working)
	m.slots.SetRows(rows)
	if m.slots.Cursor() >= len(rows) {
		m.slots.SetCursor(maxInt(0, len(rows)-1))
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	history := m.session.History()
	m.viewports[tabWeekly].SetContent(renderWeek(history, m.session.Date(), width, m.opts))
	m.viewports[tabStats].SetContent(renderStats(history, width))
}

func renderWeek(h stats.History, anchor time.Time, width int, opts Options) string {
	summary := stats.SummarizeWeek(stats.WeeklyStats(h, anchor))
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "7 days before %s  %s\n\n", datekey.Display(anchor), stats.Sparkline(stats.HoursSeries(summary.Days)))
	barWidth := opts.BarWidth
	if barWidth <= 0 {
		barWidth = stats.BarWidthFor(width, 3)
	}
	if err := stats.WriteWeek(&buf, summary, barWidth, opts.Color); err != nil {
		return fmt.Sprintf("Failed to render week: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderStats(h stats.History, width int) string {
	all := stats.AllTimeStats(h)
	if all.TotalDays == 0 {
		return "No saved days yet."
	}
	averages := stats.SlotAverages(h)
	best := stats.BestOf(averages)
	cards := []string{
		metricCard("Days", fmt.Sprintf("%d", all.TotalDays)),
		metricCard("Total hours", fmt.Sprintf("%.1f", all.TotalHours)),
		metricCard("Daily avg", fmt.Sprintf("%.1fh", all.AvgDailyHours)),
		metricCard("Weekly avg", fmt.Sprintf("%.1fh", all.AvgWeeklyHours)),
		metricCard("Best slot", best.Label),
	}
	var top string
	if width < 80 {
		top = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		top = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	lines := []string{top, "", headerStyle.Render("Average hours per slot")}
	for _, avg := range averages {
		lines = append(lines, fmt.Sprintf("%-20s %6.2f  (%d days)", truncateLine(avg.Label, 20), avg.AverageHours, avg.Count))
	}
	return strings.Join(lines, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + m.renderDateLine()
}

func (m *Model) renderDateLine() string {
	working := m.session.Working()
	totals := stats.Totals(working)
	line := fmt.Sprintf("%s  studied %s / %s  efficiency %.1f%%  wasted %s",
		datekey.Display(m.session.Date()),
		duration.Format(totals.Studied),
		duration.Format(totals.Target),
		totals.Efficiency,
		duration.Format(totals.Wasted),
	)
	line = headerStyle.Render(truncateLine(line, m.width))
	if m.session.Dirty() {
		line += " " + dirtyStyle.Render("[unsaved]")
	}
	return line
}

func (m *Model) renderBody() string {
	if m.activeTab != tabDaily {
		return m.viewports[m.activeTab].View()
	}
	if m.mode != inputNone {
		return m.slots.View() + "\n\n" + m.input.View()
	}
	if len(m.slots.Rows()) == 0 {
		return "No slots. Press a to add one or r to reset from the template."
	}
	return m.slots.View()
}

func (m *Model) renderHelp() string {
	if m.mode != inputNone {
		return headerStyle.Render("enter: apply  esc: cancel")
	}
	help := "Tabs: left/right  Day: [ ]  Save: s  Template: t  Quit: q"
	if m.activeTab == tabDaily {
		help = "Tabs: left/right  Day: [ ]  Studied: e  Note: n  Add: a  Delete: d  Reset: r  Save: s  Template: t  Quit: q"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	line := ""
	switch {
	case m.errMsg != "":
		line = errorStyle.Render(truncateLine(m.errMsg, m.width))
	case m.status != "":
		line = statusStyle.Render(truncateLine(m.status, m.width))
	}
	return m.renderHelp() + "\n" + line
}
