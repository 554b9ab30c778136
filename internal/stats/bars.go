package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Bar is one labelled value of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
}

const (
	barRune             = '█'
	minBarWidth         = 10
	barGap              = " │ "
	barGapWidth         = 3
	barValueWidth       = 7
	colorBar            = "\x1b[36m"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// WeekBars converts a weekly window to chart bars labelled by weekday.
func WeekBars(days []DaySummary) []Bar {
	out := make([]Bar, len(days))
	for i, d := range days {
		out[i] = Bar{Label: d.Weekday, Value: d.Hours}
	}
	return out
}

// RenderBars writes one line per bar. Bars are scaled to the largest value;
// negative values are drawn empty. Width is the bar area only; zero picks
// a width from the terminal.
func RenderBars(w io.Writer, bars []Bar, width int, color bool) error {
	if len(bars) == 0 {
		return nil
	}
	labelWidth := 0
	maxVal := 0.0
	for _, b := range bars {
		if lw := runewidth.StringWidth(b.Label); lw > labelWidth {
			labelWidth = lw
		}
		if b.Value > maxVal {
			maxVal = b.Value
		}
	}
	if width <= 0 {
		width = BarWidthFor(TerminalWidth(), labelWidth)
	}
	if width < minBarWidth {
		width = minBarWidth
	}
	for _, b := range bars {
		n := barLength(b.Value, maxVal, width)
		var row strings.Builder
		row.WriteString(runewidth.FillRight(b.Label, labelWidth))
		row.WriteString(barGap)
		if color && n > 0 {
			row.WriteString(colorBar)
		}
		row.WriteString(strings.Repeat(string(barRune), n))
		if color && n > 0 {
			row.WriteString(colorReset)
		}
		row.WriteString(strings.Repeat(" ", width-n))
		row.WriteString(fmt.Sprintf(" %*.1fh", barValueWidth-1, b.Value))
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	return nil
}

func barLength(v, maxVal float64, width int) int {
	if v <= 0 || maxVal <= 0 {
		return 0
	}
	n := int(math.Round(v / maxVal * float64(width)))
	if n > width {
		n = width
	}
	return n
}

// BarWidthFor computes the bar area that fits a line of totalWidth cells.
func BarWidthFor(totalWidth, labelWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	width := totalWidth - labelWidth - barGapWidth - barValueWidth - 1
	if width < minBarWidth {
		width = minBarWidth
	}
	return width
}

// TerminalWidth reports the stdout width, or a fallback when stdout is not
// a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// UseColor decides whether ANSI colour should be written to w. NO_COLOR
// always wins over force.
func UseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
