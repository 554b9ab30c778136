package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/slotlog/internal/datekey"
	"github.com/verte-zerg/slotlog/internal/model"
)

func TestWriteDay(t *testing.T) {
	date, _ := datekey.Parse("2024-03-15")
	set := mustSet(t,
		model.Slot{ID: 1, Label: "9am-1pm", StudiedSeconds: 3600, TargetSeconds: 7200, Note: "algebra"},
	)
	var buf bytes.Buffer
	if err := WriteDay(&buf, date, set); err != nil {
		t.Fatalf("WriteDay: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Fri 15 Mar 2024",
		"9am-1pm",
		"algebra",
		"Studied 01:00:00 of 02:00:00",
		"Efficiency 50.0%",
		"Wasted 01:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteWeek(t *testing.T) {
	anchor, _ := datekey.Parse("2024-01-08")
	days := Days{"2024-01-03": mustSet(t, model.Slot{ID: 1, StudiedSeconds: 7200, TargetSeconds: 7200})}
	var buf bytes.Buffer
	if err := WriteWeek(&buf, SummarizeWeek(WeeklyStats(days, anchor)), 10, false); err != nil {
		t.Fatalf("WriteWeek: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"2024-01-03", "Best day Wed", "Total 2.0h", "Efficiency 14.3%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteWeekNothingStudied(t *testing.T) {
	anchor, _ := datekey.Parse("2024-01-08")
	var buf bytes.Buffer
	if err := WriteWeek(&buf, SummarizeWeek(WeeklyStats(Days{}, anchor)), 10, false); err != nil {
		t.Fatalf("WriteWeek: %v", err)
	}
	if !strings.Contains(buf.String(), "Best day "+NoSlot) {
		t.Fatalf("expected %s best day:\n%s", NoSlot, buf.String())
	}
}

func TestWriteAllTime(t *testing.T) {
	days := Days{
		"2024-01-01": mustSet(t,
			model.Slot{ID: 1, Label: "a", StudiedSeconds: 3600},
			model.Slot{ID: 2, Label: "b", StudiedSeconds: 3600},
		),
	}
	var buf bytes.Buffer
	if err := WriteAllTime(&buf, AllTimeStats(days), SlotAverages(days)); err != nil {
		t.Fatalf("WriteAllTime: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Days tracked    1", "Total hours     2.0", "Weekly average  14.0h", "Best slot       a"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
