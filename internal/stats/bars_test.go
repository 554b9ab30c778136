package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderBarsScalesToMax(t *testing.T) {
	var buf bytes.Buffer
	bars := []Bar{{Label: "Mon", Value: 2}, {Label: "Tue", Value: 4}, {Label: "Wed", Value: 0}}
	if err := RenderBars(&buf, bars, 10, false); err != nil {
		t.Fatalf("RenderBars: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if got := strings.Count(lines[0], "█"); got != 5 {
		t.Fatalf("Mon bar = %d cells, want 5", got)
	}
	if got := strings.Count(lines[1], "█"); got != 10 {
		t.Fatalf("Tue bar = %d cells, want 10", got)
	}
	if strings.Contains(lines[2], "█") {
		t.Fatalf("Wed bar should be empty: %q", lines[2])
	}
	if !strings.HasSuffix(lines[1], "   4.0h") {
		t.Fatalf("unexpected value column: %q", lines[1])
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("unexpected colour codes without color")
	}
}

func TestRenderBarsColor(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBars(&buf, []Bar{{Label: "Mon", Value: 1}}, 10, true); err != nil {
		t.Fatalf("RenderBars: %v", err)
	}
	if !strings.Contains(buf.String(), colorBar) {
		t.Fatalf("expected colour codes: %q", buf.String())
	}
}

func TestRenderBarsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBars(&buf, nil, 10, false); err != nil {
		t.Fatalf("RenderBars: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestBarWidthFor(t *testing.T) {
	if got := BarWidthFor(80, 3); got != 80-3-3-7-1 {
		t.Fatalf("BarWidthFor(80, 3) = %d", got)
	}
	if got := BarWidthFor(0, 3); got != minBarWidth {
		t.Fatalf("expected min width %d, got %d", minBarWidth, got)
	}
	if got := BarWidthFor(12, 3); got != minBarWidth {
		t.Fatalf("expected min width %d, got %d", minBarWidth, got)
	}
}

func TestUseColorHonoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if UseColor(&bytes.Buffer{}, true) {
		t.Fatalf("NO_COLOR must disable colour")
	}
	t.Setenv("NO_COLOR", "")
	if !UseColor(&bytes.Buffer{}, true) {
		t.Fatalf("force should enable colour")
	}
	if UseColor(&bytes.Buffer{}, false) {
		t.Fatalf("non-terminal writer should not get colour")
	}
}
