package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/slotlog/internal/model"
	"github.com/verte-zerg/slotlog/internal/session"
	"github.com/verte-zerg/slotlog/internal/stats"
	"github.com/verte-zerg/slotlog/internal/store"
)

func newTestModel(t *testing.T) (*Model, *store.History) {
	t.Helper()
	ctx := context.Background()
	backend, err := store.OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	h, err := store.Open(ctx, backend)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	now := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)
	sess, err := session.Open(ctx, h, model.DefaultTemplate(), session.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	m := NewModel(ctx, sess, Options{BarWidth: 10})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, h
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestEditStudiedAndSave(t *testing.T) {
	m, h := newTestModel(t)

	press(m, "e")
	if m.mode != inputStudied {
		t.Fatalf("expected studied prompt, got mode %d", m.mode)
	}
	m.input.SetValue("01:30")
	press(m, "enter")
	if m.mode != inputNone {
		t.Fatalf("prompt should close after valid input, err=%q", m.errMsg)
	}
	if got := stats.TotalStudied(m.session.Working()); got != 5400 {
		t.Fatalf("studied = %d, want 5400", got)
	}
	if !m.session.Dirty() {
		t.Fatalf("expected unsaved changes")
	}

	press(m, "s")
	if m.session.Dirty() {
		t.Fatalf("expected clean session after save")
	}
	if _, ok := h.Get("2024-01-08"); !ok {
		t.Fatalf("day was not persisted")
	}
	if !strings.Contains(m.status, "Saved 2024-01-08") {
		t.Fatalf("unexpected status: %q", m.status)
	}
}

func TestInvalidStudiedKeepsPromptOpen(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "e")
	m.input.SetValue("abc")
	press(m, "enter")
	if m.mode != inputStudied {
		t.Fatalf("prompt should stay open on invalid input")
	}
	if m.errMsg == "" {
		t.Fatalf("expected error message")
	}
	press(m, "esc")
	if m.mode != inputNone {
		t.Fatalf("esc should close prompt")
	}
	if m.session.Dirty() {
		t.Fatalf("failed edit must not change the working set")
	}
}

func TestAddAndDeleteSlot(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.session.Working().Len()

	press(m, "a")
	m.input.SetValue("10pm-11pm")
	press(m, "enter")
	if m.mode != inputAddTarget {
		t.Fatalf("expected target prompt, got mode %d", m.mode)
	}
	press(m, "enter")
	working := m.session.Working()
	if working.Len() != before+1 {
		t.Fatalf("expected %d slots, got %d", before+1, working.Len())
	}
	last := working.Slots()[working.Len()-1]
	if last.Label != "10pm-11pm" || last.TargetSeconds != model.DefaultTargetSeconds {
		t.Fatalf("unexpected added slot: %+v", last)
	}
	if m.slots.Cursor() != working.Len()-1 {
		t.Fatalf("cursor should move to the new slot")
	}

	press(m, "d")
	if m.session.Working().Len() != before {
		t.Fatalf("delete should remove the selected slot")
	}
}

func TestDayNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "[")
	if m.session.DateKey() != "2024-01-07" {
		t.Fatalf("date = %s, want 2024-01-07", m.session.DateKey())
	}
	press(m, "]", "]")
	if m.session.DateKey() != "2024-01-09" {
		t.Fatalf("date = %s, want 2024-01-09", m.session.DateKey())
	}
}

func TestNavigationWithUnsavedChangesAsksFirst(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "e")
	m.input.SetValue("00:45")
	press(m, "enter")
	if !m.session.Dirty() {
		t.Fatalf("expected unsaved changes")
	}

	press(m, "[")
	if m.session.DateKey() != "2024-01-08" {
		t.Fatalf("first [ with unsaved changes should stay on 2024-01-08, got %s", m.session.DateKey())
	}
	if !strings.Contains(m.errMsg, "Unsaved changes") {
		t.Fatalf("expected unsaved warning, got %q", m.errMsg)
	}

	press(m, "[")
	if m.session.DateKey() != "2024-01-07" {
		t.Fatalf("second [ should move to 2024-01-07, got %s", m.session.DateKey())
	}
	if m.status != "Unsaved edits discarded" {
		t.Fatalf("unexpected status: %q", m.status)
	}
	press(m, "]")
	if got := stats.TotalStudied(m.session.Working()); got != 0 {
		t.Fatalf("discarded edit came back: studied = %d", got)
	}
}

func TestNavigationConfirmResetsOnOtherKey(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "r")
	press(m, "]", "down", "]")
	if m.session.DateKey() != "2024-01-08" {
		t.Fatalf("confirmation should reset after another key, got %s", m.session.DateKey())
	}
}

func TestQuitWithUnsavedChangesAsksFirst(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "r")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		t.Fatalf("first q with unsaved changes should not quit")
	}
	if m.confirmKey != "q" {
		t.Fatalf("expected quit confirmation")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("second q should quit")
	}
}

func TestViewShowsTabsAndTotals(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	for _, want := range []string{"Daily", "Weekly", "Statistics", "Mon 08 Jan 2024", "efficiency 0.0%", "9am-1pm"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}

	press(m, "right")
	if m.activeTab != tabWeekly {
		t.Fatalf("expected weekly tab")
	}
	if !strings.Contains(m.View(), "7 days before Mon 08 Jan 2024") {
		t.Fatalf("weekly view missing heading")
	}

	press(m, "right")
	if !strings.Contains(m.View(), "No saved days yet.") {
		t.Fatalf("statistics view should report empty history")
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncateLine = %q", got)
	}
	if got := truncateLine("abc", 6); got != "abc" {
		t.Fatalf("truncateLine = %q", got)
	}
}
