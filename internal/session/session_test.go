package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/verte-zerg/slotlog/internal/errors"
	"github.com/verte-zerg/slotlog/internal/model"
	"github.com/verte-zerg/slotlog/internal/stats"
	"github.com/verte-zerg/slotlog/internal/store"
)

var fixedNow = time.Date(2024, 3, 15, 21, 30, 0, 0, time.UTC)

func openSession(t *testing.T, dir string) (*Session, *store.History) {
	t.Helper()
	backend, err := store.OpenFile(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	h, err := store.Open(context.Background(), backend)
	require.NoError(t, err)
	s, err := Open(context.Background(), h, model.DefaultTemplate(), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return s, h
}

func TestOpenSeedsTemplateAndSelectsToday(t *testing.T) {
	dir := t.TempDir()
	s, h := openSession(t, dir)

	require.Equal(t, "2024-03-15", s.DateKey())
	require.Equal(t, 5, s.Working().Len())
	require.False(t, s.Saved())
	require.False(t, s.Dirty())

	tpl, ok, err := h.LoadTemplate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, model.DefaultTemplate().Slots(), tpl.Slots())
}

func TestLogStudiedAndSave(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := openSession(t, dir)

	slot, err := s.AddSlot("Morning", 7200)
	require.NoError(t, err)
	_, err = s.LogStudied(slot.ID, 3600)
	require.NoError(t, err)
	_, err = s.SetNote(slot.ID, "calculus")
	require.NoError(t, err)
	require.True(t, s.Dirty())
	require.NoError(t, s.Save(ctx))
	require.False(t, s.Dirty())
	require.True(t, s.Saved())

	reopened, h := openSession(t, dir)
	saved, ok := h.Get("2024-03-15")
	require.True(t, ok)
	got, ok := saved.Slot(slot.ID)
	require.True(t, ok)
	require.Equal(t, int64(3600), got.StudiedSeconds)
	require.Equal(t, "calculus", got.Note)
	require.Equal(t, 6, reopened.Working().Len())
}

func TestAddThenRemoveRestoresWorkingSet(t *testing.T) {
	s, _ := openSession(t, t.TempDir())
	before := s.Working().Slots()

	slot, err := s.AddSlot("extra", model.DefaultTargetSeconds)
	require.NoError(t, err)
	require.Equal(t, len(before)+1, s.Working().Len())
	require.NoError(t, s.RemoveSlot(slot.ID))
	require.Equal(t, before, s.Working().Slots())
}

func TestEditUnknownSlotLeavesWorkingSetUnchanged(t *testing.T) {
	s, _ := openSession(t, t.TempDir())
	before := s.Working().Slots()

	_, err := s.LogStudied(424242, 60)
	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	require.Equal(t, before, s.Working().Slots())
	require.False(t, s.Dirty())
}

func TestNavigationLoadsSavedDaysOrTemplate(t *testing.T) {
	ctx := context.Background()
	s, _ := openSession(t, t.TempDir())

	_, err := s.LogStudied(1, 1800)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx))

	s.Prev()
	require.Equal(t, "2024-03-14", s.DateKey())
	require.False(t, s.Saved())
	require.Equal(t, int64(0), stats.TotalStudied(s.Working()))

	s.Next()
	require.Equal(t, "2024-03-15", s.DateKey())
	require.Equal(t, int64(1800), stats.TotalStudied(s.Working()))
}

func TestSelectDiscardsUnsavedEdits(t *testing.T) {
	s, _ := openSession(t, t.TempDir())
	_, err := s.LogStudied(1, 1800)
	require.NoError(t, err)

	s.Select(fixedNow)
	require.False(t, s.Dirty())
	require.Equal(t, int64(0), stats.TotalStudied(s.Working()))
}

func TestSaveAsTemplate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := openSession(t, dir)

	require.NoError(t, s.RemoveSlot(1))
	_, err := s.LogStudied(2, 600)
	require.NoError(t, err)
	require.NoError(t, s.SaveAsTemplate(ctx))
	require.Equal(t, 4, s.Template().Len())
	require.Equal(t, int64(0), stats.TotalStudied(s.Template()))

	s.Next()
	require.Equal(t, 4, s.Working().Len())

	reopened, _ := openSession(t, dir)
	require.Equal(t, 4, reopened.Template().Len())
}

func TestResetToTemplate(t *testing.T) {
	s, _ := openSession(t, t.TempDir())
	_, err := s.AddSlot("extra", 60)
	require.NoError(t, err)
	s.ResetToTemplate()
	require.Equal(t, s.Template().Len(), s.Working().Len())
	require.True(t, s.Dirty())
}

type corruptTemplateStore struct {
	*store.History
}

func (corruptTemplateStore) LoadTemplate(context.Context) (model.DaySet, bool, error) {
	return model.DaySet{}, false, apperrors.NewCorruptState(store.TemplateKey, nil)
}

func TestOpenFallsBackOnCorruptTemplate(t *testing.T) {
	ctx := context.Background()
	backend, err := store.OpenFile(t.TempDir())
	require.NoError(t, err)
	h, err := store.Open(ctx, backend)
	require.NoError(t, err)

	s, err := Open(ctx, corruptTemplateStore{h}, model.DefaultTemplate())
	require.NoError(t, err)
	require.Equal(t, 5, s.Template().Len())

	_, ok, err := h.LoadTemplate(ctx)
	require.NoError(t, err)
	require.False(t, ok, "corrupt template must not be overwritten")
}
