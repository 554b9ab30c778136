// Package session holds the day being edited and the slot template, and
// moves them in and out of the history store.
package session

import (
	"context"
	"time"

	"github.com/verte-zerg/slotlog/internal/datekey"
	apperrors "github.com/verte-zerg/slotlog/internal/errors"
	"github.com/verte-zerg/slotlog/internal/logger"
	"github.com/verte-zerg/slotlog/internal/model"
	"github.com/verte-zerg/slotlog/internal/stats"
)

// Store is the persistence surface a session needs.
type Store interface {
	stats.History
	Put(ctx context.Context, key string, set model.DaySet) error
	LoadTemplate(ctx context.Context) (model.DaySet, bool, error)
	SaveTemplate(ctx context.Context, tpl model.DaySet) error
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the clock used to pick the initial date.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is not safe for concurrent use.
type Session struct {
	store    Store
	template model.DaySet
	date     time.Time
	working  model.DaySet
	dirty    bool
	now      func() time.Time
}

// Open loads the template and selects today. A template that was never
// persisted is seeded from seed and written back. A corrupt template is
// logged and replaced in memory by seed without overwriting storage.
func Open(ctx context.Context, st Store, seed model.DaySet, opts ...Option) (*Session, error) {
	s := &Session{store: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	tpl, ok, err := st.LoadTemplate(ctx)
	switch {
	case err != nil && apperrors.Is(err, apperrors.ErrCorruptState):
		logger.Warn("stored template is unreadable, using seed", "err", err)
		tpl = seed.SnapshotAsTemplate()
	case err != nil:
		return nil, err
	case !ok:
		tpl = seed.SnapshotAsTemplate()
		if err := st.SaveTemplate(ctx, tpl); err != nil {
			return nil, err
		}
		logger.Info("seeded slot template", "slots", tpl.Len())
	}
	s.template = tpl
	s.Select(s.now())
	return s, nil
}

// Select makes date the working day. A saved day is cloned; otherwise the
// working set starts from the template. Unsaved edits are discarded.
func (s *Session) Select(date time.Time) {
	s.date = datekey.Day(date)
	if set, ok := s.store.Get(datekey.Format(s.date)); ok {
		s.working = set.Clone()
	} else {
		s.working = model.FromTemplate(s.template)
	}
	s.dirty = false
}

// Prev selects the previous day.
func (s *Session) Prev() {
	s.Select(datekey.AddDays(s.date, -1))
}

// Next selects the following day.
func (s *Session) Next() {
	s.Select(datekey.AddDays(s.date, 1))
}

// Date returns the working day at UTC midnight.
func (s *Session) Date() time.Time {
	return s.date
}

// DateKey returns the canonical key of the working day.
func (s *Session) DateKey() string {
	return datekey.Format(s.date)
}

// Working returns a copy of the working set.
func (s *Session) Working() model.DaySet {
	return s.working.Clone()
}

// Template returns a copy of the current template.
func (s *Session) Template() model.DaySet {
	return s.template.Clone()
}

// Saved reports whether the working day exists in the history.
func (s *Session) Saved() bool {
	_, ok := s.store.Get(s.DateKey())
	return ok
}

// Dirty reports whether the working set has edits that were not saved.
func (s *Session) Dirty() bool {
	return s.dirty
}

// History exposes the saved days for aggregation.
func (s *Session) History() stats.History {
	return s.store
}

// AddSlot appends a slot to the working set.
func (s *Session) AddSlot(label string, targetSeconds int64) (model.Slot, error) {
	slot, err := s.working.AddSlot(label, targetSeconds)
	if err != nil {
		return model.Slot{}, err
	}
	s.dirty = true
	return slot, nil
}

// EditSlot patches a slot of the working set.
func (s *Session) EditSlot(id int64, patch model.SlotPatch) (model.Slot, error) {
	slot, err := s.working.EditSlot(id, patch)
	if err != nil {
		return model.Slot{}, err
	}
	s.dirty = true
	return slot, nil
}

// RemoveSlot deletes a slot from the working set.
func (s *Session) RemoveSlot(id int64) error {
	if err := s.working.RemoveSlot(id); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// LogStudied sets the studied time of a slot.
func (s *Session) LogStudied(id int64, seconds int64) (model.Slot, error) {
	return s.EditSlot(id, model.SlotPatch{StudiedSeconds: &seconds})
}

// SetNote replaces the note of a slot.
func (s *Session) SetNote(id int64, note string) (model.Slot, error) {
	return s.EditSlot(id, model.SlotPatch{Note: &note})
}

// Save persists the working set under the working date.
func (s *Session) Save(ctx context.Context) error {
	if err := s.store.Put(ctx, s.DateKey(), s.working); err != nil {
		return err
	}
	s.dirty = false
	logger.Info("day saved", "date", s.DateKey(), "slots", s.working.Len())
	return nil
}

// SaveAsTemplate persists the working slot layout as the new template.
func (s *Session) SaveAsTemplate(ctx context.Context) error {
	tpl := s.working.SnapshotAsTemplate()
	if err := s.store.SaveTemplate(ctx, tpl); err != nil {
		return err
	}
	s.template = tpl
	return nil
}

// ResetToTemplate replaces the working set with the template.
func (s *Session) ResetToTemplate() {
	s.working.ResetFromTemplate(s.template)
	s.dirty = true
}
