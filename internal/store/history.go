package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/verte-zerg/slotlog/internal/datekey"
	apperrors "github.com/verte-zerg/slotlog/internal/errors"
	"github.com/verte-zerg/slotlog/internal/logger"
	"github.com/verte-zerg/slotlog/internal/model"
)

// History is the date-keyed mapping of saved days. It is loaded once and
// re-persisted in full after every mutation.
type History struct {
	backend Backend
	days    map[string]model.DaySet
	saved   bool
}

// Open loads the history from backend. A missing value yields an empty
// history; a value that cannot be decoded yields a CORRUPT_STATE error.
func Open(ctx context.Context, backend Backend) (*History, error) {
	h := &History{backend: backend, days: map[string]model.DaySet{}}
	if err := h.Load(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Load re-reads the persisted mapping, replacing the in-memory copy.
func (h *History) Load(ctx context.Context) error {
	payload, ok, err := h.backend.Get(ctx, HistoryKey)
	if err != nil {
		return apperrors.NewStorage("read history", err)
	}
	if !ok {
		h.days = map[string]model.DaySet{}
		h.saved = false
		return nil
	}
	days, err := decodeHistory(payload, false)
	if err != nil {
		return apperrors.NewCorruptState(HistoryKey, err)
	}
	h.days = days
	h.saved = true
	return nil
}

// Saved reports whether a history value exists in the backend, which
// distinguishes a saved-but-empty history from one never written.
func (h *History) Saved() bool {
	return h.saved
}

// Len returns the number of saved days.
func (h *History) Len() int {
	return len(h.days)
}

// Get returns a copy of the set saved for key.
func (h *History) Get(key string) (model.DaySet, bool) {
	set, ok := h.days[key]
	if !ok {
		return model.DaySet{}, false
	}
	return set.Clone(), true
}

// Dates returns all saved keys in chronological order. This is the
// enumeration order used by every aggregate over the history.
func (h *History) Dates() []string {
	keys := make([]string, 0, len(h.days))
	for key := range h.days {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Put upserts the set for key and persists the whole mapping. On failure the
// in-memory history is left as it was.
func (h *History) Put(ctx context.Context, key string, set model.DaySet) error {
	if !datekey.Valid(key) {
		return apperrors.NewValidation(fmt.Sprintf("invalid date key %q", key))
	}
	if err := set.Validate(); err != nil {
		return err
	}
	next := h.copyDays()
	next[key] = set.Clone()
	return h.commit(ctx, next)
}

// Merge upserts many days with a single write. Existing days with the same
// key are replaced.
func (h *History) Merge(ctx context.Context, days map[string]model.DaySet) error {
	next := h.copyDays()
	for key, set := range days {
		if !datekey.Valid(key) {
			return apperrors.NewValidation(fmt.Sprintf("invalid date key %q", key))
		}
		if err := set.Validate(); err != nil {
			return fmt.Errorf("day %s: %w", key, err)
		}
		next[key] = set.Clone()
	}
	return h.commit(ctx, next)
}

// LoadTemplate returns the persisted template, if one was saved.
func (h *History) LoadTemplate(ctx context.Context) (model.DaySet, bool, error) {
	payload, ok, err := h.backend.Get(ctx, TemplateKey)
	if err != nil {
		return model.DaySet{}, false, apperrors.NewStorage("read template", err)
	}
	if !ok {
		return model.DaySet{}, false, nil
	}
	tpl, err := decodeTemplate(payload)
	if err != nil {
		return model.DaySet{}, false, apperrors.NewCorruptState(TemplateKey, err)
	}
	return tpl, true, nil
}

// SaveTemplate persists tpl with studied time and notes cleared.
func (h *History) SaveTemplate(ctx context.Context, tpl model.DaySet) error {
	if err := tpl.Validate(); err != nil {
		return err
	}
	payload, err := encodeTemplate(tpl.SnapshotAsTemplate())
	if err != nil {
		return apperrors.NewStorage("encode template", err)
	}
	if err := h.backend.Put(ctx, TemplateKey, payload); err != nil {
		return apperrors.NewStorage("write template", err)
	}
	logger.Debug("template saved", "slots", tpl.Len())
	return nil
}

// DecodeExport parses a history export as written by the browser version of the tracker,
// converting DD/MM/YYYY keys to canonical keys.
func DecodeExport(payload []byte) (map[string]model.DaySet, error) {
	days, err := decodeHistory(payload, true)
	if err != nil {
		return nil, apperrors.NewCorruptState("import", err)
	}
	return days, nil
}

func (h *History) commit(ctx context.Context, next map[string]model.DaySet) error {
	payload, err := encodeHistory(next)
	if err != nil {
		return apperrors.NewStorage("encode history", err)
	}
	if err := h.backend.Put(ctx, HistoryKey, payload); err != nil {
		return apperrors.NewStorage("write history", err)
	}
	h.days = next
	h.saved = true
	logger.Debug("history saved", "days", len(next), "bytes", len(payload))
	return nil
}

func (h *History) copyDays() map[string]model.DaySet {
	next := make(map[string]model.DaySet, len(h.days)+1)
	for key, set := range h.days {
		next[key] = set
	}
	return next
}
