// Package model defines the slot records tracked for each calendar day.
package model

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/verte-zerg/slotlog/internal/errors"
)

// DefaultTargetSeconds is the target given to new slots when none is supplied.
const DefaultTargetSeconds int64 = 3600

// Slot is one named time window for one day.
type Slot struct {
	ID             int64
	Label          string
	StudiedSeconds int64
	TargetSeconds  int64
	Note           string
}

// SlotPatch carries the fields to change in EditSlot. Nil fields are left as is.
type SlotPatch struct {
	Label          *string
	StudiedSeconds *int64
	TargetSeconds  *int64
	Note           *string
}

// DaySet is the ordered collection of slots for one calendar day. Order is the
// user's display order, not chronological.
type DaySet struct {
	slots []Slot
}

// NewDaySet builds a set from slots, rejecting duplicate ids and negative durations.
func NewDaySet(slots []Slot) (DaySet, error) {
	d := DaySet{slots: append([]Slot(nil), slots...)}
	if err := d.Validate(); err != nil {
		return DaySet{}, err
	}
	return d, nil
}

// Slots returns a copy of the slots in display order.
func (d DaySet) Slots() []Slot {
	return append([]Slot(nil), d.slots...)
}

// Len returns the number of slots.
func (d DaySet) Len() int {
	return len(d.slots)
}

// Clone returns an independent copy of the set.
func (d DaySet) Clone() DaySet {
	return DaySet{slots: d.Slots()}
}

// Slot returns the slot with the given id.
func (d DaySet) Slot(id int64) (Slot, bool) {
	idx := d.index(id)
	if idx < 0 {
		return Slot{}, false
	}
	return d.slots[idx], true
}

// Validate checks id uniqueness and that durations are non-negative.
func (d DaySet) Validate() error {
	seen := make(map[int64]struct{}, len(d.slots))
	for _, s := range d.slots {
		if _, ok := seen[s.ID]; ok {
			return apperrors.NewValidation(fmt.Sprintf("duplicate slot id %d", s.ID))
		}
		seen[s.ID] = struct{}{}
		if s.StudiedSeconds < 0 || s.TargetSeconds < 0 {
			return apperrors.NewValidation(fmt.Sprintf("slot %d has a negative duration", s.ID))
		}
	}
	return nil
}

// AddSlot appends a fresh slot with a millisecond-clock id, zero studied time,
// and an empty note.
func (d *DaySet) AddSlot(label string, targetSeconds int64) (Slot, error) {
	if strings.TrimSpace(label) == "" {
		return Slot{}, apperrors.NewValidation("slot label is required")
	}
	if targetSeconds < 0 {
		return Slot{}, apperrors.NewValidation("target must not be negative")
	}
	slot := Slot{
		ID:            d.nextID(time.Now().UnixMilli()),
		Label:         label,
		TargetSeconds: targetSeconds,
	}
	d.slots = append(d.slots, slot)
	return slot, nil
}

// EditSlot applies patch to the slot with the given id. The set is left
// untouched when any field is rejected.
func (d *DaySet) EditSlot(id int64, patch SlotPatch) (Slot, error) {
	idx := d.index(id)
	if idx < 0 {
		return Slot{}, apperrors.NewNotFound(id)
	}
	updated := d.slots[idx]
	if patch.Label != nil {
		if strings.TrimSpace(*patch.Label) == "" {
			return Slot{}, apperrors.NewValidation("slot label is required")
		}
		updated.Label = *patch.Label
	}
	if patch.StudiedSeconds != nil {
		if *patch.StudiedSeconds < 0 {
			return Slot{}, apperrors.NewValidation("studied time must not be negative")
		}
		updated.StudiedSeconds = *patch.StudiedSeconds
	}
	if patch.TargetSeconds != nil {
		if *patch.TargetSeconds < 0 {
			return Slot{}, apperrors.NewValidation("target must not be negative")
		}
		updated.TargetSeconds = *patch.TargetSeconds
	}
	if patch.Note != nil {
		updated.Note = *patch.Note
	}
	d.slots[idx] = updated
	return updated, nil
}

// RemoveSlot deletes the slot with the given id, keeping the order of the rest.
func (d *DaySet) RemoveSlot(id int64) error {
	idx := d.index(id)
	if idx < 0 {
		return apperrors.NewNotFound(id)
	}
	next := make([]Slot, 0, len(d.slots)-1)
	next = append(next, d.slots[:idx]...)
	next = append(next, d.slots[idx+1:]...)
	d.slots = next
	return nil
}

// ResetFromTemplate replaces the set with the template slots, keeping their ids
// and targets and clearing studied time and notes.
func (d *DaySet) ResetFromTemplate(tpl DaySet) {
	slots := make([]Slot, 0, len(tpl.slots))
	for _, s := range tpl.slots {
		slots = append(slots, Slot{
			ID:            s.ID,
			Label:         s.Label,
			TargetSeconds: s.TargetSeconds,
		})
	}
	d.slots = slots
}

// SnapshotAsTemplate returns a template carrying the current labels and targets.
func (d DaySet) SnapshotAsTemplate() DaySet {
	var tpl DaySet
	tpl.ResetFromTemplate(d)
	return tpl
}

// FromTemplate builds a fresh day from a template.
func FromTemplate(tpl DaySet) DaySet {
	var d DaySet
	d.ResetFromTemplate(tpl)
	return d
}

func (d DaySet) index(id int64) int {
	for i, s := range d.slots {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (d DaySet) nextID(candidate int64) int64 {
	if d.index(candidate) < 0 {
		return candidate
	}
	maxID := candidate
	for _, s := range d.slots {
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	return maxID + 1
}
