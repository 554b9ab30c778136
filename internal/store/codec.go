package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/verte-zerg/slotlog/internal/datekey"
	"github.com/verte-zerg/slotlog/internal/duration"
	"github.com/verte-zerg/slotlog/internal/model"
)

// slotRecord is the persisted shape of a slot.
type slotRecord struct {
	ID            int64  `json:"id"`
	Time          string `json:"time"`
	Hours         string `json:"hours"`
	PossibleHours string `json:"possibleHours"`
	Note          string `json:"note"`
}

func encodeSlots(set model.DaySet) []slotRecord {
	slots := set.Slots()
	out := make([]slotRecord, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotRecord{
			ID:            s.ID,
			Time:          s.Label,
			Hours:         duration.Format(s.StudiedSeconds),
			PossibleHours: duration.Format(s.TargetSeconds),
			Note:          s.Note,
		})
	}
	return out
}

func decodeSlots(records []slotRecord) (model.DaySet, error) {
	slots := make([]model.Slot, 0, len(records))
	for _, r := range records {
		studied, err := duration.Parse(r.Hours)
		if err != nil {
			return model.DaySet{}, fmt.Errorf("slot %d hours: %w", r.ID, err)
		}
		target, err := duration.Parse(r.PossibleHours)
		if err != nil {
			return model.DaySet{}, fmt.Errorf("slot %d possibleHours: %w", r.ID, err)
		}
		slots = append(slots, model.Slot{
			ID:             r.ID,
			Label:          r.Time,
			StudiedSeconds: studied,
			TargetSeconds:  target,
			Note:           r.Note,
		})
	}
	return model.NewDaySet(slots)
}

func encodeHistory(days map[string]model.DaySet) ([]byte, error) {
	out := make(map[string][]slotRecord, len(days))
	for key, set := range days {
		out[key] = encodeSlots(set)
	}
	return json.Marshal(out)
}

// decodeHistory parses a persisted history mapping. When legacy is set,
// DD/MM/YYYY keys are converted to canonical keys.
func decodeHistory(payload []byte, legacy bool) (map[string]model.DaySet, error) {
	if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil, fmt.Errorf("history is null")
	}
	var raw map[string][]slotRecord
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}
	days := make(map[string]model.DaySet, len(raw))
	for key, records := range raw {
		if records == nil {
			return nil, fmt.Errorf("day %s is null", key)
		}
		canonical := key
		if !datekey.Valid(key) {
			if !legacy {
				return nil, fmt.Errorf("invalid date key %q", key)
			}
			converted, err := datekey.FromLegacy(key)
			if err != nil {
				return nil, err
			}
			canonical = converted
		}
		if _, dup := days[canonical]; dup {
			return nil, fmt.Errorf("date %s appears more than once", canonical)
		}
		set, err := decodeSlots(records)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", key, err)
		}
		days[canonical] = set
	}
	return days, nil
}

func encodeTemplate(tpl model.DaySet) ([]byte, error) {
	return json.Marshal(encodeSlots(tpl))
}

func decodeTemplate(payload []byte) (model.DaySet, error) {
	var records []slotRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return model.DaySet{}, err
	}
	if records == nil {
		return model.DaySet{}, fmt.Errorf("template is null")
	}
	return decodeSlots(records)
}
