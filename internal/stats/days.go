package stats

import (
	"sort"

	"github.com/verte-zerg/slotlog/internal/model"
)

// Days is an in-memory History keyed by canonical date key.
type Days map[string]model.DaySet

// Dates implements History in ascending key order.
func (d Days) Dates() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get implements History.
func (d Days) Get(key string) (model.DaySet, bool) {
	set, ok := d[key]
	return set, ok
}
