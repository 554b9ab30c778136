package stats

import "github.com/verte-zerg/slotlog/internal/duration"

// NoSlot is the label reported when no slot has any studied time.
const NoSlot = "N/A"

// SlotAverage is the mean studied time of one slot label across days.
type SlotAverage struct {
	Label        string
	AverageHours float64
	Count        int
}

// SlotAverages groups studied time by slot label across every saved day.
// Slots are matched by label text, not id, so a renamed slot starts a new
// group. Groups are returned in order of first appearance, walking days in
// h.Dates() order and slots in display order.
func SlotAverages(h History) []SlotAverage {
	type acc struct {
		seconds int64
		count   int
	}
	var order []string
	groups := map[string]*acc{}
	for _, key := range h.Dates() {
		set, ok := h.Get(key)
		if !ok {
			continue
		}
		for _, s := range set.Slots() {
			g, ok := groups[s.Label]
			if !ok {
				g = &acc{}
				groups[s.Label] = g
				order = append(order, s.Label)
			}
			g.seconds += s.StudiedSeconds
			g.count++
		}
	}
	out := make([]SlotAverage, 0, len(order))
	for _, label := range order {
		g := groups[label]
		out = append(out, SlotAverage{
			Label:        label,
			AverageHours: duration.Hours(g.seconds) / float64(g.count),
			Count:        g.count,
		})
	}
	return out
}

// BestSlot returns the label with the strictly greatest average hours. Ties
// keep the label that appeared first. A label must average more than zero
// to win; otherwise the result is NoSlot.
func BestSlot(h History) SlotAverage {
	return BestOf(SlotAverages(h))
}

// BestOf picks the best slot from precomputed averages.
func BestOf(averages []SlotAverage) SlotAverage {
	best := SlotAverage{Label: NoSlot}
	for _, avg := range averages {
		if avg.AverageHours > best.AverageHours {
			best = avg
		}
	}
	return best
}
