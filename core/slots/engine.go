// Package slots subtracts obligations from declared working hours and cuts
// the remaining free time into bookable single-person sessions.
package slots

import (
	"time"

	"github.com/kilianp07/availreport/core/interval"
	"github.com/kilianp07/availreport/core/model"
)

// DefaultSession is the length of one bookable session.
const DefaultSession = 75 * time.Minute

// Result holds the continuous free time and its discrete slots.
type Result struct {
	FreeBlocks []model.FreeBlock `json:"free_blocks"`
	Slots      []model.Slot      `json:"slots"`
}

// Compute returns the free blocks and session slots of every declared
// window. Blocks and slots are sorted by (person, start).
//
// In a window that carries at least one obligation, the first free block is
// filled from its end so that the morning buffer sits before the first slot
// rather than before the first booked appointment. All other blocks are
// filled from their start.
func Compute(avail []model.DeclaredAvailability, obligations []model.Obligation, session time.Duration) Result {
	busyByPerson := make(map[model.PersonKey][]interval.Interval)
	for _, o := range obligations {
		busyByPerson[o.Person] = append(busyByPerson[o.Person], o.Interval)
	}

	var res Result
	for _, a := range avail {
		window := a.Interval
		var busy []interval.Interval
		for _, b := range busyByPerson[a.Person] {
			if c, ok := interval.Clip(b, window); ok {
				busy = append(busy, c)
			}
		}
		merged := interval.Merge(busy)
		free := interval.Subtract(window, merged)

		for i, f := range free {
			res.FreeBlocks = append(res.FreeBlocks, model.FreeBlock{Person: a.Person, Interval: f})
			placement := interval.FlushLeft
			if i == 0 && len(merged) > 0 {
				placement = interval.FlushRight
			}
			for _, s := range interval.Quantize(f, session, placement) {
				res.Slots = append(res.Slots, model.Slot{Person: a.Person, Interval: s})
			}
		}
	}
	model.SortFreeBlocks(res.FreeBlocks)
	model.SortSlots(res.Slots)
	return res
}
