package interval

import (
	"errors"
	"sort"
	"time"
)

// ErrEmpty is returned when an interval would have zero or negative length.
var ErrEmpty = errors.New("interval end must be after start")

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New returns the interval [start, end) or ErrEmpty.
func New(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrEmpty
	}
	return Interval{Start: start, End: end}, nil
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration { return i.End.Sub(i.Start) }

// Contains reports whether o lies fully inside i.
func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// Overlaps reports whether i and o share a positive-length span.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Sort orders intervals by start, then end, in place.
func Sort(ivs []Interval) {
	sort.SliceStable(ivs, func(a, b int) bool {
		if !ivs[a].Start.Equal(ivs[b].Start) {
			return ivs[a].Start.Before(ivs[b].Start)
		}
		return ivs[a].End.Before(ivs[b].End)
	})
}

// Merge returns the sorted, non-overlapping union of ivs. Touching spans
// (next.Start == cur.End) are merged. The input is not modified.
func Merge(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	Sort(sorted)

	out := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		cur := &out[len(out)-1]
		if !next.Start.After(cur.End) {
			if next.End.After(cur.End) {
				cur.End = next.End
			}
			continue
		}
		out = append(out, next)
	}
	return out
}

// Subtract returns the parts of window not covered by busy. busy must be
// sorted and non-overlapping (see Merge); spans outside window are ignored.
func Subtract(window Interval, busy []Interval) []Interval {
	var free []Interval
	cur := window.Start
	for _, b := range busy {
		if !b.End.After(window.Start) || !b.Start.Before(window.End) {
			continue
		}
		if cur.Before(b.Start) {
			free = append(free, Interval{Start: cur, End: b.Start})
		}
		if b.End.After(cur) {
			cur = b.End
		}
	}
	if cur.Before(window.End) {
		free = append(free, Interval{Start: cur, End: window.End})
	}
	return free
}

// Intersect returns the overlap of a and b, or false when they do not share
// a positive-length span.
func Intersect(a, b Interval) (Interval, bool) {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	if !end.After(start) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Clip restricts i to window.
func Clip(i, window Interval) (Interval, bool) { return Intersect(i, window) }

// Placement selects how Quantize anchors units inside a block.
type Placement int

const (
	// FlushLeft packs units from the block start.
	FlushLeft Placement = iota
	// FlushRight packs units against the block end.
	FlushRight
)

// Quantize cuts block into as many contiguous units of length d as fit.
// Leftover time sits after the last unit (FlushLeft) or before the first
// one (FlushRight).
func Quantize(block Interval, d time.Duration, p Placement) []Interval {
	if d <= 0 {
		return nil
	}
	n := int(block.Duration() / d)
	if n == 0 {
		return nil
	}
	start := block.Start
	if p == FlushRight {
		start = block.End.Add(-time.Duration(n) * d)
	}
	out := make([]Interval, 0, n)
	for k := 0; k < n; k++ {
		s := start.Add(time.Duration(k) * d)
		out = append(out, Interval{Start: s, End: s.Add(d)})
	}
	return out
}

// Total returns the summed duration of ivs.
func Total(ivs []Interval) time.Duration {
	var d time.Duration
	for _, i := range ivs {
		d += i.Duration()
	}
	return d
}
