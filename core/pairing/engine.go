// Package pairing finds start times at which two or more therapists can
// take a joint session.
//
// Exact matches (identical slot starts) are found first and always win.
// Near-miss matches come from intersecting free blocks pair by pair; a
// near-miss that coincides with, or lies within MinGap of, an exact match is
// dropped so the report is not flooded with near-duplicates.
package pairing

import (
	"sort"
	"time"

	"github.com/kilianp07/availreport/core/interval"
	"github.com/kilianp07/availreport/core/model"
)

// Options configures Find.
type Options struct {
	Session time.Duration
	// Tolerance is how much shorter than Session a shared window may be and
	// still be offered as a near-miss. Zero requires a full session.
	Tolerance time.Duration
	// MinGap keeps near-misses away from exact-match start times.
	MinGap time.Duration
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{Session: 75 * time.Minute, Tolerance: 30 * time.Minute, MinGap: time.Hour}
}

type group struct {
	start  time.Time
	people map[model.PersonKey]struct{}
	exact  bool
}

type candidates map[int64]*group

func (c candidates) add(start time.Time, exact bool, people ...model.PersonKey) {
	k := start.UnixNano()
	g, ok := c[k]
	if !ok {
		g = &group{start: start, people: make(map[model.PersonKey]struct{})}
		c[k] = g
	}
	for _, p := range people {
		g.people[p] = struct{}{}
	}
	g.exact = g.exact || exact
}

// Find returns the pairing candidates of blocks sorted by start time.
func Find(blocks []model.FreeBlock, opts Options) []model.PairingCandidate {
	if opts.Session <= 0 || len(blocks) == 0 {
		return nil
	}
	found := make(candidates)

	exactStarts := exactPhase(blocks, opts.Session, found)
	nearMissPhase(blocks, opts, exactStarts, found)

	out := make([]model.PairingCandidate, 0, len(found))
	for _, g := range found {
		if len(g.people) < 2 {
			continue
		}
		c := model.PairingCandidate{Start: g.start, Exact: g.exact}
		for p := range g.people {
			c.People = append(c.People, p)
		}
		sort.Slice(c.People, func(i, j int) bool { return c.People[i] < c.People[j] })
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// exactPhase groups flush-left slots by start and records every start shared
// by at least two people.
func exactPhase(blocks []model.FreeBlock, session time.Duration, found candidates) []time.Time {
	byStart := make(map[int64]map[model.PersonKey]struct{})
	starts := make(map[int64]time.Time)
	for _, b := range blocks {
		for _, s := range interval.Quantize(b.Interval, session, interval.FlushLeft) {
			k := s.Start.UnixNano()
			if byStart[k] == nil {
				byStart[k] = make(map[model.PersonKey]struct{})
				starts[k] = s.Start
			}
			byStart[k][b.Person] = struct{}{}
		}
	}
	var exact []time.Time
	for k, people := range byStart {
		if len(people) < 2 {
			continue
		}
		keys := make([]model.PersonKey, 0, len(people))
		for p := range people {
			keys = append(keys, p)
		}
		found.add(starts[k], true, keys...)
		exact = append(exact, starts[k])
	}
	sort.Slice(exact, func(i, j int) bool { return exact[i].Before(exact[j]) })
	return exact
}

// nearMissPhase intersects the free blocks of every pair of people and walks
// each shared window in session steps from its start. A start qualifies when
// the shared window holds Session-Tolerance from it and at least one of the
// two people is free for the full session.
func nearMissPhase(blocks []model.FreeBlock, opts Options, exact []time.Time, found candidates) {
	byPerson := make(map[model.PersonKey][]interval.Interval)
	var people []model.PersonKey
	for _, b := range blocks {
		if _, ok := byPerson[b.Person]; !ok {
			people = append(people, b.Person)
		}
		byPerson[b.Person] = append(byPerson[b.Person], b.Interval)
	}
	sort.Slice(people, func(i, j int) bool { return people[i] < people[j] })

	need := opts.Session - opts.Tolerance
	if need <= 0 || need > opts.Session {
		need = opts.Session
	}
	for i := 0; i < len(people); i++ {
		for j := i + 1; j < len(people); j++ {
			a, b := people[i], people[j]
			for _, ba := range byPerson[a] {
				for _, bb := range byPerson[b] {
					overlap, ok := interval.Intersect(ba, bb)
					if !ok || overlap.Duration() < need {
						continue
					}
					for t := overlap.Start; !t.Add(need).After(overlap.End); t = t.Add(opts.Session) {
						end := t.Add(opts.Session)
						if end.After(ba.End) && end.After(bb.End) {
							// only one of the two may run short
							continue
						}
						if nearExact(t, exact, opts.MinGap) {
							continue
						}
						found.add(t, false, a, b)
					}
				}
			}
		}
	}
}

// nearExact reports whether t equals an exact start or lies strictly within
// gap of one.
func nearExact(t time.Time, exact []time.Time, gap time.Duration) bool {
	for _, e := range exact {
		d := t.Sub(e)
		if d < 0 {
			d = -d
		}
		if d == 0 || d < gap {
			return true
		}
	}
	return false
}
