// Package report assembles the engine stages into the weekly availability
// report. Build is a pure function of its inputs.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/kilianp07/availreport/core/availability"
	"github.com/kilianp07/availreport/core/model"
	"github.com/kilianp07/availreport/core/pairing"
	"github.com/kilianp07/availreport/core/schedule"
	"github.com/kilianp07/availreport/core/slots"
)

// Options configures Build.
type Options struct {
	Session   time.Duration
	Tolerance time.Duration
	MinGap    time.Duration
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	p := pairing.DefaultOptions()
	return Options{Session: slots.DefaultSession, Tolerance: p.Tolerance, MinGap: p.MinGap}
}

// Report is the client-facing availability of one week.
type Report struct {
	FreeBlocks []model.FreeBlock        `json:"free_blocks"`
	Slots      []model.Slot             `json:"slots"`
	Pairings   []model.PairingCandidate `json:"pairings"`
	Elite      []model.PersonKey        `json:"elite"`
	Names      []availability.NameEntry `json:"names"`
	Warnings   []string                 `json:"warnings,omitempty"`
}

// Build runs the slot and pairing engines over parsed inputs.
func Build(avail availability.Result, sched schedule.Result, opts Options) Report {
	computed := slots.Compute(avail.Availability, sched.Obligations, opts.Session)
	pairs := pairing.Find(computed.FreeBlocks, pairing.Options{
		Session:   opts.Session,
		Tolerance: opts.Tolerance,
		MinGap:    opts.MinGap,
	})
	return Report{
		FreeBlocks: computed.FreeBlocks,
		Slots:      computed.Slots,
		Pairings:   pairs,
		Elite:      append([]model.PersonKey(nil), sched.Elite...),
		Names:      append([]availability.NameEntry(nil), avail.Names...),
		Warnings:   warnings(avail, sched),
	}
}

// warnings flags the known weak spots of the name-based join.
func warnings(avail availability.Result, sched schedule.Result) []string {
	var out []string
	for _, k := range avail.Collisions {
		out = append(out, fmt.Sprintf("several therapists share the name key %q; their schedules are combined", k))
	}
	declared := make(map[model.PersonKey]struct{})
	for _, a := range avail.Availability {
		declared[a.Person] = struct{}{}
	}
	var unmatched []model.PersonKey
	seen := make(map[model.PersonKey]struct{})
	for _, o := range sched.Obligations {
		if _, ok := declared[o.Person]; ok {
			continue
		}
		if _, ok := seen[o.Person]; ok {
			continue
		}
		seen[o.Person] = struct{}{}
		unmatched = append(unmatched, o.Person)
	}
	sort.Slice(unmatched, func(i, j int) bool { return unmatched[i] < unmatched[j] })
	for _, k := range unmatched {
		out = append(out, fmt.Sprintf("bookings found for %q but no declared availability", k))
	}
	return out
}

// DisplayName returns the first raw name seen for key, or the title-cased
// key when the availability report never named it.
func (r Report) DisplayName(key model.PersonKey) string {
	for _, n := range r.Names {
		if n.Key == key {
			return n.Raw
		}
	}
	return key.Title()
}

// IsElite reports whether key belongs to the premium tier.
func (r Report) IsElite(key model.PersonKey) bool {
	for _, k := range r.Elite {
		if k == key {
			return true
		}
	}
	return false
}

// PersonSlots lists the slot starts of one person on one day.
type PersonSlots struct {
	Person model.PersonKey `json:"person"`
	Starts []time.Time     `json:"starts"`
}

// DaySlots groups the slots of one calendar date.
type DaySlots struct {
	Date   time.Time     `json:"date"`
	People []PersonSlots `json:"people"`
}

// SlotsByDate groups slots per calendar date, then per person, both in
// ascending order.
func (r Report) SlotsByDate() []DaySlots {
	// Keyed by calendar date: decoded times carry distinct *Location values.
	byDay := make(map[string]map[model.PersonKey][]time.Time)
	dates := make(map[string]time.Time)
	for _, s := range r.Slots {
		st := s.Interval.Start
		k := st.Format(time.DateOnly)
		if byDay[k] == nil {
			byDay[k] = make(map[model.PersonKey][]time.Time)
			dates[k] = time.Date(st.Year(), st.Month(), st.Day(), 0, 0, 0, 0, st.Location())
		}
		byDay[k][s.Person] = append(byDay[k][s.Person], st)
	}
	days := make([]DaySlots, 0, len(byDay))
	for k, people := range byDay {
		ds := DaySlots{Date: dates[k]}
		for p, starts := range people {
			sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
			ds.People = append(ds.People, PersonSlots{Person: p, Starts: starts})
		}
		sort.Slice(ds.People, func(i, j int) bool { return ds.People[i].Person < ds.People[j].Person })
		days = append(days, ds)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// WeekdayPairings groups pairing start times of one weekday.
type WeekdayPairings struct {
	Weekday time.Weekday `json:"weekday"`
	Starts  []time.Time  `json:"starts"`
}

// PairingsByWeekday groups pairing starts per weekday in chronological
// order of first appearance; identical clock times on the same weekday are
// listed once.
func (r Report) PairingsByWeekday() []WeekdayPairings {
	var out []WeekdayPairings
	index := make(map[time.Weekday]int)
	seen := make(map[time.Weekday]map[string]struct{})
	for _, p := range r.Pairings {
		wd := p.Start.Weekday()
		i, ok := index[wd]
		if !ok {
			i = len(out)
			index[wd] = i
			out = append(out, WeekdayPairings{Weekday: wd})
			seen[wd] = make(map[string]struct{})
		}
		clock := p.Start.Format("15:04")
		if _, dup := seen[wd][clock]; dup {
			continue
		}
		seen[wd][clock] = struct{}{}
		out[i].Starts = append(out[i].Starts, p.Start)
	}
	return out
}
