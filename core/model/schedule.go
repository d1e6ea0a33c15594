package model

import (
	"sort"
	"time"

	"github.com/kilianp07/availreport/core/interval"
)

// Obligation is a committed booking for a person.
type Obligation struct {
	Person   PersonKey         `json:"person"`
	Interval interval.Interval `json:"interval"`
}

// DeclaredAvailability is a window a person declared as working hours.
type DeclaredAvailability struct {
	Person   PersonKey         `json:"person"`
	Interval interval.Interval `json:"interval"`
}

// FreeBlock is a maximal span of declared availability with no obligation.
type FreeBlock struct {
	Person   PersonKey         `json:"person"`
	Interval interval.Interval `json:"interval"`
}

// Slot is a bookable single-session unit carved from a FreeBlock.
type Slot struct {
	Person   PersonKey         `json:"person"`
	Interval interval.Interval `json:"interval"`
}

// PairingCandidate is a start time at which at least two people can take a
// joint session.
type PairingCandidate struct {
	Start  time.Time   `json:"start"`
	People []PersonKey `json:"people"`
	// Exact is set when the candidate was found by identical slot starts
	// rather than by intersecting free blocks.
	Exact bool `json:"exact"`
}

func less(pa, pb PersonKey, a, b interval.Interval) bool {
	if pa != pb {
		return pa < pb
	}
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	return a.End.Before(b.End)
}

// SortObligations orders obligations by (person, start, end).
func SortObligations(o []Obligation) {
	sort.SliceStable(o, func(i, j int) bool { return less(o[i].Person, o[j].Person, o[i].Interval, o[j].Interval) })
}

// SortAvailability orders declared windows by (person, start, end).
func SortAvailability(a []DeclaredAvailability) {
	sort.SliceStable(a, func(i, j int) bool { return less(a[i].Person, a[j].Person, a[i].Interval, a[j].Interval) })
}

// SortFreeBlocks orders blocks by (person, start, end).
func SortFreeBlocks(b []FreeBlock) {
	sort.SliceStable(b, func(i, j int) bool { return less(b[i].Person, b[j].Person, b[i].Interval, b[j].Interval) })
}

// SortSlots orders slots by (person, start, end).
func SortSlots(s []Slot) {
	sort.SliceStable(s, func(i, j int) bool { return less(s[i].Person, s[j].Person, s[i].Interval, s[j].Interval) })
}
