// Package schedule turns the tabular booking export into per-person busy
// intervals.
package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/kilianp07/availreport/core/document"
	"github.com/kilianp07/availreport/core/interval"
	"github.com/kilianp07/availreport/core/logger"
	"github.com/kilianp07/availreport/core/model"
)

// Column names as delivered by the booking export.
const (
	ColDate        = "Date"
	ColStart       = "Start time"
	ColEnd         = "End time"
	ColDescription = "Description"
	ColStaff       = "Staff"
)

// RequiredColumns lists the header fields the export must carry.
var RequiredColumns = []string{ColDate, ColStart, ColEnd, ColDescription, ColStaff}

// DefaultElitePattern marks the premium therapist tier in descriptions.
const DefaultElitePattern = `(?i)\belite\b`

// Options configures Normalize.
type Options struct {
	// Location anchors the naive timestamps of the export.
	Location *time.Location
	// Elite matches descriptions of the premium tier. Nil disables the tier.
	Elite  *regexp.Regexp
	Logger logger.Logger
}

// Result is the outcome of Normalize.
type Result struct {
	// Format names the decoder that produced the table.
	Format      string             `json:"format"`
	Obligations []model.Obligation `json:"obligations"`
	Elite       []model.PersonKey  `json:"elite"`
	// Dropped counts filler rows skipped because a field was blank.
	Dropped int `json:"dropped"`
}

// Normalize extracts the deduplicated, sorted obligations of a booking
// export. Rows with a blank staff, date, start or end are dropped; rows whose
// values are present but do not parse as timestamps fail the whole document.
func Normalize(t document.Table, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NopLogger{}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	idx := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, c := range RequiredColumns {
		i := t.Column(c)
		if i < 0 {
			missing = append(missing, c)
			continue
		}
		idx[c] = i
	}
	if len(missing) > 0 {
		return Result{}, &ScheduleFormatError{Msg: "missing required column(s): " + strings.Join(missing, ", ")}
	}

	var (
		res   Result
		seen  = make(map[model.Obligation]struct{})
		elite = make(map[model.PersonKey]struct{})
	)
	for n, row := range t.Rows {
		staff := document.Cell(row, idx[ColStaff])
		date := document.Cell(row, idx[ColDate])
		start := document.Cell(row, idx[ColStart])
		end := document.Cell(row, idx[ColEnd])
		person := model.NormalizeName(staff)
		if person == "" || date == "" || start == "" || end == "" {
			res.Dropped++
			log.Debugw("dropping incomplete row", map[string]any{"row": n + 2, "staff": staff})
			continue
		}

		from, err := combine(date, start, loc)
		if err != nil {
			return Result{}, &ScheduleFormatError{Msg: fmt.Sprintf("row %d: start", n+2), Err: err}
		}
		to, err := combine(date, end, loc)
		if err != nil {
			return Result{}, &ScheduleFormatError{Msg: fmt.Sprintf("row %d: end", n+2), Err: err}
		}
		iv, err := interval.New(from, to)
		if err != nil {
			log.Warnf("row %d: skipping booking for %s: %v", n+2, person, err)
			continue
		}

		if opts.Elite != nil && opts.Elite.MatchString(document.Cell(row, idx[ColDescription])) {
			elite[person] = struct{}{}
		}
		ob := model.Obligation{Person: person, Interval: iv}
		if _, dup := seen[ob]; dup {
			continue
		}
		seen[ob] = struct{}{}
		res.Obligations = append(res.Obligations, ob)
	}

	res.Format = t.Format
	model.SortObligations(res.Obligations)
	for k := range elite {
		res.Elite = append(res.Elite, k)
	}
	sort.Slice(res.Elite, func(i, j int) bool { return res.Elite[i] < res.Elite[j] })
	log.Infof("normalized %d obligations (%d filler rows dropped)", len(res.Obligations), res.Dropped)
	return res, nil
}
