package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"01-02-2006",
	"1-2-2006",
	"01-02-06",
	"1-2-06",
	"Monday, January 2, 2006",
	"Mon, January 2, 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3:04:05PM",
	"15:04",
	"15:04:05",
}

var errUnparseable = errors.New("unrecognised format")

// parseDate returns the calendar date of s at midnight in loc. Excel serial
// numbers are accepted for cells exported without a display format.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.ParseInLocation(l, s, loc); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 1 {
		t, err := excelize.ExcelDateToTime(f, false)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q: %w", s, errUnparseable)
}

// parseClock returns the offset from midnight of a wall-clock time.
func parseClock(s string) (time.Duration, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, l := range clockLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	// Excel stores bare times as a fraction of a day.
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 && f < 1 {
		return time.Duration(f*24*60*60+0.5) * time.Second, nil
	}
	return 0, fmt.Errorf("time %q: %w", s, errUnparseable)
}

// combine parses a date cell and a time cell into one timestamp.
func combine(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := parseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	c, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	// time.Date normalises the seconds into wall-clock fields, which keeps
	// the result correct on days with a DST transition.
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, int(c/time.Second), 0, loc), nil
}
