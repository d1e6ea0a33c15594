package report

import (
	"fmt"
	"regexp"
)

var rangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{4})\s+to\s+(\d{1,2}-\d{1,2}-\d{4})`),
	regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{4})\s+-\s+(\d{1,2}-\d{1,2}-\d{4})`),
}

// DateRange is the reporting week encoded in an export's filename, kept as
// written (M-D-YYYY).
type DateRange struct {
	Start string
	End   string
}

func (d DateRange) String() string { return fmt.Sprintf("%s to %s", d.Start, d.End) }

// DateRangeFromFilename extracts "M-D-YYYY to M-D-YYYY" or
// "M-D-YYYY - M-D-YYYY" from an export filename.
func DateRangeFromFilename(name string) (DateRange, bool) {
	for _, re := range rangePatterns {
		if m := re.FindStringSubmatch(name); m != nil {
			return DateRange{Start: m[1], End: m[2]}, true
		}
	}
	return DateRange{}, false
}

// MatchingRange returns the shared range of two export filenames. Both must
// carry a readable range and the ranges must be equal.
func MatchingRange(availabilityName, scheduleName string) (DateRange, error) {
	a, okA := DateRangeFromFilename(availabilityName)
	s, okS := DateRangeFromFilename(scheduleName)
	switch {
	case !okA:
		return DateRange{}, fmt.Errorf("no date range in filename %q", availabilityName)
	case !okS:
		return DateRange{}, fmt.Errorf("no date range in filename %q", scheduleName)
	case a != s:
		return DateRange{}, fmt.Errorf("date ranges differ: %s vs %s", a, s)
	}
	return a, nil
}

// OutputName is the file name used for a rendered report of range d.
func OutputName(d DateRange, ext string) string {
	return fmt.Sprintf("Availability %s.%s", d, ext)
}
