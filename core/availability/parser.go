// Package availability parses the semi-structured trainer availability
// report into declared working-hour windows per person.
//
// The report is read line by line. A "SCHEDULE FOR <name>" header opens a
// person section, a "Weekday, Month D, YYYY" line sets the current day and an
// "Appointments" line carrying "H:MM am - H:MM pm" declares one window for
// that person and day.
package availability

import (
	"regexp"
	"strings"
	"time"

	"github.com/kilianp07/availreport/core/document"
	"github.com/kilianp07/availreport/core/interval"
	"github.com/kilianp07/availreport/core/logger"
	"github.com/kilianp07/availreport/core/model"
)

const (
	personMarker = "SCHEDULE FOR"
	entryMarker  = "Appointments"
	dateLayout   = "Monday, January 2, 2006"
)

var (
	datePattern = regexp.MustCompile(`\b(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),\s(?:January|February|March|April|May|June|July|August|September|October|November|December)\s\d{1,2},\s\d{4}`)
	timeRange   = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:am|pm))\s*-\s*(\d{1,2}:\d{2}\s*(?:am|pm))`)
)

// Options configures Parse.
type Options struct {
	Location *time.Location
	Logger   logger.Logger
}

// NameEntry maps a raw display name to its PersonKey.
type NameEntry struct {
	Raw string          `json:"raw"`
	Key model.PersonKey `json:"key"`
}

// Result is the outcome of Parse.
type Result struct {
	Format       string                       `json:"format"`
	Availability []model.DeclaredAvailability `json:"availability"`
	// Names lists raw section names in first-occurrence order.
	Names []NameEntry `json:"names"`
	// Collisions lists keys reached from more than one distinct raw name.
	Collisions []model.PersonKey `json:"collisions,omitempty"`
}

type parser struct {
	loc    *time.Location
	log    logger.Logger
	person model.PersonKey
	date   time.Time
	hasDay bool

	res   Result
	seen  map[model.DeclaredAvailability]struct{}
	raw   map[string]struct{}
	byKey map[model.PersonKey]string
	clash map[model.PersonKey]struct{}
}

// Parse runs the section state machine over doc and returns the declared
// windows sorted by (person, start).
func Parse(doc document.Document, opts Options) (Result, error) {
	p := &parser{
		loc:   opts.Location,
		log:   opts.Logger,
		seen:  make(map[model.DeclaredAvailability]struct{}),
		raw:   make(map[string]struct{}),
		byKey: make(map[model.PersonKey]string),
		clash: make(map[model.PersonKey]struct{}),
	}
	if p.loc == nil {
		p.loc = time.UTC
	}
	if p.log == nil {
		p.log = logger.NopLogger{}
	}
	p.res.Format = doc.Format

	for n, line := range doc.Lines {
		p.line(n+1, line)
	}
	if len(p.res.Availability) == 0 {
		return Result{}, &AvailabilityFormatError{Msg: "no availability entries found; expected 'SCHEDULE FOR' sections with 'Appointments' time ranges such as '9:00 am - 5:00 pm'"}
	}
	model.SortAvailability(p.res.Availability)
	p.log.Infof("parsed %d availability windows for %d people", len(p.res.Availability), len(p.byKey))
	return p.res, nil
}

func (p *parser) line(n int, line string) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) >= len(personMarker) && strings.EqualFold(trimmed[:len(personMarker)], personMarker) {
		p.section(trimmed[len(personMarker):])
		return
	}

	if m := datePattern.FindString(line); m != "" {
		d, err := time.ParseInLocation(dateLayout, m, p.loc)
		if err != nil {
			p.log.Warnf("line %d: ignoring invalid date %q: %v", n, m, err)
			p.hasDay = false
		} else {
			p.date, p.hasDay = d, true
		}
	}

	if !strings.Contains(line, entryMarker) {
		return
	}
	m := timeRange.FindStringSubmatch(line)
	if m == nil {
		return
	}
	if p.person == "" || !p.hasDay {
		p.log.Debugw("discarding entry without person or date", map[string]any{"line": n})
		return
	}
	from, err1 := clock(m[1])
	to, err2 := clock(m[2])
	if err1 != nil || err2 != nil {
		p.log.Warnf("line %d: ignoring unreadable time range %q", n, m[0])
		return
	}
	iv, err := interval.New(p.at(from), p.at(to))
	if err != nil {
		p.log.Warnf("line %d: ignoring time range %q for %s: %v", n, m[0], p.person, err)
		return
	}
	da := model.DeclaredAvailability{Person: p.person, Interval: iv}
	if _, dup := p.seen[da]; dup {
		return
	}
	p.seen[da] = struct{}{}
	p.res.Availability = append(p.res.Availability, da)
}

// section starts a new person context. Date context never carries over.
func (p *parser) section(rawName string) {
	name := strings.TrimSpace(rawName)
	p.person = model.NormalizeName(name)
	p.hasDay = false
	if p.person == "" {
		p.log.Debugw("skipping section without a usable name", map[string]any{"name": name})
		return
	}
	if _, ok := p.raw[name]; ok {
		return
	}
	p.raw[name] = struct{}{}
	p.res.Names = append(p.res.Names, NameEntry{Raw: name, Key: p.person})
	if prev, ok := p.byKey[p.person]; ok && prev != name {
		if _, flagged := p.clash[p.person]; !flagged {
			p.clash[p.person] = struct{}{}
			p.res.Collisions = append(p.res.Collisions, p.person)
			p.log.Warnf("names %q and %q share the key %q", prev, name, p.person)
		}
		return
	}
	p.byKey[p.person] = name
}

func (p *parser) at(offset time.Duration) time.Time {
	return time.Date(p.date.Year(), p.date.Month(), p.date.Day(), 0, 0, int(offset/time.Second), 0, p.loc)
}

// clock parses "9:00 am", "9:00am" or "09:00 PM".
func clock(s string) (time.Duration, error) {
	s = strings.ToUpper(strings.Join(strings.Fields(s), ""))
	t, err := time.Parse("3:04PM", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
