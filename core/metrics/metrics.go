package metrics

import "time"

// Report statuses.
const (
	StatusOK                = "ok"
	StatusScheduleError     = "schedule_error"
	StatusAvailabilityError = "availability_error"
	StatusInternalError     = "error"
)

// ReportEvent describes one report generation.
type ReportEvent struct {
	ID       string
	Status   string
	Duration time.Duration
	People   int
	Slots    int
	Pairings int
	// Decoders maps the document kind ("schedule", "availability") to the
	// decoder that accepted it. Cached documents are reported as "cache".
	Decoders map[string]string
	Time     time.Time
}

// ReportSink records report generations for observability purposes.
type ReportSink interface {
	RecordReport(ev ReportEvent) error
}

// NopSink implements ReportSink with a no-op.
type NopSink struct{}

func (NopSink) RecordReport(ReportEvent) error { return nil }
