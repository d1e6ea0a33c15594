package metrics

import "errors"

// MultiSink fans report events out to multiple sinks.
type MultiSink struct {
	Sinks []ReportSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...ReportSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordReport forwards the event to every sink and joins their errors.
func (m *MultiSink) RecordReport(ev ReportEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordReport(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
