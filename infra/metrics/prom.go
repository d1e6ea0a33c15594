package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/availreport/core/metrics"
)

// PromSink records report generations in Prometheus metrics.
type PromSink struct {
	reports  *prometheus.CounterVec
	duration prometheus.Histogram
	people   prometheus.Gauge
	slots    prometheus.Gauge
	pairings prometheus.Gauge
	decoders *prometheus.CounterVec
}

// NewPromSink registers report metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	var err error
	s := &PromSink{}
	if s.reports, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availreport_reports_total",
		Help: "Total number of report generations by status",
	}, []string{"status"})); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "availreport_report_duration_seconds",
		Help:    "Time to decode both exports and build the report",
		Buckets: prometheus.DefBuckets,
	})); err != nil {
		return nil, err
	}
	if s.people, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "availreport_last_report_people",
		Help: "Number of people with declared availability in the last report",
	})); err != nil {
		return nil, err
	}
	if s.slots, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "availreport_last_report_slots",
		Help: "Number of bookable slots in the last report",
	})); err != nil {
		return nil, err
	}
	if s.pairings, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "availreport_last_report_pairings",
		Help: "Number of pairing candidates in the last report",
	})); err != nil {
		return nil, err
	}
	if s.decoders, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availreport_decoder_selected_total",
		Help: "Decoder that accepted each uploaded document",
	}, []string{"document", "decoder"})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordReport updates the counters and, for successful reports, the gauges
// describing the last report.
func (s *PromSink) RecordReport(ev coremetrics.ReportEvent) error {
	s.reports.WithLabelValues(ev.Status).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	for doc, dec := range ev.Decoders {
		s.decoders.WithLabelValues(doc, dec).Inc()
	}
	if ev.Status != coremetrics.StatusOK {
		return nil
	}
	s.people.Set(float64(ev.People))
	s.slots.Set(float64(ev.Slots))
	s.pairings.Set(float64(ev.Pairings))
	return nil
}
