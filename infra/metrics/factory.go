package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/availreport/core/metrics"
)

// init registers the Prometheus sink. It always uses the default registerer
// so /metrics and Push expose what it records.
func init() {
	_ = coremetrics.RegisterReportSink("prometheus", func(map[string]any) (coremetrics.ReportSink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})
}
