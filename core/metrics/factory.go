package metrics

import "github.com/kilianp07/availreport/core/factory"

var sinkRegistry = factory.NewRegistry[ReportSink]()

func init() {
	_ = RegisterReportSink("nop", func(map[string]any) (ReportSink, error) {
		return NopSink{}, nil
	})
}

// RegisterReportSink adds a report sink factory identified by name.
func RegisterReportSink(name string, f factory.Factory[ReportSink]) error {
	return sinkRegistry.Register(name, f)
}

// NewReportSink creates a ReportSink from the provided configuration.
func NewReportSink(cfgs []factory.ModuleConfig) (ReportSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks, err := sinkRegistry.CreateAll(cfgs)
	if err != nil {
		return nil, err
	}
	return NewMultiSink(sinks...), nil
}

// Sinks lists the registered sink types.
func Sinks() []string { return sinkRegistry.Names() }
