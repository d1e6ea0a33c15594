package config

import "github.com/kilianp07/availreport/core/factory"

// MetricsConfig defines report metrics export.
type MetricsConfig struct {
	PrometheusEnabled bool `json:"prometheus_enabled"`
	// PushURL is the Pushgateway the generate command pushes to. Empty
	// disables pushing.
	PushURL string `json:"push_url"`
	Job     string `json:"job"`
	// Sinks lists additional sinks by factory type.
	Sinks []factory.ModuleConfig `json:"sinks"`
}

func (c *MetricsConfig) SetDefaults() {
	if c.Job == "" {
		c.Job = "availreport"
	}
}

// SinkModules returns the sinks to build, the Prometheus one first when
// enabled.
func (c MetricsConfig) SinkModules() []factory.ModuleConfig {
	var out []factory.ModuleConfig
	if c.PrometheusEnabled {
		out = append(out, factory.ModuleConfig{Type: "prometheus"})
	}
	for _, s := range c.Sinks {
		if s.Type == "prometheus" && c.PrometheusEnabled {
			continue
		}
		out = append(out, s)
	}
	return out
}
