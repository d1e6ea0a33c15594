package config

import (
	"fmt"
	"regexp"

	"github.com/kilianp07/availreport/core/factory"
	"github.com/kilianp07/availreport/core/schedule"
)

// ScheduleConfig controls how booking exports are read.
type ScheduleConfig struct {
	// ElitePattern matches descriptions of premium-tier bookings. "-" turns
	// the tier off.
	ElitePattern string                 `json:"elite_pattern"`
	Decoders     []factory.ModuleConfig `json:"decoders"`
}

// SetDefaults applies the default pattern and decoder chain.
func (c *ScheduleConfig) SetDefaults() {
	if c.ElitePattern == "" {
		c.ElitePattern = schedule.DefaultElitePattern
	}
	if len(c.Decoders) == 0 {
		c.Decoders = []factory.ModuleConfig{{Type: "xlsx"}, {Type: "csv"}, {Type: "html_table"}}
	}
}

// Validate checks that the pattern compiles.
func (c ScheduleConfig) Validate() error {
	if _, err := c.Elite(); err != nil {
		return err
	}
	if len(c.Decoders) == 0 {
		return fmt.Errorf("at least one decoder is required")
	}
	return nil
}

// Elite compiles ElitePattern. It returns nil when the tier is off.
func (c ScheduleConfig) Elite() (*regexp.Regexp, error) {
	if c.ElitePattern == "-" {
		return nil, nil
	}
	re, err := regexp.Compile(c.ElitePattern)
	if err != nil {
		return nil, fmt.Errorf("elite_pattern: %w", err)
	}
	return re, nil
}

// AvailabilityConfig controls how availability exports are read.
type AvailabilityConfig struct {
	Decoders []factory.ModuleConfig `json:"decoders"`
}

// SetDefaults applies the default decoder chain.
func (c *AvailabilityConfig) SetDefaults() {
	if len(c.Decoders) == 0 {
		c.Decoders = []factory.ModuleConfig{
			{Type: "xlsx"}, {Type: "csv"}, {Type: "html_sections"}, {Type: "html_table"},
		}
	}
}

// Validate checks that a chain is configured.
func (c AvailabilityConfig) Validate() error {
	if len(c.Decoders) == 0 {
		return fmt.Errorf("at least one decoder is required")
	}
	return nil
}
