package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/availreport/core/report"
)

// EngineConfig tunes slot and pairing computation.
type EngineConfig struct {
	SessionMinutes   int    `json:"session_minutes"`
	ToleranceMinutes *int   `json:"tolerance_minutes"`
	MinGapMinutes    *int   `json:"min_gap_minutes"`
	Timezone         string `json:"timezone"`
}

// SetDefaults applies the production session settings.
func (c *EngineConfig) SetDefaults() {
	d := report.DefaultOptions()
	if c.SessionMinutes == 0 {
		c.SessionMinutes = int(d.Session / time.Minute)
	}
	if c.ToleranceMinutes == nil {
		v := int(d.Tolerance / time.Minute)
		c.ToleranceMinutes = &v
	}
	if c.MinGapMinutes == nil {
		v := int(d.MinGap / time.Minute)
		c.MinGapMinutes = &v
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
}

// Validate checks the durations and the time zone.
func (c EngineConfig) Validate() error {
	if c.SessionMinutes <= 0 {
		return fmt.Errorf("session_minutes must be positive")
	}
	if c.ToleranceMinutes != nil && (*c.ToleranceMinutes < 0 || *c.ToleranceMinutes >= c.SessionMinutes) {
		return fmt.Errorf("tolerance_minutes must be in [0, session_minutes)")
	}
	if c.MinGapMinutes != nil && *c.MinGapMinutes < 0 {
		return fmt.Errorf("min_gap_minutes must not be negative")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}

// Options converts the settings into report options.
func (c EngineConfig) Options() report.Options {
	o := report.Options{Session: time.Duration(c.SessionMinutes) * time.Minute}
	if c.ToleranceMinutes != nil {
		o.Tolerance = time.Duration(*c.ToleranceMinutes) * time.Minute
	}
	if c.MinGapMinutes != nil {
		o.MinGap = time.Duration(*c.MinGapMinutes) * time.Minute
	}
	return o
}

// Location returns the time zone the exports' naive timestamps are read in.
func (c EngineConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
