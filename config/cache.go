package config

import (
	"fmt"

	"github.com/kilianp07/availreport/core/factory"
)

// CacheConfig selects the parse cache backend.
type CacheConfig struct {
	// Backend is "memory", "sqlite" or "none".
	Backend    string `json:"backend"`
	Path       string `json:"path"`
	MaxEntries int    `json:"max_entries"`
}

// SetDefaults applies an in-memory cache.
func (c *CacheConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Path == "" {
		c.Path = "cache.db"
	}
	if c.MaxEntries == 0 {
		c.MaxEntries = 64
	}
}

// Validate checks the backend name.
func (c CacheConfig) Validate() error {
	switch c.Backend {
	case "memory", "sqlite", "none":
	default:
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("max_entries must not be negative")
	}
	return nil
}

// Module returns the factory configuration of the backend.
func (c CacheConfig) Module() factory.ModuleConfig {
	return factory.ModuleConfig{Type: c.Backend, Conf: map[string]any{
		"path":        c.Path,
		"max_entries": c.MaxEntries,
	}}
}
