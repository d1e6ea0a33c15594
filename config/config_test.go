package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `engine:
  session_minutes: 60
  tolerance_minutes: 0
  timezone: "Europe/Paris"
schedule:
  elite_pattern: "(?i)premium"
availability:
  decoders:
    - type: "html_sections"
cache:
  backend: "sqlite"
  path: "/tmp/cache.db"
server:
  address: ":9000"
metrics:
  prometheus_enabled: false
  push_url: "http://gateway:9091"
log:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	opts := cfg.Engine.Options()
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"session", opts.Session, time.Hour},
		{"tolerance", opts.Tolerance, time.Duration(0)},
		{"min_gap default", opts.MinGap, time.Hour},
		{"timezone", cfg.Engine.Timezone, "Europe/Paris"},
		{"elite_pattern", cfg.Schedule.ElitePattern, "(?i)premium"},
		{"schedule decoders default", len(cfg.Schedule.Decoders), 3},
		{"availability decoders", len(cfg.Availability.Decoders), 1},
		{"cache.backend", cfg.Cache.Backend, "sqlite"},
		{"cache.max_entries default", cfg.Cache.MaxEntries, 64},
		{"server.address", cfg.Server.Address, ":9000"},
		{"server.max_upload_mb default", cfg.Server.MaxUploadMB, 16},
		{"metrics.prometheus_enabled", cfg.Metrics.PrometheusEnabled, false},
		{"metrics.push_url", cfg.Metrics.PushURL, "http://gateway:9091"},
		{"metrics.job default", cfg.Metrics.Job, "availreport"},
		{"log.level", cfg.Log.Level, "debug"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: got %v want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadJSONAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"engine":{"session_minutes":90}}`), 0o644))
	t.Setenv("K_ENGINE__SESSION_MINUTES", "45")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.Engine.Options().Session)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	_, err := Load(path, false)
	assert.Error(t, err)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, Default().Engine.Options(), cfg.Engine.Options())
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, "html_sections", cfg.Availability.Decoders[2].Type)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
	_, err := Load(path, false)
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"session":   func(c *Config) { c.Engine.SessionMinutes = -1 },
		"tolerance": func(c *Config) { v := 75; c.Engine.ToleranceMinutes = &v },
		"min_gap":   func(c *Config) { v := -5; c.Engine.MinGapMinutes = &v },
		"timezone":  func(c *Config) { c.Engine.Timezone = "Mars/Olympus" },
		"elite":     func(c *Config) { c.Schedule.ElitePattern = "(" },
		"cache":     func(c *Config) { c.Cache.Backend = "redis" },
		"log":       func(c *Config) { c.Log.Level = "loud" },
	}
	require.NoError(t, Default().Validate())
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEliteDisabled(t *testing.T) {
	c := ScheduleConfig{ElitePattern: "-"}
	re, err := c.Elite()
	require.NoError(t, err)
	assert.Nil(t, re)
}

func TestSinkModules(t *testing.T) {
	c := MetricsConfig{PrometheusEnabled: true}
	c.Sinks = nil
	assert.Len(t, c.SinkModules(), 1)
	c.PrometheusEnabled = false
	assert.Empty(t, c.SinkModules())
}
