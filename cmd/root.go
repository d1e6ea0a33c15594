package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/availreport/config"
	"github.com/kilianp07/availreport/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "availreport",
	Short:         "Weekly therapist availability report",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// setup loads the configuration, falling back to defaults when the file is
// absent, and configures logging. The returned function flushes the log.
func setup() (*config.Config, func(), error) {
	cfg, err := config.Load(cfgPath, true)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	closeLog, err := logger.Configure(cfg.Log.Options())
	if err != nil {
		return nil, nil, err
	}
	return cfg, func() { _ = closeLog() }, nil
}
