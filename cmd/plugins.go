package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/availreport/app/plugins"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the built-in decoders, cache backends and metrics sinks",
	RunE: func(cmd *cobra.Command, _ []string) error {
		avail := plugins.Available()
		for _, k := range plugins.Kinds {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, strings.Join(avail[k], ", ")); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}
