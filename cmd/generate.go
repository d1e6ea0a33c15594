package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kilianp07/availreport/app"
	"github.com/kilianp07/availreport/core/report"
	"github.com/kilianp07/availreport/infra/logger"
	inframetrics "github.com/kilianp07/availreport/infra/metrics"
	"github.com/kilianp07/availreport/pkg/export"
)

type generateFlags struct {
	availability string
	schedule     string
	format       string
	out          string
	skipCheck    bool
}

var genFlags generateFlags

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the report of one week from the two exports",
	Long: `Reads the trainer availability export and the booking schedule export,
computes bookable slots and pairing times, and writes the report.

Both file names must carry the same week ("1-6-2025 to 1-12-2025") unless
--skip-filename-check is set. The output is named after that week unless
--out names a file, or "-" for stdout.`,
	RunE: generate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genFlags.availability, "availability", "a", "", "trainer availability export")
	f.StringVarP(&genFlags.schedule, "schedule", "s", "", "booking schedule export")
	f.StringVarP(&genFlags.format, "format", "f", "json", "output format: json, csv or text")
	f.StringVarP(&genFlags.out, "out", "o", "", `output file or directory; "-" for stdout`)
	f.BoolVar(&genFlags.skipCheck, "skip-filename-check", false, "do not require matching week ranges in the file names")
	_ = generateCmd.MarkFlagRequired("availability")
	_ = generateCmd.MarkFlagRequired("schedule")
	rootCmd.AddCommand(generateCmd)
}

func generate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fl := genFlags
	if !slices.Contains(export.Formats, fl.format) {
		return fmt.Errorf("unsupported format %q", fl.format)
	}
	rng, hasRange := report.DateRangeFromFilename(filepath.Base(fl.availability))
	if !fl.skipCheck {
		r, err := report.MatchingRange(filepath.Base(fl.availability), filepath.Base(fl.schedule))
		if err != nil {
			return fmt.Errorf("%w (use --skip-filename-check to override)", err)
		}
		rng, hasRange = r, true
	}

	availRaw, err := os.ReadFile(fl.availability)
	if err != nil {
		return err
	}
	schedRaw, err := os.ReadFile(fl.schedule)
	if err != nil {
		return err
	}

	cfg, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()
	logg := logger.New("generate")

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	res, genErr := svc.Generate(ctx, availRaw, schedRaw)
	if cfg.Metrics.PrometheusEnabled && cfg.Metrics.PushURL != "" {
		if err := inframetrics.Push(ctx, cfg.Metrics.PushURL, cfg.Metrics.Job, prometheus.DefaultGatherer); err != nil {
			logg.Warnf("%v", err)
		}
	}
	if genErr != nil {
		return genErr
	}

	env := export.Envelope{ID: res.ID.String(), GeneratedAt: res.GeneratedAt, Report: res.Report}
	if fl.out == "-" {
		return export.Write(cmd.OutOrStdout(), fl.format, env)
	}
	path, err := outputPath(fl.out, fl.format, rng, hasRange)
	if err != nil {
		return err
	}
	if err := writeFile(path, func(w io.Writer) error { return export.Write(w, fl.format, env) }); err != nil {
		return err
	}
	logg.Infof("report %s written to %s", res.ID, path)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// outputPath resolves --out: a directory receives the week-named file, an
// empty value means the current directory.
func outputPath(out, format string, rng report.DateRange, hasRange bool) (string, error) {
	dir := out
	if out != "" {
		st, err := os.Stat(out)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err != nil || !st.IsDir() {
			return out, nil
		}
	}
	name := "Availability report." + export.Extension(format)
	if hasRange {
		name = report.OutputName(rng, export.Extension(format))
	}
	return filepath.Join(dir, name), nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
