package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/kilianp07/availreport/api/report"
	"github.com/kilianp07/availreport/app"
	"github.com/kilianp07/availreport/infra/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve report generation over HTTP",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()
	logg := logger.New("http")

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	opts := report.Options{MaxUploadBytes: cfg.Server.MaxUploadBytes(), Logger: logg}
	if cfg.Metrics.PrometheusEnabled {
		opts.Metrics = promhttp.Handler()
	}
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           report.NewRouter(svc, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logg.Infof("listening on %s", cfg.Server.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
