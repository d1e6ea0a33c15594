// Package report exposes report generation over HTTP.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kilianp07/availreport/app"
	"github.com/kilianp07/availreport/core/availability"
	"github.com/kilianp07/availreport/core/logger"
	"github.com/kilianp07/availreport/core/schedule"
	"github.com/kilianp07/availreport/pkg/export"
)

// Generator builds a report from the raw availability and schedule exports.
type Generator interface {
	Generate(ctx context.Context, availRaw, schedRaw []byte) (app.Result, error)
}

// Options configures the router.
type Options struct {
	// MaxUploadBytes bounds the multipart body. Zero means 16 MiB.
	MaxUploadBytes int64
	// Metrics serves GET /metrics when set.
	Metrics http.Handler
	Logger  logger.Logger
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type handler struct {
	gen Generator
	max int64
	log logger.Logger
}

// NewRouter returns the HTTP API:
//
//	POST /v1/reports  multipart "availability" and "schedule" files, ?format=json|csv|text
//	GET  /healthz
//	GET  /metrics
func NewRouter(gen Generator, opts Options) http.Handler {
	h := &handler{gen: gen, max: opts.MaxUploadBytes, log: opts.Logger}
	if h.max <= 0 {
		h.max = 16 << 20
	}
	if h.log == nil {
		h.log = logger.NopLogger{}
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.Post("/v1/reports", h.createReport)
	return r
}

func (h *handler) createReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if !slices.Contains(export.Formats, format) {
		respondError(w, http.StatusBadRequest, "invalid_format", fmt.Sprintf("format must be one of %v", export.Formats))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.max)
	if err := r.ParseMultipartForm(h.max); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			respondError(w, http.StatusRequestEntityTooLarge, "too_large", err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()
	availRaw, err := formFile(r, "availability")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing_file", err.Error())
		return
	}
	schedRaw, err := formFile(r, "schedule")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing_file", err.Error())
		return
	}

	res, err := h.gen.Generate(r.Context(), availRaw, schedRaw)
	w.Header().Set("X-Report-ID", res.ID.String())
	if err != nil {
		var se *schedule.ScheduleFormatError
		var ae *availability.AvailabilityFormatError
		switch {
		case errors.As(err, &se):
			respondError(w, http.StatusUnprocessableEntity, "schedule_format", se.Error())
		case errors.As(err, &ae):
			respondError(w, http.StatusUnprocessableEntity, "availability_format", ae.Error())
		default:
			h.log.Errorf("report %s: %v", res.ID, err)
			respondError(w, http.StatusInternalServerError, "internal", "report generation failed")
		}
		return
	}

	var buf bytes.Buffer
	env := export.Envelope{ID: res.ID.String(), GeneratedAt: res.GeneratedAt, Report: res.Report}
	if err := export.Write(&buf, format, env); err != nil {
		h.log.Errorf("report %s: render %s: %v", res.ID, format, err)
		respondError(w, http.StatusInternalServerError, "internal", "report rendering failed")
		return
	}
	w.Header().Set("Content-Type", export.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func formFile(r *http.Request, field string) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: code, Message: message})
}
