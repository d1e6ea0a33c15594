package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/availreport/app"
	"github.com/kilianp07/availreport/core/availability"
	"github.com/kilianp07/availreport/core/interval"
	"github.com/kilianp07/availreport/core/model"
	corereport "github.com/kilianp07/availreport/core/report"
	"github.com/kilianp07/availreport/core/schedule"
)

type fakeGenerator struct {
	err         error
	avail, schd string
}

var reportID = uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")

func (f *fakeGenerator) Generate(_ context.Context, availRaw, schedRaw []byte) (app.Result, error) {
	f.avail, f.schd = string(availRaw), string(schedRaw)
	res := app.Result{ID: reportID, GeneratedAt: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)}
	if f.err != nil {
		return res, f.err
	}
	start := time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC)
	res.Report = corereport.Report{Slots: []model.Slot{{
		Person:   "jane",
		Interval: interval.Interval{Start: start, End: start.Add(75 * time.Minute)},
	}}}
	return res, nil
}

func upload(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, content := range fields {
		fw, err := mw.CreateFormFile(name, name+".xls")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func post(t *testing.T, h http.Handler, query string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := upload(t, fields)
	req := httptest.NewRequest(http.MethodPost, "/v1/reports"+query, body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateReportJSON(t *testing.T) {
	gen := &fakeGenerator{}
	h := NewRouter(gen, Options{})
	rr := post(t, h, "", map[string]string{"availability": "A", "schedule": "S"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	assert.Equal(t, "A", gen.avail)
	assert.Equal(t, "S", gen.schd)
	assert.Equal(t, reportID.String(), rr.Header().Get("X-Report-ID"))
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var out struct {
		ID   string `json:"id"`
		Days []struct {
			Date string `json:"date"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, reportID.String(), out.ID)
	require.Len(t, out.Days, 1)
	assert.Equal(t, "2025-01-06", out.Days[0].Date)
}

func TestCreateReportFormats(t *testing.T) {
	h := NewRouter(&fakeGenerator{}, Options{})
	rr := post(t, h, "?format=csv", map[string]string{"availability": "A", "schedule": "S"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rr.Body.String(), "date,person,name,elite,start,end")

	rr = post(t, h, "?format=text", map[string]string{"availability": "A", "schedule": "S"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "9:30 am")

	rr = post(t, h, "?format=pdf", map[string]string{"availability": "A", "schedule": "S"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateReportErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"schedule", &schedule.ScheduleFormatError{Msg: "missing required column(s): Staff"}, http.StatusUnprocessableEntity, "schedule_format"},
		{"availability", &availability.AvailabilityFormatError{Msg: "no availability entries found"}, http.StatusUnprocessableEntity, "availability_format"},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, "internal"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewRouter(&fakeGenerator{err: c.err}, Options{})
			rr := post(t, h, "", map[string]string{"availability": "A", "schedule": "S"})
			assert.Equal(t, c.status, rr.Code)
			assert.Equal(t, reportID.String(), rr.Header().Get("X-Report-ID"))
			var out errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
			assert.Equal(t, c.code, out.Error)
			assert.NotContains(t, out.Message, "disk on fire")
		})
	}
}

func TestCreateReportBadRequest(t *testing.T) {
	h := NewRouter(&fakeGenerator{}, Options{})
	rr := post(t, h, "", map[string]string{"availability": "A"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/reports", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateReportTooLarge(t *testing.T) {
	h := NewRouter(&fakeGenerator{}, Options{MaxUploadBytes: 64})
	rr := post(t, h, "", map[string]string{"availability": strings.Repeat("a", 1024), "schedule": "S"})
	assert.Contains(t, []int{http.StatusRequestEntityTooLarge, http.StatusBadRequest}, rr.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("availreport_reports_total 1\n"))
	})
	h := NewRouter(&fakeGenerator{}, Options{Metrics: metrics})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "availreport_reports_total")

	rr = httptest.NewRecorder()
	NewRouter(&fakeGenerator{}, Options{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
