package schedule

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/availreport/core/document"
	"github.com/kilianp07/availreport/core/interval"
	"github.com/kilianp07/availreport/core/model"
)

var header = []string{"Date", "Start time", "End time", "Description", "Staff"}

func opts() Options {
	return Options{Location: time.UTC, Elite: regexp.MustCompile(DefaultElitePattern)}
}

func TestNormalize(t *testing.T) {
	tbl := document.Table{
		Header: header,
		Rows: [][]string{
			{"01/07/2025", "1:00 PM", "2:00 PM", "Massage", "Jane Doe"},
			{"01/06/2025", "12:00 pm", "1:00 pm", "Elite Massage 60", "Jane Doe"},
			{"01/06/2025", "12:00 pm", "1:00 pm", "Elite Massage 60", "jane D."},
			{"2025-01-06", "09:30", "10:45", "Facial", "Bob Smith"},
			{"", "", "", "", ""},
			{"01/06/2025", "9:00 AM", "10:00 AM", "Filler", ""},
			{"01/06/2025", "9:00 AM", "10:00 AM", "Placeholder", "(unassigned)"},
		},
	}
	res, err := Normalize(tbl, opts())
	require.NoError(t, err)

	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	want := []model.Obligation{
		{Person: "bob", Interval: ivl(day, 9*time.Hour+30*time.Minute, 10*time.Hour+45*time.Minute)},
		{Person: "jane", Interval: ivl(day, 12*time.Hour, 13*time.Hour)},
		{Person: "jane", Interval: ivl(day.AddDate(0, 0, 1), 13*time.Hour, 14*time.Hour)},
	}
	assert.Equal(t, want, res.Obligations)
	assert.Equal(t, []model.PersonKey{"jane"}, res.Elite)
	assert.Equal(t, 3, res.Dropped)
}

func TestNormalizeMissingColumn(t *testing.T) {
	tbl := document.Table{Header: []string{"Date", "Start time", "End time", "Description"}}
	_, err := Normalize(tbl, opts())
	var fe *ScheduleFormatError
	require.True(t, errors.As(err, &fe), "expected ScheduleFormatError, got %v", err)
	assert.Contains(t, fe.Error(), "Staff")
}

func TestNormalizeColumnsAreCaseSensitive(t *testing.T) {
	tbl := document.Table{Header: []string{"date", "Start time", "End Time", "Description", "Staff"}}
	_, err := Normalize(tbl, opts())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Date") && strings.Contains(err.Error(), "End time"))
}

func TestNormalizeUnparseableTimestampIsFatal(t *testing.T) {
	tbl := document.Table{
		Header: header,
		Rows:   [][]string{{"01/06/2025", "noon-ish", "1:00 PM", "", "Jane"}},
	}
	_, err := Normalize(tbl, opts())
	var fe *ScheduleFormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ScheduleFormatError, got %v", err)
	}
	if !errors.Is(err, errUnparseable) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestNormalizeSkipsInvertedInterval(t *testing.T) {
	tbl := document.Table{
		Header: header,
		Rows:   [][]string{{"01/06/2025", "2:00 PM", "1:00 PM", "", "Jane"}},
	}
	res, err := Normalize(tbl, opts())
	require.NoError(t, err)
	assert.Empty(t, res.Obligations)
}

func TestParseExcelSerials(t *testing.T) {
	ts, err := combine("45663", "0.5", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC), ts)

	ts, err = combine("Monday, January 6, 2025", "3:15:00 pm", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 6, 15, 15, 0, 0, time.UTC), ts)
}

func ivl(day time.Time, from, to time.Duration) interval.Interval {
	return interval.Interval{Start: day.Add(from), End: day.Add(to)}
}

type stubDecoder struct {
	t   document.Table
	err error
}

func (stubDecoder) Name() string { return "stub" }

func (s stubDecoder) DecodeTable([]byte) (document.Table, error) { return s.t, s.err }

func TestLoad(t *testing.T) {
	tbl := document.Table{
		Header: header,
		Rows:   [][]string{{"01/06/2025", "9:00 AM", "10:00 AM", "Massage", "Jane"}},
	}
	res, err := Load(nil, document.TableChain{stubDecoder{err: errors.New("nope")}, stubDecoder{t: tbl}}, opts())
	require.NoError(t, err)
	require.Len(t, res.Obligations, 1)

	_, err = Load(nil, document.TableChain{stubDecoder{err: errors.New("nope")}}, opts())
	var fe *ScheduleFormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, err.Error(), "stub: nope")
}
