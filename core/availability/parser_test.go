package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/availreport/core/document"
	"github.com/kilianp07/availreport/core/interval"
	"github.com/kilianp07/availreport/core/model"
)

func at(d, h, m int) time.Time { return time.Date(2025, 1, d, h, m, 0, 0, time.UTC) }

func TestParse(t *testing.T) {
	doc := document.Document{Lines: []string{
		"Trainer Availability",
		"SCHEDULE FOR Jane Doe",
		"Monday, January 6, 2025",
		"Appointments 9:00 am - 5:00 pm",
		"Tuesday, January 7, 2025",
		"Appointments 10:00AM-2:30PM",
		"Appointments 10:00AM-2:30PM",
		"Classes 6:00 pm - 7:00 pm",
		"schedule for bob",
		"Appointments 8:00 am - 9:00 am",
		"Wednesday, January 8, 2025 Appointments 1:00 pm - 6:00 pm",
	}}
	res, err := Parse(doc, Options{})
	require.NoError(t, err)

	want := []model.DeclaredAvailability{
		{Person: "bob", Interval: ivl(at(8, 13, 0), at(8, 18, 0))},
		{Person: "jane", Interval: ivl(at(6, 9, 0), at(6, 17, 0))},
		{Person: "jane", Interval: ivl(at(7, 10, 0), at(7, 14, 30))},
	}
	assert.Equal(t, want, res.Availability)
	assert.Equal(t, []NameEntry{{Raw: "Jane Doe", Key: "jane"}, {Raw: "bob", Key: "bob"}}, res.Names)
	assert.Empty(t, res.Collisions)
}

func TestParseDateDoesNotLeakAcrossPeople(t *testing.T) {
	doc := document.Document{Lines: []string{
		"SCHEDULE FOR Jane",
		"Monday, January 6, 2025",
		"Appointments 9:00 am - 5:00 pm",
		"SCHEDULE FOR Ann",
		"Appointments 9:00 am - 5:00 pm",
	}}
	res, err := Parse(doc, Options{})
	require.NoError(t, err)
	require.Len(t, res.Availability, 1)
	assert.Equal(t, model.PersonKey("jane"), res.Availability[0].Person)
}

func TestParsePlaceholderSectionDropsEntries(t *testing.T) {
	doc := document.Document{Lines: []string{
		"SCHEDULE FOR Jane",
		"Monday, January 6, 2025",
		"Appointments 9:00 am - 5:00 pm",
		"SCHEDULE FOR *Unassigned*",
		"Monday, January 6, 2025",
		"Appointments 9:00 am - 5:00 pm",
	}}
	res, err := Parse(doc, Options{})
	require.NoError(t, err)
	require.Len(t, res.Availability, 1)
	assert.Len(t, res.Names, 1)
}

func TestParseFlagsCollisions(t *testing.T) {
	doc := document.Document{Lines: []string{
		"SCHEDULE FOR Sam Lee",
		"Monday, January 6, 2025",
		"Appointments 9:00 am - 12:00 pm",
		"SCHEDULE FOR Sam Park",
		"Monday, January 6, 2025",
		"Appointments 1:00 pm - 5:00 pm",
	}}
	res, err := Parse(doc, Options{})
	require.NoError(t, err)
	assert.Equal(t, []model.PersonKey{"sam"}, res.Collisions)
	assert.Len(t, res.Availability, 2)
}

func TestParseInvalidRowsAreSkipped(t *testing.T) {
	doc := document.Document{Lines: []string{
		"SCHEDULE FOR Jane",
		"Monday, February 30, 2025",
		"Appointments 9:00 am - 5:00 pm",
		"Monday, January 6, 2025",
		"Appointments 9:00 pm - 1:00 am",
		"Appointments 13:00 pm - 2:00 pm",
		"Appointments 9:00 am - 11:00 am",
	}}
	res, err := Parse(doc, Options{})
	require.NoError(t, err)
	require.Len(t, res.Availability, 1)
	assert.Equal(t, ivl(at(6, 9, 0), at(6, 11, 0)), res.Availability[0].Interval)
}

func TestParseNoMarkers(t *testing.T) {
	doc := document.Document{Lines: []string{"Monday, January 6, 2025", "Appointments 9:00 am - 5:00 pm"}}
	_, err := Parse(doc, Options{})
	var fe *AvailabilityFormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected AvailabilityFormatError, got %v", err)
	}
}

type failing struct{}

func (failing) Name() string                          { return "failing" }
func (failing) Decode([]byte) (document.Document, error) { return document.Document{}, errors.New("nope") }

func TestLoadUndecodable(t *testing.T) {
	_, err := Load([]byte("garbage"), document.DocumentChain{failing{}}, Options{})
	var fe *AvailabilityFormatError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, err.Error(), "nope")
}

func ivl(a, b time.Time) interval.Interval { return interval.Interval{Start: a, End: b} }
