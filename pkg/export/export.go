// Package export renders generated reports as JSON, CSV or plain text.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kilianp07/availreport/core/model"
	"github.com/kilianp07/availreport/core/report"
)

// Formats lists the supported output formats.
var Formats = []string{"json", "csv", "text"}

// Envelope identifies one generated report.
type Envelope struct {
	ID          string
	GeneratedAt time.Time
	Report      report.Report
}

type jsonEnvelope struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Report      report.Report `json:"report"`
	Days        []jsonDay     `json:"days"`
	Pairings    []jsonWeekday `json:"pairings_by_weekday"`
}

type jsonDay struct {
	Date   string       `json:"date"`
	People []jsonPerson `json:"people"`
}

type jsonPerson struct {
	Person model.PersonKey `json:"person"`
	Name   string          `json:"name"`
	Elite  bool            `json:"elite"`
	Starts []string        `json:"starts"`
}

type jsonWeekday struct {
	Weekday string   `json:"weekday"`
	Starts  []string `json:"starts"`
}

// WriteJSON writes the report with its grouped views to w.
func WriteJSON(w io.Writer, env Envelope) error {
	out := jsonEnvelope{
		ID:          env.ID,
		GeneratedAt: env.GeneratedAt,
		Report:      env.Report,
		Days:        []jsonDay{},
		Pairings:    []jsonWeekday{},
	}
	for _, d := range env.Report.SlotsByDate() {
		day := jsonDay{Date: d.Date.Format(time.DateOnly)}
		for _, p := range d.People {
			day.People = append(day.People, jsonPerson{
				Person: p.Person,
				Name:   env.Report.DisplayName(p.Person),
				Elite:  env.Report.IsElite(p.Person),
				Starts: clocks(p.Starts),
			})
		}
		out.Days = append(out.Days, day)
	}
	for _, p := range env.Report.PairingsByWeekday() {
		out.Pairings = append(out.Pairings, jsonWeekday{Weekday: p.Weekday.String(), Starts: clocks(p.Starts)})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteSlotsCSV writes one row per bookable slot.
func WriteSlotsCSV(w io.Writer, r report.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "person", "name", "elite", "start", "end"}); err != nil {
		return err
	}
	for _, s := range r.Slots {
		rec := []string{
			s.Interval.Start.Format(time.DateOnly),
			string(s.Person),
			r.DisplayName(s.Person),
			fmt.Sprint(r.IsElite(s.Person)),
			s.Interval.Start.Format(time.RFC3339),
			s.Interval.End.Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePairingsCSV writes one row per pairing candidate.
func WritePairingsCSV(w io.Writer, r report.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"weekday", "start", "people", "exact"}); err != nil {
		return err
	}
	for _, p := range r.Pairings {
		people := make([]string, len(p.People))
		for i, k := range p.People {
			people[i] = string(k)
		}
		rec := []string{
			p.Start.Weekday().String(),
			p.Start.Format(time.RFC3339),
			strings.Join(people, ";"),
			fmt.Sprint(p.Exact),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the pairing section, a blank line, then the slot section.
func WriteCSV(w io.Writer, r report.Report) error {
	if err := WritePairingsCSV(w, r); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return WriteSlotsCSV(w, r)
}

// WriteText renders the report for people: pairing times per weekday, then
// every person's slots per date. Premium-tier names are starred.
func WriteText(w io.Writer, r report.Report) error {
	var b strings.Builder
	b.WriteString("Weekly Availability Report\n\n")
	b.WriteString("Available Times for Couple's Massages\n")
	pairs := r.PairingsByWeekday()
	if len(pairs) == 0 {
		b.WriteString("  No couples massage opportunities found for this period.\n")
	}
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s: %s\n", p.Weekday, strings.Join(clocks(p.Starts), ", "))
	}
	for _, d := range r.SlotsByDate() {
		fmt.Fprintf(&b, "\n%s\n", d.Date.Format("Monday, January 02"))
		for _, p := range d.People {
			name := r.DisplayName(p.Person)
			if r.IsElite(p.Person) {
				name += " *"
			}
			fmt.Fprintf(&b, "  %s\n    %s\n", name, strings.Join(clocks(p.Starts), ", "))
		}
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(&b, "\nwarning: %s", warn)
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Write renders r in the named format.
func Write(w io.Writer, format string, env Envelope) error {
	switch format {
	case "", "json":
		return WriteJSON(w, env)
	case "csv":
		return WriteCSV(w, env.Report)
	case "text":
		return WriteText(w, env.Report)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// ContentType returns the media type of format.
func ContentType(format string) string {
	switch format {
	case "csv":
		return "text/csv; charset=utf-8"
	case "text":
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Extension returns the file extension of format.
func Extension(format string) string {
	switch format {
	case "csv":
		return "csv"
	case "text":
		return "txt"
	default:
		return "json"
	}
}

func clocks(ts []time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = strings.ToLower(t.Format("3:04 PM"))
	}
	return out
}
