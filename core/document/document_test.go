package document

import (
	"errors"
	"strings"
	"testing"
)

type stubTable struct {
	name string
	t    Table
	err  error
}

func (s stubTable) Name() string                     { return s.name }
func (s stubTable) DecodeTable([]byte) (Table, error) { return s.t, s.err }

func TestFlatten(t *testing.T) {
	tbl := Table{
		Header: []string{"SCHEDULE FOR Jane Doe", "", ""},
		Rows: [][]string{
			{"", "", ""},
			{"Monday, January 6, 2025", " ", ""},
			{"Appointments", "9:00 am - 5:00 pm", ""},
		},
	}
	doc := Flatten(tbl)
	want := []string{"SCHEDULE FOR Jane Doe", "", "Monday, January 6, 2025", "Appointments 9:00 am - 5:00 pm"}
	if strings.Join(doc.Lines, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected lines %q", doc.Lines)
	}

	tbl = Table{Header: []string{"Monday", "January 6", "2025"}, Sep: ", "}
	if got := Flatten(tbl).Lines[0]; got != "Monday, January 6, 2025" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestDecodeDocumentFallsThrough(t *testing.T) {
	bad := stubTable{name: "bad", err: errors.New("boom")}
	good := stubTable{name: "good", t: Table{Header: []string{"a"}}}
	doc, err := DecodeDocument(DocumentChain{Flattened(bad), Flattened(good)}, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Format != "good" {
		t.Fatalf("expected format good, got %q", doc.Format)
	}
}

func TestDecodeDocumentAllFail(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")
	_, err := DecodeDocument(DocumentChain{
		Flattened(stubTable{name: "a", err: e1}),
		Flattened(stubTable{name: "b", err: e2}),
	}, nil)
	if !errors.Is(err, e1) || !errors.Is(err, e2) {
		t.Fatalf("expected joined errors, got %v", err)
	}
	if _, err := DecodeDocument(nil, nil); err == nil {
		t.Fatal("expected error for empty chain")
	}
}

func TestDecodeTableAndColumn(t *testing.T) {
	tbl, err := DecodeTable(TableChain{stubTable{name: "x", t: Table{Header: []string{" Date ", "Staff"}}}}, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tbl.Format != "x" || tbl.Column("Date") != 0 || tbl.Column("Staff") != 1 || tbl.Column("End time") != -1 {
		t.Fatalf("unexpected table %#v", tbl)
	}
	if Cell([]string{"a"}, 3) != "" || Cell([]string{" a "}, 0) != "a" {
		t.Fatal("cell lookup")
	}
}
