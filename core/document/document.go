// Package document defines the decoded forms of the uploaded exports and the
// ordered decoder chain used to auto-detect their physical format.
package document

import (
	"errors"
	"fmt"
	"strings"
)

// Table is a decoded tabular export. Header holds the first non-empty row.
type Table struct {
	Format string
	Header []string
	Rows   [][]string
	// Sep joins the cells of a row when the table is flattened. Empty means
	// a single space.
	Sep string
}

// Document is a decoded semi-structured export reduced to text lines in
// document order.
type Document struct {
	Format string
	Lines  []string
}

// TableDecoder decodes raw bytes into a Table.
type TableDecoder interface {
	Name() string
	DecodeTable(raw []byte) (Table, error)
}

// DocumentDecoder decodes raw bytes into a Document.
type DocumentDecoder interface {
	Name() string
	Decode(raw []byte) (Document, error)
}

// ErrEmpty is returned by decoders that understood the input but found no
// content in it.
var ErrEmpty = errors.New("document is empty")

// Column returns the index of name in the header, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Cell returns row[i] trimmed, or "" when the row is too short.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Flatten joins the non-blank cells of every row, header included, into one
// line per row. Blank rows produce empty lines so positions are kept.
func Flatten(t Table) Document {
	sep := t.Sep
	if sep == "" {
		sep = " "
	}
	rows := make([][]string, 0, len(t.Rows)+1)
	if len(t.Header) > 0 {
		rows = append(rows, t.Header)
	}
	rows = append(rows, t.Rows...)
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		parts := make([]string, 0, len(r))
		for _, c := range r {
			if c = strings.TrimSpace(c); c != "" {
				parts = append(parts, c)
			}
		}
		lines = append(lines, strings.Join(parts, sep))
	}
	return Document{Format: t.Format, Lines: lines}
}

// Flattened adapts a TableDecoder into a DocumentDecoder.
func Flattened(d TableDecoder) DocumentDecoder { return flattened{d} }

type flattened struct{ TableDecoder }

func (f flattened) Decode(raw []byte) (Document, error) {
	t, err := f.DecodeTable(raw)
	if err != nil {
		return Document{}, err
	}
	return Flatten(t), nil
}

// DocumentChain is an ordered list of document decoders tried in turn.
type DocumentChain []DocumentDecoder

// TableChain is an ordered list of table decoders tried in turn.
type TableChain []TableDecoder

// DecodeDocument returns the first successful decode. When every decoder
// fails the returned error joins all of their errors.
func DecodeDocument(c DocumentChain, raw []byte) (Document, error) {
	if len(c) == 0 {
		return Document{}, errors.New("no decoders configured")
	}
	var errs []error
	for _, d := range c {
		doc, err := d.Decode(raw)
		if err == nil {
			if doc.Format == "" {
				doc.Format = d.Name()
			}
			return doc, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
	}
	return Document{}, errors.Join(errs...)
}

// DecodeTable returns the first successful table decode.
func DecodeTable(c TableChain, raw []byte) (Table, error) {
	if len(c) == 0 {
		return Table{}, errors.New("no decoders configured")
	}
	var errs []error
	for _, d := range c {
		t, err := d.DecodeTable(raw)
		if err == nil {
			if t.Format == "" {
				t.Format = d.Name()
			}
			return t, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
	}
	return Table{}, errors.Join(errs...)
}
