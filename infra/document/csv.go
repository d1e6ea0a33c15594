package document

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"unicode/utf8"

	core "github.com/kilianp07/availreport/core/document"
)

// CSV decodes delimited text exports.
type CSV struct {
	// Comma is the field delimiter. When empty it is tab if the input holds
	// any tab, comma otherwise.
	Comma string `json:"comma"`
}

// Name implements core.TableDecoder.
func (CSV) Name() string { return "csv" }

// DecodeTable parses raw as delimited text. Markup and binary input are
// declined so later decoders in the chain get a chance.
func (c CSV) DecodeTable(raw []byte) (core.Table, error) {
	if !looksLikeText(raw) {
		return core.Table{}, errors.New("not a text file")
	}
	if looksLikeMarkup(raw) {
		return core.Table{}, errors.New("input is markup")
	}
	body := bytes.TrimPrefix(raw, bom)
	comma, err := c.delimiter(body)
	if err != nil {
		return core.Table{}, err
	}
	r := csv.NewReader(bytes.NewReader(body))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return core.Table{}, err
	}
	t, err := tableFromRows("csv", rows)
	if err != nil {
		return core.Table{}, err
	}
	if comma == ',' {
		// unquoted dates such as "Monday, January 6, 2025" span cells
		t.Sep = ", "
	}
	return t, nil
}

func (c CSV) delimiter(body []byte) (rune, error) {
	if c.Comma != "" {
		r, size := utf8.DecodeRuneInString(c.Comma)
		if size != len(c.Comma) || r == utf8.RuneError {
			return 0, fmt.Errorf("invalid delimiter %q", c.Comma)
		}
		return r, nil
	}
	if bytes.IndexByte(body, '\t') >= 0 {
		return '\t', nil
	}
	return ',', nil
}
