package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	core "github.com/kilianp07/availreport/core/document"
)

// XLSX decodes Office Open XML workbooks.
type XLSX struct {
	// Sheet selects a worksheet by name; the first sheet is used when empty.
	Sheet string `json:"sheet"`
}

// Name implements core.TableDecoder.
func (XLSX) Name() string { return "xlsx" }

// DecodeTable reads the raw cell values of one worksheet. Date and time
// cells stay Excel serial numbers whatever their display format.
func (x XLSX) DecodeTable(raw []byte) (core.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return core.Table{}, err
	}
	defer func() { _ = f.Close() }()

	sheet := x.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return core.Table{}, core.ErrEmpty
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return core.Table{}, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return tableFromRows("xlsx", rows)
}

// tableFromRows promotes the first non-blank row to the header.
func tableFromRows(format string, rows [][]string) (core.Table, error) {
	for i, r := range rows {
		if blank(r) {
			continue
		}
		return core.Table{Format: format, Header: r, Rows: rows[i+1:]}, nil
	}
	return core.Table{}, core.ErrEmpty
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
