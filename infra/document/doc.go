// Package document implements the physical formats of the scheduling
// platform's exports and registers them with core/document:
//
//   - xlsx: the current spreadsheet export (excelize)
//   - csv: delimited text, as produced by older exports and converters
//   - html_table: the legacy ".xls" export, which is an HTML table
//   - html_sections: nested markup with per-person section headers
package document
