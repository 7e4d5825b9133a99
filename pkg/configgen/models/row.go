// Package models defines data structures for parameter sheet conversion.
package models

// Row represents a single parameter definition as authored in a sheet.
type Row struct {
	// Sheet is the name of the sheet owning the row.
	Sheet string
	// Line is the spreadsheet row number (1-based).
	Line int
	// Category groups related parameters within a sheet.
	Category string
	// Name identifies the parameter within its category.
	Name string
	// Value is the raw cell text.
	Value string
	// Unit is the unit label as authored.
	Unit string
	// Comment is free text that never reaches the output document.
	Comment string
}

// IsBlank reports whether no column of the row carries data.
func (r Row) IsBlank() bool {
	return r.Category == "" && r.Name == "" && r.Value == "" && r.Unit == "" && r.Comment == ""
}

// ConvertedRow is a row whose value has been unit-normalized.
type ConvertedRow struct {
	Sheet    string
	Line     int
	Category string
	Name     string
	Value    NormalizedValue
}

// Sheet is one named table of rows in source order.
type Sheet struct {
	// Name is the sheet name, used as the top-level document key.
	Name string
	// Rows contains the data rows below the header, in source order.
	Rows []Row
}
