package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn indicates a required column title is absent from the header row.
var ErrMissingColumn = errors.New("missing column")

// Columns holds the header titles of the parameter table.
type Columns struct {
	Category string
	Name     string
	Value    string
	Unit     string
	Comment  string
}

// DefaultColumns returns the standard column titles.
func DefaultColumns() Columns {
	return Columns{
		Category: "Category",
		Name:     "Name",
		Value:    "Value",
		Unit:     "Unit",
		Comment:  "Comment",
	}
}

// columnIndex holds 0-based column positions. Comment is -1 when absent.
type columnIndex struct {
	category, name, value, unit, comment int
}

// locateColumns matches header cells against the configured titles.
// Titles are compared after trimming surrounding whitespace.
func locateColumns(header []string, cols Columns) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, cell := range header {
		title := strings.TrimSpace(cell)
		if _, seen := pos[title]; !seen && title != "" {
			pos[title] = i
		}
	}

	idx := columnIndex{comment: -1}
	required := []struct {
		title string
		dst   *int
	}{
		{cols.Category, &idx.category},
		{cols.Name, &idx.name},
		{cols.Value, &idx.value},
		{cols.Unit, &idx.unit},
	}
	var missing []string
	for _, r := range required {
		i, ok := pos[r.title]
		if !ok {
			missing = append(missing, r.title)
			continue
		}
		*r.dst = i
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	if i, ok := pos[cols.Comment]; ok {
		idx.comment = i
	}
	return idx, nil
}

// findHeaderRow returns the index of the first row holding a non-empty cell, or -1.
func findHeaderRow(rows [][]string) int {
	for rowIdx, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return rowIdx
			}
		}
	}
	return -1
}
