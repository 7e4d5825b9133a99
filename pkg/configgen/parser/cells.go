// Package parser reads parameter tables from spreadsheet sources.
package parser

import (
	"strings"

	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/models"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// ExtractRows reads the parameter rows of one sheet.
// Cells are read unformatted so number formats never alter the authored value.
func ExtractRows(f *excelize.File, sheetName string, cols Columns) ([]models.Row, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	return tableRows(sheetName, rows, cols)
}

// tableRows turns a raw cell grid into rows below the header.
// An empty grid yields no rows and no error.
func tableRows(sheetName string, grid [][]string, cols Columns) ([]models.Row, error) {
	headerIdx := findHeaderRow(grid)
	if headerIdx < 0 {
		log.Debug().Str("sheet", sheetName).Msg("sheet is empty")
		return nil, nil
	}

	idx, err := locateColumns(grid[headerIdx], cols)
	if err != nil {
		return nil, err
	}

	var result []models.Row
	for rowIdx := headerIdx + 1; rowIdx < len(grid); rowIdx++ {
		cells := grid[rowIdx]
		row := models.Row{
			Sheet:    sheetName,
			Line:     rowIdx + 1, // 1-based row number
			Category: cellText(cells, idx.category),
			Name:     cellText(cells, idx.name),
			Value:    cellText(cells, idx.value),
			Unit:     cellText(cells, idx.unit),
			Comment:  cellText(cells, idx.comment),
		}
		if row.IsBlank() {
			continue
		}
		result = append(result, row)
	}

	log.Debug().Str("sheet", sheetName).Int("rows", len(result)).Msg("read parameter rows")
	return result, nil
}

// cellText returns the trimmed cell at col, or "" when the row is short.
func cellText(cells []string, col int) string {
	if col < 0 || col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}
