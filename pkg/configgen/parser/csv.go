package parser

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/models"
)

// ReadCSV reads a single parameter table from a CSV file.
// The sheet is named after the file without its extension.
func ReadCSV(path string, cols Columns) ([]models.Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	grid, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rows, err := tableRows(name, grid, cols)
	if err != nil {
		return nil, &SheetError{Sheet: name, Err: err}
	}
	return []models.Sheet{{Name: name, Rows: rows}}, nil
}
