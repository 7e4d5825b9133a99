package parser

import (
	"fmt"

	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/models"
	"github.com/xuri/excelize/v2"
)

// SheetError reports a sheet that could not be read.
type SheetError struct {
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// ReadWorkbook opens an xlsx workbook and reads every sheet in tab order.
func ReadWorkbook(path string, cols Columns) ([]models.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSheets(f, cols)
}

// ReadSheets reads every sheet of an open workbook in tab order.
func ReadSheets(f *excelize.File, cols Columns) ([]models.Sheet, error) {
	sheetList := f.GetSheetList()
	sheets := make([]models.Sheet, 0, len(sheetList))
	for _, sheetName := range sheetList {
		rows, err := ExtractRows(f, sheetName, cols)
		if err != nil {
			return nil, &SheetError{Sheet: sheetName, Err: err}
		}
		sheets = append(sheets, models.Sheet{Name: sheetName, Rows: rows})
	}
	return sheets, nil
}
