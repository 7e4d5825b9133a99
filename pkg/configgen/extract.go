package configgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/models"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/output"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/parser"
	"github.com/rs/zerolog/log"
)

// Load reads the parameter sheets of an xlsx workbook or a CSV file.
func Load(path string, opts Options) ([]models.Sheet, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &SourceAccessError{Path: path, Err: ErrFileNotFound}
		}
		return nil, &SourceAccessError{Path: path, Err: err}
	}

	cols := opts.columns()
	var (
		sheets []models.Sheet
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		sheets, err = parser.ReadWorkbook(path, cols)
		var sheetErr *parser.SheetError
		if err != nil && !errors.As(err, &sheetErr) {
			err = fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".csv":
		sheets, err = parser.ReadCSV(path, cols)
	case ".ods":
		err = fmt.Errorf("%w: %s (save the sheet as .xlsx)", ErrInvalidFormat, ext)
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidFormat, ext)
	}
	if err != nil {
		return nil, &SourceAccessError{Path: path, Err: err}
	}

	log.Debug().Str("path", path).Int("sheets", len(sheets)).Msg("loaded parameter sheets")
	return sheets, nil
}

// Generate loads path and assembles its config document.
func Generate(ctx context.Context, path string, opts Options) (*models.Document, error) {
	sheets, err := Load(path, opts)
	if err != nil {
		return nil, err
	}

	doc, err := Assemble(ctx, sheets, opts)
	if err != nil {
		if errors.Is(err, ErrSheetNotFound) {
			return nil, &SourceAccessError{Path: path, Err: err}
		}
		return nil, err
	}
	return doc, nil
}

// Export serializes doc and replaces the file at path with it.
func Export(doc *models.Document, path string, format output.Format, indent int) error {
	data, err := output.Encode(doc, format, indent)
	if err != nil {
		return &SinkWriteError{Path: path, Err: err}
	}
	if err := output.WriteFile(path, data); err != nil {
		return &SinkWriteError{Path: path, Err: err}
	}
	return nil
}
