package configgen

import (
	"context"
	"fmt"
	"runtime"

	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/models"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/parser"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/units"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ConvertRow normalizes the value of a single row.
// Failures are returned as *ParseError locating the offending cell.
func ConvertRow(table *units.Table, cols parser.Columns, row models.Row) (models.ConvertedRow, error) {
	if row.Category == "" {
		return models.ConvertedRow{}, NewParseError(row.Sheet, row.Line, cols.Category, row.Value, row.Unit, ErrMissingField)
	}
	if row.Name == "" {
		return models.ConvertedRow{}, NewParseError(row.Sheet, row.Line, cols.Name, row.Value, row.Unit, ErrMissingField)
	}

	value, err := table.Convert(row.Value, row.Unit)
	if err != nil {
		return models.ConvertedRow{}, NewParseError(row.Sheet, row.Line, cols.Value, row.Value, row.Unit, err)
	}

	return models.ConvertedRow{
		Sheet:    row.Sheet,
		Line:     row.Line,
		Category: row.Category,
		Name:     row.Name,
		Value:    value,
	}, nil
}

// ConvertSheet converts every row of a sheet and reshapes the result.
// The first row that fails aborts the sheet.
func ConvertSheet(table *units.Table, cols parser.Columns, sheet models.Sheet) (*models.CategoryMap, error) {
	converted := make([]models.ConvertedRow, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cr, err := ConvertRow(table, cols, row)
		if err != nil {
			return nil, err
		}
		converted = append(converted, cr)
	}

	categories := Reshape(converted)
	log.Debug().
		Str("sheet", sheet.Name).
		Int("rows", len(converted)).
		Int("categories", categories.Len()).
		Msg("converted sheet")
	return categories, nil
}

// Assemble builds the config document from sheets in source order.
//
// Any row failure aborts the whole run and no document is returned. When two
// sheets share a name the later one replaces the earlier.
func Assemble(ctx context.Context, sheets []models.Sheet, opts Options) (*models.Document, error) {
	sheets, err := selectSheets(sheets, opts.Sheets)
	if err != nil {
		return nil, err
	}

	table := opts.unitTable()
	cols := opts.columns()
	results := make([]*models.CategoryMap, len(sheets))

	if opts.Parallel {
		err = convertParallel(ctx, table, cols, sheets, results)
	} else {
		err = convertSequential(ctx, table, cols, sheets, results)
	}
	if err != nil {
		return nil, err
	}

	doc := models.NewDocument()
	for i, sheet := range sheets {
		if _, dup := doc.Get(sheet.Name); dup {
			log.Warn().Str("sheet", sheet.Name).Msg("duplicate sheet name, later sheet wins")
		}
		doc.Set(sheet.Name, results[i])
	}
	return doc, nil
}

func convertSequential(ctx context.Context, table *units.Table, cols parser.Columns, sheets []models.Sheet, results []*models.CategoryMap) error {
	for i, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return err
		}
		categories, err := ConvertSheet(table, cols, sheet)
		if err != nil {
			return err
		}
		results[i] = categories
	}
	return nil
}

// convertParallel converts each sheet independently. When several sheets
// fail, the error of the earliest sheet is returned so runs are reproducible.
func convertParallel(ctx context.Context, table *units.Table, cols parser.Columns, sheets []models.Sheet, results []*models.CategoryMap) error {
	errs := make([]error, len(sheets))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sheet := range sheets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			results[i], errs[i] = ConvertSheet(table, cols, sheet)
			return errs[i]
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// selectSheets keeps the named sheets in source order.
func selectSheets(sheets []models.Sheet, names []string) ([]models.Sheet, error) {
	if len(names) == 0 {
		return sheets, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = false
	}

	var selected []models.Sheet
	for _, sheet := range sheets {
		if _, ok := wanted[sheet.Name]; ok {
			wanted[sheet.Name] = true
			selected = append(selected, sheet)
		}
	}

	for _, name := range names {
		if !wanted[name] {
			return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
		}
	}
	return selected, nil
}
