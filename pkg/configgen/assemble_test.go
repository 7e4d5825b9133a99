package configgen

import (
	"context"
	"fmt"
	"testing"

	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/models"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/output"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/parser"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(sheet string, line int, category, name, value, unit string) models.Row {
	return models.Row{Sheet: sheet, Line: line, Category: category, Name: name, Value: value, Unit: unit, Comment: "ignored"}
}

func sampleSheets() []models.Sheet {
	return []models.Sheet{
		{Name: "Rocket", Rows: []models.Row{
			row("Rocket", 2, "Body", "diameter", "160", "mm"),
			row("Rocket", 3, "Body", "dry_mass", "12500", "g"),
			row("Rocket", 4, "Motor", "designation", "K550", "text"),
			row("Rocket", 5, "Motor", "thrust_peak", "1.2", "kN"),
			row("Rocket", 6, "Fins", "span", "120,80.5", "mm"),
		}},
		{Name: "Environment", Rows: []models.Row{
			row("Environment", 2, "Launch", "pressure", "1.5", "bar"),
			row("Environment", 3, "Launch", "temperature", "15", "°C"),
			row("Environment", 4, "Launch", "gravity", "9.81", "m/s^2"),
		}},
	}
}

func TestConvertRow(t *testing.T) {
	cr, err := ConvertRow(units.DefaultTable(), parser.DefaultColumns(), row("Rocket", 2, "Body", "length", "1800", "mm"))
	require.NoError(t, err)
	assert.Equal(t, "Body", cr.Category)
	assert.Equal(t, "length", cr.Name)
	assert.Equal(t, 2, cr.Line)
	assert.Equal(t, 1.8, cr.Value.Value.Number)
	assert.Equal(t, "m", cr.Value.Unit)
}

func TestConvertRowErrors(t *testing.T) {
	cols := parser.DefaultColumns()
	tests := []struct {
		row    models.Row
		column string
	}{
		{row("Rocket", 7, "Body", "length", "abc", "mm"), "Value"},
		{row("Rocket", 8, "", "length", "1", "mm"), "Category"},
		{row("Rocket", 9, "Body", "", "1", "mm"), "Name"},
	}

	for _, tt := range tests {
		_, err := ConvertRow(units.DefaultTable(), cols, tt.row)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "Rocket", parseErr.Sheet)
		assert.Equal(t, tt.row.Line, parseErr.Row)
		assert.Equal(t, tt.column, parseErr.Column)
	}
}

func TestAssemble(t *testing.T) {
	doc, err := Assemble(context.Background(), sampleSheets(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Rocket", "Environment"}, doc.Keys())

	rocket, _ := doc.Get("Rocket")
	assert.Equal(t, []string{"Body", "Motor", "Fins"}, rocket.Keys())

	body, _ := rocket.Get("Body")
	diameter, _ := body.Get("diameter")
	assert.Equal(t, models.NormalizedValue{Value: models.Number(0.16), Unit: "m"}, diameter)
	dryMass, _ := body.Get("dry_mass")
	assert.Equal(t, models.NormalizedValue{Value: models.Number(12.5), Unit: "kg"}, dryMass)

	motor, _ := rocket.Get("Motor")
	designation, _ := motor.Get("designation")
	assert.Equal(t, models.NormalizedValue{Value: models.Text("K550"), Unit: "text"}, designation)

	fins, _ := rocket.Get("Fins")
	span, _ := fins.Get("span")
	assert.Equal(t, models.NormalizedValue{Value: models.Tuple([]float64{120, 80.5}), Unit: "mm"}, span)

	env, _ := doc.Get("Environment")
	launch, _ := env.Get("Launch")
	pressure, _ := launch.Get("pressure")
	assert.Equal(t, 150000.0, pressure.Value.Number)
	assert.Equal(t, "Pa", pressure.Unit)
	gravity, _ := launch.Get("gravity")
	assert.Equal(t, models.NormalizedValue{Value: models.Number(9.81), Unit: "m/s^2"}, gravity)
}

func TestAssembleFailsFast(t *testing.T) {
	sheets := sampleSheets()
	sheets[1].Rows = append(sheets[1].Rows, row("Environment", 5, "Launch", "rail_length", "abc", "mm"))

	for _, parallel := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Parallel = parallel
		doc, err := Assemble(context.Background(), sheets, opts)
		assert.Nil(t, doc)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, "parallel=%v", parallel)
		assert.Equal(t, "Environment", parseErr.Sheet)
		assert.Equal(t, 5, parseErr.Row)
		assert.ErrorIs(t, err, units.ErrNotNumeric)
	}
}

func TestAssembleParallelReportsEarliestSheet(t *testing.T) {
	var sheets []models.Sheet
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("S%d", i)
		value := "1"
		if i >= 3 {
			value = "bad"
		}
		sheets = append(sheets, models.Sheet{Name: name, Rows: []models.Row{row(name, 2, "C", "p", value, "")}})
	}

	opts := DefaultOptions()
	opts.Parallel = true
	_, err := Assemble(context.Background(), sheets, opts)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "S3", parseErr.Sheet)
}

func TestAssembleParallelMatchesSequential(t *testing.T) {
	sequential, err := Assemble(context.Background(), sampleSheets(), DefaultOptions())
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Parallel = true
	parallel, err := Assemble(context.Background(), sampleSheets(), opts)
	require.NoError(t, err)

	a, err := output.ToJSON(sequential, 4)
	require.NoError(t, err)
	b, err := output.ToJSON(parallel, 4)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestAssembleIdempotent(t *testing.T) {
	first, err := Assemble(context.Background(), sampleSheets(), DefaultOptions())
	require.NoError(t, err)
	second, err := Assemble(context.Background(), sampleSheets(), DefaultOptions())
	require.NoError(t, err)

	a, err := output.ToJSON(first, 4)
	require.NoError(t, err)
	b, err := output.ToJSON(second, 4)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAssembleDuplicateSheetLastWins(t *testing.T) {
	sheets := []models.Sheet{
		{Name: "Rocket", Rows: []models.Row{row("Rocket", 2, "Body", "length", "1", "")}},
		{Name: "Environment", Rows: []models.Row{row("Environment", 2, "Launch", "angle", "85", "")}},
		{Name: "Rocket", Rows: []models.Row{row("Rocket", 2, "Nose", "length", "2", "")}},
	}

	doc, err := Assemble(context.Background(), sheets, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Rocket", "Environment"}, doc.Keys())

	rocket, _ := doc.Get("Rocket")
	assert.Equal(t, []string{"Nose"}, rocket.Keys())
}

func TestAssembleSelectSheets(t *testing.T) {
	opts := DefaultOptions()
	opts.Sheets = []string{"Environment"}
	doc, err := Assemble(context.Background(), sampleSheets(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Environment"}, doc.Keys())

	opts.Sheets = []string{"Environment", "Recovery"}
	_, err = Assemble(context.Background(), sampleSheets(), opts)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestAssembleCustomUnits(t *testing.T) {
	table, err := units.DefaultTable().With(units.Rule{From: "cm", To: "m", Factor: 1, Divisor: 100, Decimals: units.NoRounding})
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Units = table
	doc, err := Assemble(context.Background(), []models.Sheet{
		{Name: "Rocket", Rows: []models.Row{row("Rocket", 2, "Body", "length", "250", "cm")}},
	}, opts)
	require.NoError(t, err)

	rocket, _ := doc.Get("Rocket")
	body, _ := rocket.Get("Body")
	length, _ := body.Get("length")
	assert.Equal(t, 2.5, length.Value.Number)
	assert.Equal(t, "m", length.Unit)
}

func TestAssembleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Assemble(ctx, sampleSheets(), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
