// Package configgen converts simulation parameter sheets into a nested,
// unit-normalized config document.
package configgen

import (
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/parser"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/units"
)

// Options configures conversion behavior.
type Options struct {
	// Columns holds the header titles of the parameter table.
	Columns parser.Columns
	// Units is the unit rule table.
	// If nil, the builtin rules are used.
	Units *units.Table
	// Sheets restricts conversion to the named sheets, kept in source order.
	// If empty, every sheet is converted.
	Sheets []string
	// Parallel converts sheets concurrently. Output is identical to a sequential run.
	Parallel bool
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		Columns: parser.DefaultColumns(),
	}
}

func (o Options) unitTable() *units.Table {
	if o.Units != nil {
		return o.Units
	}
	return units.DefaultTable()
}

func (o Options) columns() parser.Columns {
	if o.Columns == (parser.Columns{}) {
		return parser.DefaultColumns()
	}
	return o.Columns
}
