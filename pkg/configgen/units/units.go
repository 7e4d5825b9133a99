// Package units normalizes authored parameter values into the base unit system.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/models"
	"golang.org/x/text/unicode/norm"
)

// TupleSeparator splits multi-component values.
const TupleSeparator = ","

// NoRounding disables rounding for a Rule.
const NoRounding = -1

// ErrNotNumeric indicates a value that cannot be parsed as a number.
var ErrNotNumeric = errors.New("value is not numeric")

// Rule describes how values authored in one unit are normalized.
// Numeric rules compute value*Factor/Divisor + Offset.
type Rule struct {
	// From is the authored unit label.
	From string
	// To is the canonical unit written to the document.
	To string
	// Factor multiplies the parsed value.
	Factor float64
	// Divisor divides the scaled value.
	Divisor float64
	// Offset is added after scaling.
	Offset float64
	// Decimals rounds the result to that many decimal places, or NoRounding.
	Decimals int
	// Text keeps the value as a string and leaves the unit untouched.
	Text bool
}

// Builtin is the default rule set.
var Builtin = []Rule{
	{From: "mm", To: "m", Factor: 1, Divisor: 1000, Decimals: 5},
	{From: "g", To: "kg", Factor: 1, Divisor: 1000, Decimals: NoRounding},
	{From: "bar", To: "Pa", Factor: 100000, Divisor: 1, Decimals: NoRounding},
	{From: "kN", To: "N", Factor: 1000, Divisor: 1, Decimals: NoRounding},
	{From: "°C", To: "K", Factor: 1, Divisor: 1, Offset: 273.15, Decimals: NoRounding},
	{From: "text", Text: true},
}

// Validate checks that the rule can be applied.
func (r Rule) Validate() error {
	if Key(r.From) == "" {
		return errors.New("unit rule has empty source unit")
	}
	if r.Text {
		return nil
	}
	if r.To == "" {
		return fmt.Errorf("unit rule %q has empty target unit", r.From)
	}
	if r.Divisor == 0 {
		return fmt.Errorf("unit rule %q has zero divisor", r.From)
	}
	return nil
}

func (r Rule) apply(v float64) float64 {
	v = v*r.Factor/r.Divisor + r.Offset
	if r.Decimals >= 0 {
		v = round(v, r.Decimals)
	}
	return v
}

// round rounds to the nearest decimal with the given number of places,
// using the exact binary value of v.
func round(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Key returns the lookup form of a unit label. Compatibility characters
// such as "℃" fold onto their plain spelling.
func Key(unit string) string {
	return norm.NFKC.String(strings.TrimSpace(unit))
}

// Table is a set of rules keyed by source unit.
type Table struct {
	rules map[string]Rule
}

// NewTable builds a table. Later rules override earlier ones with the same source unit.
func NewTable(rules ...Rule) (*Table, error) {
	t := &Table{rules: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		t.rules[Key(r.From)] = r
	}
	return t, nil
}

// DefaultTable returns a table holding the Builtin rules.
func DefaultTable() *Table {
	t, err := NewTable(Builtin...)
	if err != nil {
		panic(err)
	}
	return t
}

// With returns a copy of t extended with rules.
func (t *Table) With(rules ...Rule) (*Table, error) {
	all := make([]Rule, 0, len(t.rules)+len(rules))
	for _, r := range t.rules {
		all = append(all, r)
	}
	return NewTable(append(all, rules...)...)
}

// Lookup returns the rule registered for unit.
func (t *Table) Lookup(unit string) (Rule, bool) {
	r, ok := t.rules[Key(unit)]
	return r, ok
}

// Convert normalizes a raw value authored in unit.
//
// A value containing TupleSeparator becomes an ordered sequence of numbers and
// keeps its unit unconverted. Otherwise the unit's rule is applied; units
// without a rule keep their label and only have the value parsed.
func (t *Table) Convert(value, unit string) (models.NormalizedValue, error) {
	if strings.Contains(value, TupleSeparator) {
		parts := strings.Split(value, TupleSeparator)
		nums := make([]float64, len(parts))
		for i, p := range parts {
			f, err := ParseFloat(p)
			if err != nil {
				return models.NormalizedValue{}, fmt.Errorf("component %d: %w", i+1, err)
			}
			nums[i] = f
		}
		return models.NormalizedValue{Value: models.Tuple(nums), Unit: unit}, nil
	}

	rule, ok := t.Lookup(unit)
	if ok && rule.Text {
		return models.NormalizedValue{Value: models.Text(value), Unit: unit}, nil
	}

	f, err := ParseFloat(value)
	if err != nil {
		return models.NormalizedValue{}, err
	}
	if !ok {
		return models.NormalizedValue{Value: models.Number(f), Unit: unit}, nil
	}
	return models.NormalizedValue{Value: models.Number(rule.apply(f)), Unit: rule.To}, nil
}

var defaultTable = DefaultTable()

// Convert normalizes value with the Builtin rules.
func Convert(value, unit string) (models.NormalizedValue, error) {
	return defaultTable.Convert(value, unit)
}

// ParseFloat parses s as a finite number, ignoring surrounding whitespace.
func ParseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return f, nil
}
