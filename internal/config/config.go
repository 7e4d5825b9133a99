// Package config loads converter settings from TOML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/output"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/parser"
	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/units"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvConfigPath = "CONFIGGEN_CONFIG"
	EnvLogLevel   = "CONFIGGEN_LOG_LEVEL"
)

// Config holds converter settings.
type Config struct {
	Columns ColumnsConfig `toml:"columns"`
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
	Units   []UnitConfig  `toml:"units"`
}

// ColumnsConfig holds the header titles of the parameter table.
type ColumnsConfig struct {
	Category string `toml:"category"`
	Name     string `toml:"name"`
	Value    string `toml:"value"`
	Unit     string `toml:"unit"`
	Comment  string `toml:"comment"`
}

// OutputConfig controls document serialization.
type OutputConfig struct {
	Format string `toml:"format"`
	Indent int    `toml:"indent"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level string `toml:"level"`
}

// UnitConfig declares an additional or overriding unit rule.
// The value is converted as value*scale/divisor + offset.
type UnitConfig struct {
	From     string   `toml:"from"`
	To       string   `toml:"to"`
	Scale    *float64 `toml:"scale"`
	Divisor  *float64 `toml:"divisor"`
	Offset   float64  `toml:"offset"`
	Decimals *int     `toml:"decimals"`
	Text     bool     `toml:"text"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	cols := parser.DefaultColumns()
	return &Config{
		Columns: ColumnsConfig{
			Category: cols.Category,
			Name:     cols.Name,
			Value:    cols.Value,
			Unit:     cols.Unit,
			Comment:  cols.Comment,
		},
		Output: OutputConfig{
			Format: string(output.FormatJSON),
			Indent: output.DefaultIndent,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads a .env file from the working directory when present.
// Variables already set in the environment are kept.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Resolve returns flagValue when set, otherwise the environment variable key.
func Resolve(flagValue, key string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(key)
}

// Validate checks the configuration for values the converter cannot use.
func (c *Config) Validate() error {
	titles := []struct{ key, value string }{
		{"columns.category", c.Columns.Category},
		{"columns.name", c.Columns.Name},
		{"columns.value", c.Columns.Value},
		{"columns.unit", c.Columns.Unit},
	}
	for _, t := range titles {
		if strings.TrimSpace(t.value) == "" {
			return fmt.Errorf("%s must not be empty", t.key)
		}
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Output.Indent < 0 || c.Output.Indent > 16 {
		return fmt.Errorf("output.indent must be between 0 and 16, got %d", c.Output.Indent)
	}
	if _, err := c.UnitTable(); err != nil {
		return err
	}
	return nil
}

// ColumnTitles returns the configured header titles.
func (c *Config) ColumnTitles() parser.Columns {
	return parser.Columns{
		Category: strings.TrimSpace(c.Columns.Category),
		Name:     strings.TrimSpace(c.Columns.Name),
		Value:    strings.TrimSpace(c.Columns.Value),
		Unit:     strings.TrimSpace(c.Columns.Unit),
		Comment:  strings.TrimSpace(c.Columns.Comment),
	}
}

// UnitRules converts the configured units into rules.
// Omitted scale and divisor default to 1, omitted decimals disable rounding.
func (c *Config) UnitRules() []units.Rule {
	rules := make([]units.Rule, 0, len(c.Units))
	for _, u := range c.Units {
		r := units.Rule{
			From:     u.From,
			To:       u.To,
			Factor:   1,
			Divisor:  1,
			Offset:   u.Offset,
			Decimals: units.NoRounding,
			Text:     u.Text,
		}
		if u.Scale != nil {
			r.Factor = *u.Scale
		}
		if u.Divisor != nil {
			r.Divisor = *u.Divisor
		}
		if u.Decimals != nil {
			r.Decimals = *u.Decimals
		}
		rules = append(rules, r)
	}
	return rules
}

// UnitTable returns the builtin rules extended by the configured ones.
func (c *Config) UnitTable() (*units.Table, error) {
	return units.DefaultTable().With(c.UnitRules()...)
}
