// Package output serializes config documents and writes them to disk.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SpaceTeam/lamarr-configgen/pkg/configgen/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format.
type Format string

const (
	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"
	// FormatYAML writes block-style YAML.
	FormatYAML Format = "yaml"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 4

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (must be json or yaml)", s)
	}
}

// Encode serializes doc in the given format.
func Encode(doc *models.Document, format Format, indent int) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return ToJSON(doc, indent)
	case FormatYAML:
		return ToYAML(doc, indent)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// ToJSON serializes doc as JSON indented by indent spaces per level.
// Keys keep document order and the output ends with a newline.
func ToJSON(doc *models.Document, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToYAML serializes doc as YAML indented by indent spaces per level.
func ToYAML(doc *models.Document, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile replaces path with data. The data is written to a temporary file
// in the same directory and renamed over path, so readers never observe a
// partially written document.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("bytes", len(data)).Msg("wrote config document")
	return nil
}
