package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind tells which field of a Value is populated.
type ValueKind uint8

const (
	// KindNumber is a scalar floating-point value.
	KindNumber ValueKind = iota
	// KindText is a string kept verbatim.
	KindText
	// KindTuple is an ordered sequence of numbers.
	KindTuple
)

// Value is a normalized parameter value.
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
	Tuple  []float64
}

// Number returns a scalar numeric Value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// Text returns a string Value.
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Tuple returns a multi-component Value. The slice is copied.
func Tuple(fs []float64) Value {
	return Value{Kind: KindTuple, Tuple: append([]float64(nil), fs...)}
}

// Interface returns the value as float64, string or []float64.
func (v Value) Interface() any {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindTuple:
		return v.Tuple
	default:
		return v.Number
	}
}

// MarshalJSON encodes numbers so that integral floats keep a trailing ".0".
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindText:
		return marshalJSON(v.Text)
	case KindTuple:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, f := range v.Tuple {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(FormatFloat(f))
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return []byte(FormatFloat(v.Number)), nil
	}
}

// MarshalYAML encodes the value with the same number formatting as JSON.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case KindText:
		return v.Text, nil
	case KindTuple:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, f := range v.Tuple {
			seq.Content = append(seq.Content, floatNode(f))
		}
		return seq, nil
	default:
		return floatNode(v.Number), nil
	}
}

func floatNode(f float64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: FormatFloat(f)}
}

// FormatFloat renders f in its shortest round-trip form. Integral values
// keep a ".0" suffix and very large or small magnitudes use exponent notation.
func FormatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// marshalJSON encodes v without HTML escaping.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// NormalizedValue is a value paired with its canonical unit.
// It is persisted as {"Value": ..., "Unit": ...}.
type NormalizedValue struct {
	// Value is the converted value.
	Value Value `json:"Value" yaml:"Value"`
	// Unit is the canonical unit, or the authored unit when no rule applied.
	Unit string `json:"Unit" yaml:"Unit"`
}

// ParameterEntry is the persisted shape of a parameter inside a category.
type ParameterEntry = NormalizedValue
