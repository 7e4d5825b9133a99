package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{1, "1.0"},
		{0, "0.0"},
		{-2, "-2.0"},
		{273.15, "273.15"},
		{200000, "200000.0"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.5e-7, "1.5e-07"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatFloat(tt.input), "FormatFloat(%v)", tt.input)
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{Number(3500), "3500.0"},
		{Text("a&b"), `"a&b"`},
		{Tuple([]float64{1, 2.5, 3}), "[1.0,2.5,3.0]"},
		{Tuple(nil), "[]"},
	}

	for _, tt := range tests {
		data, err := tt.value.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, string(data))
		assert.True(t, json.Valid(data))
	}
}

func TestValueInterface(t *testing.T) {
	assert.Equal(t, 1.5, Number(1.5).Interface())
	assert.Equal(t, "x", Text("x").Interface())
	assert.Equal(t, []float64{1, 2}, Tuple([]float64{1, 2}).Interface())
}

func TestTupleCopiesInput(t *testing.T) {
	in := []float64{1, 2}
	v := Tuple(in)
	in[0] = 9
	assert.Equal(t, []float64{1, 2}, v.Tuple)
}

func TestOrderedMap(t *testing.T) {
	m := NewParameterMap()
	m.Set("b", NormalizedValue{Value: Number(1)})
	m.Set("a", NormalizedValue{Value: Number(2)})
	m.Set("b", NormalizedValue{Value: Number(3)})

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, 2, m.Len())

	b, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, 3.0, b.Value.Number)

	_, ok = m.Get("c")
	assert.False(t, ok)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"b":{"Value":3.0,"Unit":""},"a":{"Value":2.0,"Unit":""}}`, string(data))
}

func TestOrderedMapZeroValue(t *testing.T) {
	var m OrderedMap[int]
	m.Set("x", 1)
	v, ok := m.Get("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestRowIsBlank(t *testing.T) {
	assert.True(t, Row{Sheet: "S", Line: 3}.IsBlank())
	assert.False(t, Row{Comment: "note"}.IsBlank())
}
