package models

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed map that remembers first insertion order.
// Overwriting a key replaces its value but keeps its original position.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// ParameterMap maps parameter name to its entry within one category.
type ParameterMap = OrderedMap[ParameterEntry]

// CategoryMap maps category name to its parameters within one sheet.
type CategoryMap = OrderedMap[*ParameterMap]

// Document is the top-level config document keyed by sheet name.
type Document = OrderedMap[*CategoryMap]

// NewParameterMap returns an empty ParameterMap.
func NewParameterMap() *ParameterMap { return newOrderedMap[ParameterEntry]() }

// NewCategoryMap returns an empty CategoryMap.
func NewCategoryMap() *CategoryMap { return newOrderedMap[*ParameterMap]() }

// NewDocument returns an empty Document.
func NewDocument() *Document { return newOrderedMap[*CategoryMap]() }

func newOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set stores value under key.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalJSON(key)
		if err != nil {
			return nil, err
		}
		v, err := marshalJSON(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the map as a YAML mapping in insertion order.
func (m *OrderedMap[V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.keys {
		var k, v yaml.Node
		if err := k.Encode(key); err != nil {
			return nil, err
		}
		if err := v.Encode(m.values[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &k, &v)
	}
	return node, nil
}
