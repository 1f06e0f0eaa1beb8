package option

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Shape tags the layout detected for a raw option payload.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeScalar
	ShapeList
	ShapeMap
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeList:
		return "list"
	case ShapeMap:
		return "map"
	default:
		return "empty"
	}
}

// Entry is one key/value pair of an object-shaped payload.
type Entry struct {
	Key   string
	Value any
}

// Raw is a classified option payload. Exactly one of Items, Entries or
// Scalar is meaningful, depending on Shape.
type Raw struct {
	Shape   Shape
	Items   []any
	Entries []Entry
	Scalar  any
}

// Detect classifies an already decoded payload. Object keys of a Go map
// carry no order, so entries are sorted by key (numerically when every key
// is an integer) to keep the output deterministic. Use ParseJSON to keep the
// server's key order.
func Detect(payload any) Raw {
	switch v := payload.(type) {
	case nil:
		return Raw{Shape: ShapeEmpty}
	case Raw:
		return v
	case []any:
		return Raw{Shape: ShapeList, Items: v}
	case []map[string]any:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return Raw{Shape: ShapeList, Items: items}
	case []string:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return Raw{Shape: ShapeList, Items: items}
	case map[string]string:
		generic := make(map[string]any, len(v))
		for key, value := range v {
			generic[key] = value
		}
		return Detect(generic)
	case map[string]any:
		if inner, ok := unwrapEnvelope(v); ok {
			return Detect(inner)
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sortKeys(keys)
		entries := make([]Entry, 0, len(keys))
		for _, key := range keys {
			entries = append(entries, Entry{Key: key, Value: v[key]})
		}
		if len(entries) == 0 {
			return Raw{Shape: ShapeEmpty}
		}
		return Raw{Shape: ShapeMap, Entries: entries}
	default:
		return Raw{Shape: ShapeScalar, Scalar: v}
	}
}

// ParseJSON decodes and classifies a JSON payload, preserving the key order
// of object-shaped payloads. A {status, data} envelope or a lone {data}
// wrapper is unwrapped first.
func ParseJSON(data []byte) (Raw, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Raw{Shape: ShapeEmpty}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []any
		if err := decodeJSON(trimmed, &items); err != nil {
			return Raw{}, fmt.Errorf("option: decode list: %w", err)
		}
		if len(items) == 0 {
			return Raw{Shape: ShapeEmpty}, nil
		}
		return Raw{Shape: ShapeList, Items: items}, nil
	case '{':
		fields, err := decodeOrderedObject(trimmed)
		if err != nil {
			return Raw{}, err
		}
		if inner, ok := envelopeData(fields); ok {
			return ParseJSON(inner)
		}
		if len(fields) == 0 {
			return Raw{Shape: ShapeEmpty}, nil
		}
		entries := make([]Entry, 0, len(fields))
		for _, field := range fields {
			var value any
			if err := decodeJSON(field.value, &value); err != nil {
				return Raw{}, fmt.Errorf("option: decode %q: %w", field.key, err)
			}
			entries = append(entries, Entry{Key: field.key, Value: value})
		}
		return Raw{Shape: ShapeMap, Entries: entries}, nil
	default:
		var scalar any
		if err := decodeJSON(trimmed, &scalar); err != nil {
			return Raw{}, fmt.Errorf("option: decode scalar: %w", err)
		}
		return Raw{Shape: ShapeScalar, Scalar: scalar}, nil
	}
}

type rawField struct {
	key   string
	value json.RawMessage
}

func decodeOrderedObject(data []byte) ([]rawField, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("option: decode object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("option: expected object, got %v", tok)
	}

	var fields []rawField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("option: decode key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("option: unexpected key token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("option: decode %q: %w", key, err)
		}
		fields = append(fields, rawField{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, fmt.Errorf("option: decode object end: %w", err)
	}
	return fields, nil
}

func envelopeData(fields []rawField) (json.RawMessage, bool) {
	var data json.RawMessage
	hasData, hasStatus := false, false
	for _, field := range fields {
		switch field.key {
		case "data":
			data, hasData = field.value, true
		case "status":
			hasStatus = true
		}
	}
	if !hasData {
		return nil, false
	}
	if hasStatus || len(fields) == 1 {
		return data, true
	}
	return nil, false
}

func unwrapEnvelope(m map[string]any) (any, bool) {
	data, ok := m["data"]
	if !ok {
		return nil, false
	}
	if _, hasStatus := m["status"]; hasStatus || len(m) == 1 {
		return data, true
	}
	return nil, false
}

func decodeJSON(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(dest)
}

func sortKeys(keys []string) {
	numeric := true
	for _, key := range keys {
		if _, err := strconv.ParseInt(key, 10, 64); err != nil {
			numeric = false
			break
		}
	}
	if !numeric {
		sort.Strings(keys)
		return
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.ParseInt(keys[i], 10, 64)
		b, _ := strconv.ParseInt(keys[j], 10, 64)
		return a < b
	})
}
