package option

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

var (
	idKeys   = []string{"id", "value", "key"}
	nameKeys = []string{"name", "label"}
)

// Normalize projects a payload into options. payload may be a Raw value or
// any decoded JSON value; see Detect for how it is classified.
//
// List elements take their id from id, value or key (falling back to the
// element itself when it is a scalar) and their name from name, label or the
// first string-valued property. Map entries take the key as id unless the
// value carries its own id. Entries with an empty or "Unknown" name are
// dropped and names are deduplicated case-insensitively, first one wins.
func Normalize(payload any) []Option {
	if opts, ok := payload.([]Option); ok {
		return Dedupe(opts)
	}
	raw := Detect(payload)

	var out []Option
	switch raw.Shape {
	case ShapeList:
		out = make([]Option, 0, len(raw.Items))
		for _, item := range raw.Items {
			out = append(out, fromElement(item))
		}
	case ShapeMap:
		out = make([]Option, 0, len(raw.Entries))
		for _, entry := range raw.Entries {
			out = append(out, fromEntry(entry))
		}
	default:
		return nil
	}
	return Dedupe(out)
}

// FromJSON parses and normalises a JSON payload. Malformed input yields nil.
func FromJSON(data []byte) []Option {
	raw, err := ParseJSON(data)
	if err != nil {
		return nil
	}
	return Normalize(raw)
}

// Dedupe drops options without a usable name and keeps only the first option
// for each case-insensitive name, preserving order.
func Dedupe(opts []Option) []Option {
	if len(opts) == 0 {
		return nil
	}
	out := make([]Option, 0, len(opts))
	seen := make(map[string]struct{}, len(opts))
	for _, opt := range opts {
		name := strings.TrimSpace(opt.Name)
		if name == "" || strings.EqualFold(name, UnknownName) {
			continue
		}
		key := strings.ToLower(name)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Option{ID: strings.TrimSpace(opt.ID), Name: name})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func fromElement(item any) Option {
	obj, ok := item.(map[string]any)
	if !ok {
		// Only string elements name themselves; bare numbers have no label.
		name, _ := item.(string)
		return Option{ID: scalarText(item), Name: name}
	}
	name := nameOf(obj)
	id := firstScalar(obj, idKeys)
	if id == "" {
		id = name
	}
	return Option{ID: id, Name: name}
}

func fromEntry(entry Entry) Option {
	switch value := entry.Value.(type) {
	case map[string]any:
		id := firstScalar(value, []string{"id"})
		if id == "" {
			id = entry.Key
		}
		return Option{ID: id, Name: nameOf(value)}
	default:
		return Option{ID: entry.Key, Name: scalarText(value)}
	}
}

// nameOf resolves a display name for an object element.
func nameOf(obj map[string]any) string {
	for _, key := range nameKeys {
		switch value := obj[key].(type) {
		case string:
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		case map[string]any:
			if translated := translatedName(value); translated != "" {
				return translated
			}
		}
	}
	return firstStringProperty(obj, idKeys)
}

// translatedName reads {"en": "..."} style objects, preferring English.
func translatedName(obj map[string]any) string {
	if en, ok := obj["en"].(string); ok && strings.TrimSpace(en) != "" {
		return strings.TrimSpace(en)
	}
	return firstStringProperty(obj, nil)
}

func firstStringProperty(obj map[string]any, skip []string) string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		if contains(skip, key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstScalar(obj map[string]any, keys []string) string {
	for _, key := range keys {
		if text := scalarText(obj[key]); text != "" {
			return text
		}
	}
	return ""
}

func scalarText(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
