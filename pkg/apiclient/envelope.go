package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the response wrapper used by every endpoint.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message json.RawMessage `json:"message,omitempty"`
}

// Failed reports whether the envelope carries an error status.
func (e Envelope) Failed() bool {
	return strings.EqualFold(strings.TrimSpace(e.Status), StatusError)
}

// Messages flattens the message field into a deduplicated list.
func (e Envelope) Messages() []string {
	return ExtractMessages(e.Message)
}

// decodeEnvelope parses body. Bodies that are not wrapped in an envelope are
// treated as bare data.
func decodeEnvelope(body []byte) (Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Envelope{}, nil
	}
	if trimmed[0] != '{' {
		return Envelope{Data: json.RawMessage(trimmed)}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return Envelope{}, fmt.Errorf("apiclient: decode envelope: %w", err)
	}
	_, hasStatus := probe["status"]
	_, hasData := probe["data"]
	if !hasStatus && !hasData {
		return Envelope{Data: json.RawMessage(trimmed)}, nil
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Envelope{}, fmt.Errorf("apiclient: decode envelope: %w", err)
	}
	return env, nil
}

// ExtractMessages accepts a string, a list of strings, or an object whose
// values are strings or string lists. The "error" key is read first and the
// remaining keys in sorted order. Messages are trimmed and deduplicated,
// preserving order.
func ExtractMessages(raw json.RawMessage) []string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil
	}

	var collected []string
	switch typed := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			if key != "error" {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		if _, ok := typed["error"]; ok {
			keys = append([]string{"error"}, keys...)
		}
		for _, key := range keys {
			collected = append(collected, stringsOf(typed[key])...)
		}
	default:
		collected = stringsOf(typed)
	}
	return normalizeMessages(collected)
}

func stringsOf(value any) []string {
	switch typed := value.(type) {
	case string:
		return []string{typed}
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(messages))
	out := make([]string, 0, len(messages))
	for _, msg := range messages {
		trimmed := strings.TrimSpace(msg)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
