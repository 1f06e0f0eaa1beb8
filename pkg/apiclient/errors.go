package apiclient

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is returned when the server rejects a request, either through the
// HTTP status or through an error envelope.
type Error struct {
	StatusCode int
	Messages   []string
}

func (e *Error) Error() string {
	if e == nil {
		return "apiclient: request failed"
	}
	if len(e.Messages) == 0 {
		text := http.StatusText(e.StatusCode)
		if text == "" {
			text = "request failed"
		}
		return fmt.Sprintf("apiclient: %s (status %d)", strings.ToLower(text), e.StatusCode)
	}
	return fmt.Sprintf("apiclient: %s (status %d)", strings.Join(e.Messages, "; "), e.StatusCode)
}

// Message returns the text shown to the user for e.
func (e *Error) Message() string {
	if e == nil || len(e.Messages) == 0 {
		return "Something went wrong. Please try again."
	}
	return strings.Join(e.Messages, "\n")
}
