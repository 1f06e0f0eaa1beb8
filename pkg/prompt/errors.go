package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoAnswer is returned by drivers that ran out of scripted answers.
	ErrNoAnswer = errors.New("prompt: no answer available")
)
