package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-profileflow/pkg/profile"
)

var (
	// ErrBusy is returned while a submission or skip is in flight.
	ErrBusy = errors.New("wizard: submission in progress")
	// ErrCompleted is returned once the last step has been submitted.
	ErrCompleted = errors.New("wizard: profile already completed")
)

// ValidationError lists the required inputs left blank on a step. It is
// raised before any network call.
type ValidationError struct {
	Step   profile.Step
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wizard: %s is missing %s", e.Step.Slug(), strings.Join(e.Fields, ", "))
}

// userMessage returns the alert text for err. Errors carrying their own
// user-facing text (such as API rejections) are shown as-is.
func userMessage(err error) string {
	var friendly interface{ Message() string }
	if errors.As(err, &friendly) {
		return friendly.Message()
	}
	return err.Error()
}
