package connection

import (
	"errors"
	"fmt"
)

// ErrTimeout is recorded when no load outcome arrived within the attempt
// timeout.
var ErrTimeout = errors.New("page load timed out")

// LoadError is an explicit page load failure reported by the page.
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string {
	return "page load failed: " + e.Reason
}

// AttemptError ties a failure to the attempt it ended.
type AttemptError struct {
	Attempt int
	Err     error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("attempt %d: %v", e.Attempt, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}
