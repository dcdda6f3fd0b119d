package exec

import (
	"fmt"
	"strings"
	"time"
)

// NotFoundError means the executable could not be located.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command '%s' not found. Please install it and try again", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ExitError means the process ran and exited with a non-zero status.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// TimeoutError means the process outlived its timeout and was killed.
type TimeoutError struct {
	Name    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Name, e.Timeout)
}
