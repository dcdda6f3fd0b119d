package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies generation failures
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindTemplate
	KindFilesystem
	KindToolUnavailable
	KindCommand
	KindRollback
)

// String returns the human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindTemplate:
		return "template error"
	case KindFilesystem:
		return "filesystem error"
	case KindToolUnavailable:
		return "tool unavailable"
	case KindCommand:
		return "command error"
	case KindRollback:
		return "rollback failure"
	default:
		return "error"
	}
}

// Error is a classified generation failure
type Error struct {
	Kind Kind
	Op   string // What was being done, e.g. "write README.md" or "npm install"
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// ValidationError is one failed request check
type ValidationError struct {
	Field   string // Request field, e.g. "path"
	Message string // Human-readable problem
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error at %s: %s", e.Field, e.Message)
}

// ValidationErrors is every failed check of a request, in check order
type ValidationErrors []ValidationError

// Error returns all validation errors formatted with clear separation
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Message
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d validation errors:", len(e))
	for i, err := range e {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, err.Message)
	}
	return b.String()
}

// Messages returns the messages of every error
func (e ValidationErrors) Messages() []string {
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Message)
	}
	return messages
}
