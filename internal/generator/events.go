package generator

import "fmt"

// Severity grades an event. Only SeverityError marks a failed run.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Event is one progress message from a run
type Event struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Sink receives events synchronously, in emission order. It must not block for long.
type Sink func(Event)

// Outcome is the result of Generate
type Outcome struct {
	Success bool
	State   State   // Terminal state: StateDone, StateInvalid or StateFailed
	Path    string  // Absolute destination path
	Events  []Event // Every event emitted during the run
	Err     error   // The failure that ended the run; nil on success
}

// Warnings returns the warning events of the run.
func (o *Outcome) Warnings() []Event {
	var warnings []Event
	for _, e := range o.Events {
		if e.Severity == SeverityWarning {
			warnings = append(warnings, e)
		}
	}
	return warnings
}

// emit records an event and forwards it to the sink
func (r *run) emit(severity Severity, format string, args ...any) {
	e := Event{Message: fmt.Sprintf(format, args...), Severity: severity}
	r.events = append(r.events, e)

	r.log.Debug().Str("severity", string(severity)).Msg(e.Message)

	if r.sink != nil {
		r.sink(e)
	}
}
