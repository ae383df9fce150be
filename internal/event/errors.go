package event

import "errors"

// ObserverError reports subscriber failures that happened after the
// calculation was already committed to history. The calculation stands;
// only the side effects (logging, autosave) may be incomplete.
type ObserverError struct {
	err error
}

func newObserverError(failures []error) *ObserverError {
	return &ObserverError{err: errors.Join(failures...)}
}

// Error implements error.
func (e *ObserverError) Error() string {
	return "event: subscriber notification failed: " + e.err.Error()
}

// Unwrap exposes the joined subscriber failures for errors.Is/As.
func (e *ObserverError) Unwrap() error { return e.err }
