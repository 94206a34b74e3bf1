package errors

import "fmt"

// SessionNotFound creates a missing session file error
func SessionNotFound(path string) *PlayError {
	return New(ErrCodeSessionNotFound, fmt.Sprintf("no session stored at %s", path)).
		WithDetail("path", path)
}

// SessionCorrupt creates an unreadable session file error
func SessionCorrupt(path string, err error) *PlayError {
	return Wrap(err, ErrCodeSessionCorrupt, fmt.Sprintf("session file %s could not be read", path)).
		WithDetail("path", path)
}

// SessionWrite creates a session persistence error
func SessionWrite(path string, err error) *PlayError {
	return Wrap(err, ErrCodeSessionWrite, fmt.Sprintf("could not write session file %s", path)).
		WithDetail("path", path)
}

// InvalidTransition creates a session state machine error
func InvalidTransition(from, to string) *PlayError {
	return New(ErrCodeInvalidTransition, fmt.Sprintf("cannot go from %s to %s", from, to)).
		WithDetail("from", from).
		WithDetail("to", to)
}

// ServiceFailed wraps an error returned by a broadcast service
func ServiceFailed(service, event string, err error) *PlayError {
	return Wrap(err, ErrCodeServiceFailed, fmt.Sprintf("service '%s' failed handling %s", service, event)).
		WithDetail("service", service).
		WithDetail("event", event)
}

// ServicePanic records a recovered panic from a broadcast service
func ServicePanic(service, event string, recovered interface{}) *PlayError {
	return New(ErrCodeServicePanic, fmt.Sprintf("service '%s' panicked handling %s: %v", service, event, recovered)).
		WithDetail("service", service).
		WithDetail("event", event)
}

// IndexOutOfRange creates an invalid index error
func IndexOutOfRange(index, length int) *PlayError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("index %d out of range [0,%d)", index, length)).
		WithDetail("index", index).
		WithDetail("length", length)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *PlayError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}
