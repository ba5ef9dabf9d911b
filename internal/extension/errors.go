package extension

import (
	"errors"
	"fmt"
)

// ErrDisconnected is returned by operations on a point after Disconnect.
var ErrDisconnected = errors.New("extension point is disconnected")

// TrackerError reports a value passed to Track that is not a usable tracker.
type TrackerError struct {
	Name           string
	ExtensionPoint *ExtensionPoint
	Message        string
}

func (e *TrackerError) Error() string {
	return e.Name + ": " + e.Message
}

func newTrackerError(ep *ExtensionPoint, api any) *TrackerError {
	return &TrackerError{
		Name:           "ExtensionTrackerError",
		ExtensionPoint: ep,
		Message: fmt.Sprintf("tracker of type %T has no onAddExtension function; no extensions for %s will be processed",
			api, ep.name),
	}
}

// CallbackError wraps a failure raised inside a tracker callback, either a
// returned error or a recovered panic.
type CallbackError struct {
	Method       string // e.g. "integers.onAddExtension"
	Contribution Contribution
	Err          error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("invoking %s with %s: %v", e.Method, e.Contribution, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }
