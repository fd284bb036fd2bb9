package windowed

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidBounds is returned when a window's end does not come after its start.
var ErrInvalidBounds = errors.New("invalid window bounds")

// WindowError describes a window that could not be constructed.
// It carries the rejected bounds so callers can report them.
//
//nolint:govet // fieldalignment: struct layout optimized for readability over memory
type WindowError struct {
	// Kind names the window type being built ("time", "session", "unlimited").
	Kind string

	// Start is the requested window start.
	Start time.Time

	// End is the requested window end.
	End time.Time

	// Err is the underlying cause, usually ErrInvalidBounds.
	Err error
}

func newWindowError(kind string, start, end time.Time, err error) *WindowError {
	return &WindowError{
		Kind:  kind,
		Start: start,
		End:   end,
		Err:   err,
	}
}

// String returns a human-readable representation of the error.
func (we *WindowError) String() string {
	return fmt.Sprintf("WindowError[%s]: %v (start: %s, end: %s)",
		we.Kind, we.Err, we.Start.Format(time.RFC3339Nano), we.End.Format(time.RFC3339Nano))
}

// Unwrap returns the underlying error, enabling errors.Is against ErrInvalidBounds.
func (we *WindowError) Unwrap() error {
	return we.Err
}

// Error implements the error interface.
func (we *WindowError) Error() string {
	return we.String()
}
