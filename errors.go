package rfm95x

import (
	"errors"
	"fmt"
)

var (
	ErrPkg = errors.New("rfm95x")
	// ErrInvalidParameter is returned when a configuration or setter value is out of
	// range. It is always detected before any bus access.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrHandleConsumed is returned by every operation on a handle that already
	// transitioned to another mode (or was closed).
	ErrHandleConsumed = errors.New("handle already consumed by a mode transition")
	// ErrModeNotPermitted is returned by the runtime-moded Radio when the current
	// operating mode does not accept the operation.
	ErrModeNotPermitted = errors.New("operation not permitted in current mode")
	// ErrModeMismatch is returned by Typed when the Radio is not in the requested mode.
	ErrModeMismatch = errors.New("radio is not in the requested mode")
	// ErrPinsNotConfigured is returned by New when no reset pin is provided.
	ErrPinsNotConfigured = errors.New("reset pin not configured")
)

// TransportError reports a failed bus transaction. Registers written by earlier
// steps of the same operation stay committed.
type TransportError struct {
	Op       string // "read" or "write"
	Register Register
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrPkg, e.Op, e.Register, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrPkg, ErrInvalidParameter, fmt.Sprintf(format, args...))
}
