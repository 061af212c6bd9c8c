// Package wizard models the storefront's linear multi-step flows as typed
// state machines. Steps only move forward on a successful server call and
// backward on an explicit user action; everything else is an invalid
// transition, rejected here rather than by scattered step checks.
package wizard

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a flow is driven out of order, e.g.
// completing registration before the OTP was verified.
var ErrInvalidTransition = errors.New("invalid wizard transition")

func invalidTransition(flow string, from, attempted string) error {
	return fmt.Errorf("%w: %s cannot %s from %s", ErrInvalidTransition, flow, attempted, from)
}
