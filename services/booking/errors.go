package booking

import (
	"fmt"
	"time"

	"localbooker/models"
)

// ValidationError reports malformed or missing input. Never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Message)
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// SlotUnavailable reports a conflict with another active booking. The caller
// may retry with a different interval.
type SlotUnavailable struct {
	ServiceID string
	Conflict  models.Interval
}

func (e *SlotUnavailable) Error() string {
	return fmt.Sprintf("service %s is already booked from %s to %s",
		e.ServiceID,
		e.Conflict.Start.Format(time.RFC3339),
		e.Conflict.End.Format(time.RFC3339))
}

// InvalidStateTransition reports a status change not permitted by the booking
// state machine.
type InvalidStateTransition struct {
	From string
	To   string
}

func (e *InvalidStateTransition) Error() string {
	return fmt.Sprintf("cannot transition booking from %q to %q", e.From, e.To)
}

// Forbidden reports that the actor lacks rights over the target booking.
type Forbidden struct {
	Message string
}

func (e *Forbidden) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Message)
}

// NotFound reports that a booking or service id does not resolve.
type NotFound struct {
	Kind string
	ID   string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
