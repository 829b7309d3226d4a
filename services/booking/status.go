package booking

import "localbooker/models"

// Lifecycle stages in order. "approved" and "confirmed" share a stage, so a
// change between the two is a valid no-op spelling swap.
var statusStage = map[string]int{
	models.BookingStatusPending:   0,
	models.BookingStatusApproved:  1,
	models.BookingStatusConfirmed: 1,
	models.BookingStatusCompleted: 2,
}

// KnownStatus reports whether s names a booking status.
func KnownStatus(s string) bool {
	if s == models.BookingStatusCancelled {
		return true
	}
	_, ok := statusStage[s]
	return ok
}

// IsTerminal reports whether a booking in status s can no longer change.
func IsTerminal(s string) bool {
	return s == models.BookingStatusCompleted || s == models.BookingStatusCancelled
}

// IsActive reports whether status s blocks the service's calendar. Only
// cancelled bookings release their interval immediately; completed ones keep
// blocking until the sweep reconciles them.
func IsActive(s string) bool {
	return s != models.BookingStatusCancelled
}

// ValidTransition reports whether a booking may move from one status to
// another. Statuses only move forward: pending, then approved/confirmed, then
// completed. Cancellation is allowed from any non-terminal status. A change to
// the current status (or its alias) is a valid no-op.
func ValidTransition(from, to string) bool {
	if !KnownStatus(from) || !KnownStatus(to) {
		return false
	}
	if from == models.BookingStatusCancelled {
		return to == models.BookingStatusCancelled
	}
	if to == models.BookingStatusCancelled {
		return from != models.BookingStatusCompleted
	}
	return statusStage[to] >= statusStage[from]
}
