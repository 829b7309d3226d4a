package booking

import (
	"context"
	"fmt"
	"time"
)

// RecomputeAvailability re-derives a service's availability projection from
// the ledger. The projection is a cache, never authoritative: a service is
// unavailable while any non-cancelled booking's interval has not yet elapsed,
// and booked-until is the furthest such end. Idempotent.
func (e *Engine) RecomputeAvailability(ctx context.Context, serviceID string) error {
	_, err := e.recompute(ctx, serviceID)
	return err
}

// recompute reports whether the stored projection actually changed, which the
// sweep uses to count real reconciliations.
func (e *Engine) recompute(ctx context.Context, serviceID string) (bool, error) {
	now := e.Now()
	active, err := e.Bookings.ListActiveForService(ctx, serviceID, now)
	if err != nil {
		return false, fmt.Errorf("failed to list active bookings: %w", err)
	}
	if len(active) == 0 {
		changed, err := e.Services.SetAvailability(ctx, serviceID, true, nil)
		if err != nil {
			return false, fmt.Errorf("failed to set availability: %w", err)
		}
		return changed, nil
	}
	var until time.Time
	for _, b := range active {
		if b.CheckOut.After(until) {
			until = b.CheckOut
		}
	}
	changed, err := e.Services.SetAvailability(ctx, serviceID, false, &until)
	if err != nil {
		return false, fmt.Errorf("failed to set availability: %w", err)
	}
	return changed, nil
}
