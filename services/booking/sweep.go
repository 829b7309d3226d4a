package booking

import (
	"context"

	"localbooker/models"
	"localbooker/utils"

	"go.uber.org/zap"
)

// RunSweep reconciles the ledger and the availability projection after time
// has passed: services stuck unavailable past their booked-until marker get
// their projection recomputed, and bookings whose interval has fully elapsed
// are advanced to completed and their service freed.
//
// The sweep is idempotent and tolerates bad records: each record's failure is
// logged and skipped, never propagated. It returns the number of records it
// actually changed.
func (e *Engine) RunSweep(ctx context.Context) (int, error) {
	log := utils.GetLogger()
	now := e.Now()
	reconciled := 0

	stale, err := e.Services.ListExpiredUnavailable(ctx, now)
	if err != nil {
		log.Error("sweep: failed to list expired services", zap.Error(err))
	}
	for i := range stale {
		changed, err := e.recompute(ctx, stale[i].ID)
		if err != nil {
			log.Error("sweep: recompute failed",
				zap.String("serviceID", stale[i].ID), zap.Error(err))
			continue
		}
		if changed {
			reconciled++
		}
	}

	elapsed, err := e.Bookings.ListElapsed(ctx, now)
	if err != nil {
		log.Error("sweep: failed to list elapsed bookings", zap.Error(err))
		return reconciled, nil
	}
	for i := range elapsed {
		b := &elapsed[i]
		if b.Status != models.BookingStatusCompleted {
			if err := e.Bookings.UpdateStatus(ctx, b.ID, models.BookingStatusCompleted); err != nil {
				log.Error("sweep: failed to complete booking",
					zap.String("bookingID", b.ID), zap.Error(err))
				continue
			}
			b.Status = models.BookingStatusCompleted
			reconciled++
			e.notifyStatus(ctx, b)
		}
		changed, err := e.recompute(ctx, b.ServiceID)
		if err != nil {
			log.Error("sweep: recompute failed",
				zap.String("serviceID", b.ServiceID), zap.Error(err))
			continue
		}
		if changed {
			reconciled++
		}
	}
	return reconciled, nil
}
