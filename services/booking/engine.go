// File: localbooker/services/booking/engine.go
package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "localbooker/database/repository/booking"
	serviceRepo "localbooker/database/repository/service"
	"localbooker/models"
	"localbooker/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier delivers booking emails. Delivery is best effort: the engine logs
// failures and never lets them roll back or block a state change.
type Notifier interface {
	BookingCreated(ctx context.Context, b *models.Booking) error
	BookingStatusChanged(ctx context.Context, b *models.Booking) error
}

// Engine owns the booking ledger and the service availability projection. All
// booking state changes go through it; nothing else writes those collections.
type Engine struct {
	Bookings bookingRepo.Repository
	Services serviceRepo.Repository
	Notifier Notifier

	// Now is the engine's clock, replaceable in tests.
	Now func() time.Time

	locks *serviceLocks
}

func NewEngine(bookings bookingRepo.Repository, services serviceRepo.Repository, notifier Notifier) *Engine {
	return &Engine{
		Bookings: bookings,
		Services: services,
		Notifier: notifier,
		Now:      time.Now,
		locks:    newServiceLocks(),
	}
}

// CreateBooking validates the requested interval, rejects it if it conflicts
// with another active booking, and records a pending booking priced at the
// service's daily rate.
func (e *Engine) CreateBooking(ctx context.Context, userID string, in models.BookingInput) (*models.Booking, error) {
	b, err := e.book(ctx, userID, models.BookingStatusPending, in, 0, "")
	if err != nil {
		return nil, err
	}
	e.notifyCreated(ctx, b)
	return b, nil
}

// ManualBooking is the admin variant of CreateBooking: the admin chooses the
// initial status. Terminal statuses are not valid starting points.
func (e *Engine) ManualBooking(ctx context.Context, userID string, in models.BookingInput, status string) (*models.Booking, error) {
	if status == "" {
		status = models.BookingStatusPending
	}
	if !KnownStatus(status) {
		return nil, NewValidationError("unknown status %q", status)
	}
	if IsTerminal(status) {
		return nil, &InvalidStateTransition{From: "(new)", To: status}
	}
	b, err := e.book(ctx, userID, status, in, 0, "")
	if err != nil {
		return nil, err
	}
	e.notifyCreated(ctx, b)
	return b, nil
}

// ConfirmAfterPayment records a booking whose payment already succeeded. The
// slot is re-checked at confirm time: payment may have been initiated before
// the slot was held, so another booking can have landed in between. Repeated
// calls with the same payment reference return the already-recorded booking.
func (e *Engine) ConfirmAfterPayment(ctx context.Context, userID string, in models.BookingInput, amount float64, paymentRef string) (*models.Booking, error) {
	if paymentRef != "" {
		existing, err := e.Bookings.GetByPaymentIntent(ctx, paymentRef)
		if err != nil {
			return nil, fmt.Errorf("failed to look up payment reference: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}
	b, err := e.book(ctx, userID, models.BookingStatusConfirmed, in, amount, paymentRef)
	if err != nil {
		return nil, err
	}
	e.notifyCreated(ctx, b)
	return b, nil
}

// book runs the conflict-check, insert, recompute sequence under the
// service's lock so that two overlapping requests can never both land.
func (e *Engine) book(ctx context.Context, userID, status string, in models.BookingInput, amount float64, paymentRef string) (*models.Booking, error) {
	if in.ServiceID == "" {
		return nil, NewValidationError("serviceId is required")
	}
	if userID == "" {
		return nil, NewValidationError("userId is required")
	}
	svc, err := e.Services.GetByID(ctx, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if svc == nil {
		return nil, &NotFound{Kind: "service", ID: in.ServiceID}
	}
	iv, err := NormalizeInterval(in)
	if err != nil {
		return nil, err
	}

	lock := e.locks.Get(in.ServiceID)
	lock.Lock()
	defer lock.Unlock()

	conflict, err := e.Bookings.FindConflict(ctx, in.ServiceID, iv, "")
	if err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if conflict != nil {
		return nil, &SlotUnavailable{
			ServiceID: in.ServiceID,
			Conflict:  models.Interval{Start: conflict.CheckIn, End: conflict.CheckOut},
		}
	}

	price := amount
	if price <= 0 {
		price = PriceFor(svc, iv)
	}
	paymentStatus := models.PaymentStatusPending
	var paidAt *time.Time
	if paymentRef != "" {
		paymentStatus = models.PaymentStatusSucceeded
		now := e.Now()
		paidAt = &now
	}

	now := e.Now()
	b := &models.Booking{
		ID:              uuid.NewString(),
		ServiceID:       in.ServiceID,
		UserID:          userID,
		CheckIn:         iv.Start,
		CheckOut:        iv.End,
		Date:            in.Date,
		TimeSlot:        in.TimeSlot,
		Status:          status,
		Price:           price,
		PaymentStatus:   paymentStatus,
		PaymentIntentID: paymentRef,
		PaidAt:          paidAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := e.Bookings.Insert(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}
	if _, err := e.recompute(ctx, in.ServiceID); err != nil {
		utils.GetLogger().Error("availability recompute failed after insert",
			zap.String("serviceID", in.ServiceID), zap.Error(err))
	}
	return b, nil
}

// Reschedule moves an active booking to a new interval. The price stays what
// was agreed (or charged) when the booking was made; only the dates move. The
// booking's own record is excluded from the conflict check.
func (e *Engine) Reschedule(ctx context.Context, bookingID string, in models.BookingInput) (*models.Booking, error) {
	b, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b == nil {
		return nil, &NotFound{Kind: "booking", ID: bookingID}
	}
	if IsTerminal(b.Status) {
		return nil, NewValidationError("cannot reschedule a %s booking", b.Status)
	}
	in.ServiceID = b.ServiceID
	iv, err := NormalizeInterval(in)
	if err != nil {
		return nil, err
	}

	lock := e.locks.Get(b.ServiceID)
	lock.Lock()
	defer lock.Unlock()

	conflict, err := e.Bookings.FindConflict(ctx, b.ServiceID, iv, b.ID)
	if err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if conflict != nil {
		return nil, &SlotUnavailable{
			ServiceID: b.ServiceID,
			Conflict:  models.Interval{Start: conflict.CheckIn, End: conflict.CheckOut},
		}
	}

	if err := e.Bookings.UpdateInterval(ctx, b.ID, iv); err != nil {
		return nil, fmt.Errorf("failed to update booking interval: %w", err)
	}
	b.CheckIn = iv.Start
	b.CheckOut = iv.End
	b.Date = in.Date
	b.TimeSlot = in.TimeSlot
	if _, err := e.recompute(ctx, b.ServiceID); err != nil {
		utils.GetLogger().Error("availability recompute failed after reschedule",
			zap.String("serviceID", b.ServiceID), zap.Error(err))
	}
	e.notifyStatus(ctx, b)
	return b, nil
}

// CancelBooking cancels a booking on behalf of its owner or an admin.
func (e *Engine) CancelBooking(ctx context.Context, bookingID, actorID string, isAdmin bool) (*models.Booking, error) {
	b, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b == nil {
		return nil, &NotFound{Kind: "booking", ID: bookingID}
	}
	if !isAdmin && b.UserID != actorID {
		return nil, &Forbidden{Message: "booking belongs to another user"}
	}
	return e.applyStatus(ctx, b, models.BookingStatusCancelled)
}

// UpdateStatus moves a booking to a new status, enforcing the state machine.
func (e *Engine) UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	if !KnownStatus(status) {
		return nil, NewValidationError("unknown status %q", status)
	}
	b, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b == nil {
		return nil, &NotFound{Kind: "booking", ID: bookingID}
	}
	return e.applyStatus(ctx, b, status)
}

// BulkUpdateStatus applies a status change to every listed booking, skipping
// cancelled records and records already at the target stage. Skips never
// error, so re-running the same bulk request reports everything skipped.
func (e *Engine) BulkUpdateStatus(ctx context.Context, ids []string, status string) (updated, skipped int, err error) {
	if !KnownStatus(status) {
		return 0, 0, NewValidationError("unknown status %q", status)
	}
	if len(ids) == 0 {
		return 0, 0, NewValidationError("no booking ids given")
	}
	for _, id := range ids {
		b, err := e.Bookings.GetByID(ctx, id)
		if err != nil {
			return updated, skipped, fmt.Errorf("failed to load booking %s: %w", id, err)
		}
		if b == nil || b.Status == models.BookingStatusCancelled ||
			sameStage(b.Status, status) || !ValidTransition(b.Status, status) {
			skipped++
			continue
		}
		if _, err := e.applyStatus(ctx, b, status); err != nil {
			return updated, skipped, err
		}
		updated++
	}
	return updated, skipped, nil
}

func sameStage(a, b string) bool {
	sa, okA := statusStage[a]
	sb, okB := statusStage[b]
	return okA && okB && sa == sb
}

// applyStatus validates and persists a transition, recomputes the service's
// availability, and emits the status-change notification.
func (e *Engine) applyStatus(ctx context.Context, b *models.Booking, status string) (*models.Booking, error) {
	if !ValidTransition(b.Status, status) {
		return nil, &InvalidStateTransition{From: b.Status, To: status}
	}
	if b.Status != status {
		if err := e.Bookings.UpdateStatus(ctx, b.ID, status); err != nil {
			return nil, fmt.Errorf("failed to update booking status: %w", err)
		}
		b.Status = status
		if _, err := e.recompute(ctx, b.ServiceID); err != nil {
			utils.GetLogger().Error("availability recompute failed after status change",
				zap.String("serviceID", b.ServiceID), zap.Error(err))
		}
		e.notifyStatus(ctx, b)
	}
	return b, nil
}

func (e *Engine) notifyCreated(ctx context.Context, b *models.Booking) {
	if e.Notifier == nil {
		return
	}
	if err := e.Notifier.BookingCreated(ctx, b); err != nil {
		utils.GetLogger().Warn("booking-created notification failed",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}

func (e *Engine) notifyStatus(ctx context.Context, b *models.Booking) {
	if e.Notifier == nil {
		return
	}
	if err := e.Notifier.BookingStatusChanged(ctx, b); err != nil {
		utils.GetLogger().Warn("status-change notification failed",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}
