package booking

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	bookingRepo "localbooker/database/repository/booking"
	"localbooker/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestEngine(services ...*models.Service) (*Engine, *memBookings, *memServices, *memNotifier) {
	bookings := newMemBookings()
	catalog := newMemServices(services...)
	notifier := &memNotifier{}
	e := NewEngine(bookings, catalog, notifier)
	e.Now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return e, bookings, catalog, notifier
}

func testService() *models.Service {
	return &models.Service{ID: "svc-x", Name: "Deep Clean", Price: 100, IsAvailable: true}
}

func rangeInput(serviceID string, start, end time.Time) models.BookingInput {
	return models.BookingInput{ServiceID: serviceID, CheckIn: &start, CheckOut: &end}
}

func TestCreateBookingPricesAndProjects(t *testing.T) {
	e, _, catalog, notifier := newTestEngine(testService())
	ctx := context.Background()

	checkIn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	b, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", checkIn, checkOut))
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if b.Status != models.BookingStatusPending {
		t.Fatalf("expected status pending, got %q", b.Status)
	}
	if b.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("expected payment status pending, got %q", b.PaymentStatus)
	}
	if b.Price != 200 {
		t.Fatalf("expected price 200 for two days at 100/day, got %v", b.Price)
	}

	svc, _ := catalog.GetByID(ctx, "svc-x")
	if svc.IsAvailable {
		t.Fatal("service should be unavailable after booking")
	}
	if svc.BookedUntil == nil || !svc.BookedUntil.Equal(checkOut) {
		t.Fatalf("expected bookedUntil %v, got %v", checkOut, svc.BookedUntil)
	}
	if len(notifier.created) != 1 {
		t.Fatalf("expected one created notification, got %d", len(notifier.created))
	}
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	if _, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3))); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := e.CreateBooking(ctx, "user-2", rangeInput("svc-x", day(2), day(4)))
	var slot *SlotUnavailable
	if !errors.As(err, &slot) {
		t.Fatalf("expected SlotUnavailable, got %v", err)
	}
	if !slot.Conflict.Start.Equal(day(1)) || !slot.Conflict.End.Equal(day(3)) {
		t.Fatalf("conflict payload has wrong interval: %+v", slot.Conflict)
	}
}

func TestBoundaryTouchIsNotAConflict(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	if _, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3))); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := e.CreateBooking(ctx, "user-2", rangeInput("svc-x", day(3), day(5))); err != nil {
		t.Fatalf("back-to-back booking should succeed, got %v", err)
	}
}

func TestCancelFreesTheSlot(t *testing.T) {
	e, _, catalog, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	cancelled, err := e.CancelBooking(ctx, a.ID, "user-1", false)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Fatalf("expected cancelled, got %q", cancelled.Status)
	}
	svc, _ := catalog.GetByID(ctx, "svc-x")
	if !svc.IsAvailable || svc.BookedUntil != nil {
		t.Fatalf("service should be available again, got available=%v bookedUntil=%v", svc.IsAvailable, svc.BookedUntil)
	}

	// The same interval is free again.
	if _, err := e.CreateBooking(ctx, "user-2", rangeInput("svc-x", day(2), day(4))); err != nil {
		t.Fatalf("rebooking after cancel failed: %v", err)
	}
}

func TestCancelByStranger(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a, _ := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))

	var forbidden *Forbidden
	if _, err := e.CancelBooking(ctx, a.ID, "user-2", false); !errors.As(err, &forbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	// Admins can cancel on anyone's behalf.
	if _, err := e.CancelBooking(ctx, a.ID, "admin-1", true); err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
}

func TestCancelCompletedBooking(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a, _ := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	if _, err := e.UpdateStatus(ctx, a.ID, models.BookingStatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	var invalid *InvalidStateTransition
	if _, err := e.CancelBooking(ctx, a.ID, "user-1", false); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateTransition, got %v", err)
	}
}

func TestUpdateStatusRejectsBackwardMove(t *testing.T) {
	e, bookings, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a, _ := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	if _, err := e.UpdateStatus(ctx, a.ID, models.BookingStatusApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	var invalid *InvalidStateTransition
	if _, err := e.UpdateStatus(ctx, a.ID, models.BookingStatusPending); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateTransition, got %v", err)
	}
	stored, _ := bookings.GetByID(ctx, a.ID)
	if stored.Status != models.BookingStatusApproved {
		t.Fatalf("failed transition must leave the record unchanged, got %q", stored.Status)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())

	var notFound *NotFound
	if _, err := e.UpdateStatus(context.Background(), "nope", models.BookingStatusApproved); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestManualBookingRejectsTerminalStart(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	in := rangeInput("svc-x", day(1), day(3))

	var invalid *InvalidStateTransition
	if _, err := e.ManualBooking(ctx, "user-1", in, models.BookingStatusCompleted); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateTransition for completed start, got %v", err)
	}

	b, err := e.ManualBooking(ctx, "user-1", in, models.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("manual booking failed: %v", err)
	}
	if b.Status != models.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %q", b.Status)
	}
}

func TestConfirmAfterPayment(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	b, err := e.ConfirmAfterPayment(ctx, "user-1", rangeInput("svc-x", day(1), day(3)), 200, "pi_123")
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if b.Status != models.BookingStatusConfirmed || b.PaymentStatus != models.PaymentStatusSucceeded {
		t.Fatalf("unexpected statuses: %q / %q", b.Status, b.PaymentStatus)
	}
	if b.PaidAt == nil {
		t.Fatal("paidAt missing")
	}

	// Replayed payment references return the recorded booking, no duplicate.
	again, err := e.ConfirmAfterPayment(ctx, "user-1", rangeInput("svc-x", day(1), day(3)), 200, "pi_123")
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if again.ID != b.ID {
		t.Fatalf("replay created a second booking: %s vs %s", again.ID, b.ID)
	}
}

func TestConfirmAfterPaymentRechecksSlot(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	if _, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3))); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	var slot *SlotUnavailable
	_, err := e.ConfirmAfterPayment(ctx, "user-2", rangeInput("svc-x", day(2), day(4)), 200, "pi_456")
	if !errors.As(err, &slot) {
		t.Fatalf("expected SlotUnavailable at confirm time, got %v", err)
	}
}

func TestBulkUpdateStatus(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a, _ := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	b, _ := e.CreateBooking(ctx, "user-2", rangeInput("svc-x", day(3), day(5)))
	c, _ := e.CreateBooking(ctx, "user-3", rangeInput("svc-x", day(5), day(7)))
	if _, err := e.CancelBooking(ctx, c.ID, "user-3", false); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	ids := []string{a.ID, b.ID, c.ID}
	updated, skipped, err := e.BulkUpdateStatus(ctx, ids, models.BookingStatusApproved)
	if err != nil {
		t.Fatalf("bulk update failed: %v", err)
	}
	if updated != 2 || skipped != 1 {
		t.Fatalf("expected 2 updated / 1 skipped, got %d / %d", updated, skipped)
	}

	// Re-running the same request changes nothing and skips everything.
	updated, skipped, err = e.BulkUpdateStatus(ctx, ids, models.BookingStatusApproved)
	if err != nil {
		t.Fatalf("second bulk update failed: %v", err)
	}
	if updated != 0 || skipped != len(ids) {
		t.Fatalf("expected 0 updated / %d skipped on replay, got %d / %d", len(ids), updated, skipped)
	}
}

func TestConcurrentCreatesOneWinner(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	in := rangeInput("svc-x", day(1), day(3))

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.CreateBooking(ctx, "user", in)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var slot *SlotUnavailable
		if !errors.As(err, &slot) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}

func TestConcurrentRandomCreatesNeverOverlap(t *testing.T) {
	// Many goroutines racing with random interval clusters on one service:
	// whatever subset wins, no two accepted bookings may overlap.
	e, bookings, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, 1+d, 0, 0, 0, 0, time.UTC) }

	const attempts = 200
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(i)))
			start := rng.Intn(20)
			length := 1 + rng.Intn(5)
			_, errs[i] = e.CreateBooking(ctx, "user", rangeInput("svc-x", day(start), day(start+length)))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var slot *SlotUnavailable
		if !errors.As(err, &slot) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins == 0 {
		t.Fatal("at least one create should have landed")
	}

	stored, _, err := bookings.List(ctx, bookingRepo.ListQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(stored) != wins {
		t.Fatalf("ledger holds %d records but %d creates succeeded", len(stored), wins)
	}
	for i := range stored {
		for j := i + 1; j < len(stored); j++ {
			a := models.Interval{Start: stored[i].CheckIn, End: stored[i].CheckOut}
			b := models.Interval{Start: stored[j].CheckIn, End: stored[j].CheckOut}
			if a.Overlaps(b) {
				t.Fatalf("ledger holds overlapping bookings %v..%v and %v..%v",
					a.Start, a.End, b.Start, b.End)
			}
		}
	}
}

func TestNotificationFailureDoesNotBlockBooking(t *testing.T) {
	e, bookings, _, notifier := newTestEngine(testService())
	notifier.Fail = errors.New("smtp down")
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	b, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	if err != nil {
		t.Fatalf("booking must survive a notifier outage, got %v", err)
	}
	stored, _ := bookings.GetByID(ctx, b.ID)
	if stored == nil {
		t.Fatal("booking was not persisted")
	}
}

func TestCreateBookingUnknownService(t *testing.T) {
	e, _, _, _ := newTestEngine()
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	var notFound *NotFound
	_, err := e.CreateBooking(context.Background(), "user-1", rangeInput("ghost", day(1), day(2)))
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestRescheduleMovesTheInterval(t *testing.T) {
	e, bookings, catalog, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	b, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	moved, err := e.Reschedule(ctx, b.ID, rangeInput("svc-x", day(5), day(7)))
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if !moved.CheckIn.Equal(day(5)) || !moved.CheckOut.Equal(day(7)) {
		t.Fatalf("interval did not move: %v..%v", moved.CheckIn, moved.CheckOut)
	}
	if moved.Price != b.Price {
		t.Fatalf("reschedule must not reprice: had %v, got %v", b.Price, moved.Price)
	}

	stored, _ := bookings.GetByID(ctx, b.ID)
	if !stored.CheckIn.Equal(day(5)) {
		t.Fatalf("stored record did not move: %v", stored.CheckIn)
	}
	svc, _ := catalog.GetByID(ctx, "svc-x")
	if svc.BookedUntil == nil || !svc.BookedUntil.Equal(day(7)) {
		t.Fatalf("expected bookedUntil %v, got %v", day(7), svc.BookedUntil)
	}
}

func TestRescheduleDoesNotConflictWithItself(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	b, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	// Shifting by one day still overlaps the booking's own old slot.
	if _, err := e.Reschedule(ctx, b.ID, rangeInput("svc-x", day(2), day(4))); err != nil {
		t.Fatalf("reschedule overlapping own slot must succeed, got %v", err)
	}
}

func TestRescheduleRejectsTakenSlot(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	b, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := e.CreateBooking(ctx, "user-2", rangeInput("svc-x", day(5), day(7))); err != nil {
		t.Fatalf("second booking failed: %v", err)
	}

	var slot *SlotUnavailable
	_, err = e.Reschedule(ctx, b.ID, rangeInput("svc-x", day(6), day(8)))
	if !errors.As(err, &slot) {
		t.Fatalf("expected SlotUnavailable, got %v", err)
	}
}

func TestRescheduleRejectsTerminalBooking(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	b, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := e.CancelBooking(ctx, b.ID, "user-1", false); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	var invalid *ValidationError
	_, err = e.Reschedule(ctx, b.ID, rangeInput("svc-x", day(5), day(7)))
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
