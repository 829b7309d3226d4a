package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"localbooker/models"
)

func TestSweepCompletesElapsedAndFreesService(t *testing.T) {
	e, bookings, catalog, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := e.UpdateStatus(ctx, a.ID, models.BookingStatusApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// Jump past the interval's end and sweep.
	e.Now = fixedClock(day(5))
	n, err := e.RunSweep(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if n == 0 {
		t.Fatal("sweep should have reconciled something")
	}

	stored, _ := bookings.GetByID(ctx, a.ID)
	if stored.Status != models.BookingStatusCompleted {
		t.Fatalf("elapsed booking should be completed, got %q", stored.Status)
	}
	svc, _ := catalog.GetByID(ctx, "svc-x")
	if !svc.IsAvailable || svc.BookedUntil != nil {
		t.Fatalf("service should be freed, got available=%v bookedUntil=%v", svc.IsAvailable, svc.BookedUntil)
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	e, _, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a, _ := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))
	if _, err := e.UpdateStatus(ctx, a.ID, models.BookingStatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	e.Now = fixedClock(day(5))
	if _, err := e.RunSweep(ctx); err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	n, err := e.RunSweep(ctx)
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("second sweep with no intervening writes reconciled %d records", n)
	}
}

func TestSweepLeavesManuallyCompletedBooking(t *testing.T) {
	e, bookings, catalog, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a, _ := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))

	// Admin completes early, before the interval has elapsed. The slot stays
	// blocked until the sweep observes the elapsed interval.
	if _, err := e.UpdateStatus(ctx, a.ID, models.BookingStatusCompleted); err != nil {
		t.Fatalf("early complete failed: %v", err)
	}
	svc, _ := catalog.GetByID(ctx, "svc-x")
	if svc.IsAvailable {
		t.Fatal("completed booking still blocks until its interval elapses")
	}

	e.Now = fixedClock(day(5))
	if _, err := e.RunSweep(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	stored, _ := bookings.GetByID(ctx, a.ID)
	if stored.Status != models.BookingStatusCompleted {
		t.Fatalf("sweep must leave completed bookings completed, got %q", stored.Status)
	}
	svc, _ = catalog.GetByID(ctx, "svc-x")
	if !svc.IsAvailable {
		t.Fatal("service should be freed once the interval has elapsed")
	}
}

func TestSweepIgnoresPendingBookings(t *testing.T) {
	e, bookings, _, _ := newTestEngine(testService())
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a, _ := e.CreateBooking(ctx, "user-1", rangeInput("svc-x", day(1), day(3)))

	e.Now = fixedClock(day(5))
	if _, err := e.RunSweep(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	stored, _ := bookings.GetByID(ctx, a.ID)
	if stored.Status != models.BookingStatusPending {
		t.Fatalf("sweep must not complete a pending booking, got %q", stored.Status)
	}
}

func TestSweepSkipsBadRecordAndFinishesTheRest(t *testing.T) {
	svcA := &models.Service{ID: "svc-a", Name: "Deep Clean", Price: 100, IsAvailable: true}
	svcB := &models.Service{ID: "svc-b", Name: "Lawn Care", Price: 80, IsAvailable: true}
	e, bookings, catalog, _ := newTestEngine(svcA, svcB)
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a, err := e.CreateBooking(ctx, "user-1", rangeInput("svc-a", day(1), day(3)))
	if err != nil {
		t.Fatalf("booking a failed: %v", err)
	}
	b, err := e.CreateBooking(ctx, "user-2", rangeInput("svc-b", day(1), day(3)))
	if err != nil {
		t.Fatalf("booking b failed: %v", err)
	}
	for _, id := range []string{a.ID, b.ID} {
		if _, err := e.UpdateStatus(ctx, id, models.BookingStatusConfirmed); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
	}

	// One record refuses its completion write; its neighbor must still be
	// reconciled.
	bookings.FailUpdateStatus = map[string]error{a.ID: errors.New("write conflict")}
	e.Now = fixedClock(day(5))
	n, err := e.RunSweep(ctx)
	if err != nil {
		t.Fatalf("sweep must not propagate a per-record failure, got %v", err)
	}

	storedA, _ := bookings.GetByID(ctx, a.ID)
	if storedA.Status != models.BookingStatusConfirmed {
		t.Fatalf("failed record should be left as-is, got %q", storedA.Status)
	}
	storedB, _ := bookings.GetByID(ctx, b.ID)
	if storedB.Status != models.BookingStatusCompleted {
		t.Fatalf("healthy record should be completed, got %q", storedB.Status)
	}
	freed, _ := catalog.GetByID(ctx, "svc-b")
	if !freed.IsAvailable || freed.BookedUntil != nil {
		t.Fatalf("healthy service should be freed, got available=%v bookedUntil=%v", freed.IsAvailable, freed.BookedUntil)
	}
	// Both stale projections freed, plus the healthy record's completion.
	if n != 3 {
		t.Fatalf("expected 3 reconciled records, got %d", n)
	}

	// The bad record is picked up once the write starts succeeding again.
	bookings.FailUpdateStatus = nil
	if _, err := e.RunSweep(ctx); err != nil {
		t.Fatalf("follow-up sweep failed: %v", err)
	}
	storedA, _ = bookings.GetByID(ctx, a.ID)
	if storedA.Status != models.BookingStatusCompleted {
		t.Fatalf("recovered record should be completed, got %q", storedA.Status)
	}
}

func TestSweepSkipsBadProjectionAndCorrectsTheRest(t *testing.T) {
	until := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	svcA := &models.Service{ID: "svc-a", Name: "Deep Clean", Price: 100, BookedUntil: &until}
	svcB := &models.Service{ID: "svc-b", Name: "Lawn Care", Price: 80, BookedUntil: &until}
	e, bookings, catalog, _ := newTestEngine(svcA, svcB)
	ctx := context.Background()

	bookings.FailListActive = map[string]error{"svc-a": errors.New("cursor error")}
	n, err := e.RunSweep(ctx)
	if err != nil {
		t.Fatalf("sweep must not propagate a per-service failure, got %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only the healthy projection reconciled, got %d", n)
	}
	fixed, _ := catalog.GetByID(ctx, "svc-b")
	if !fixed.IsAvailable || fixed.BookedUntil != nil {
		t.Fatalf("healthy projection not corrected: available=%v bookedUntil=%v", fixed.IsAvailable, fixed.BookedUntil)
	}
	broken, _ := catalog.GetByID(ctx, "svc-a")
	if broken.IsAvailable {
		t.Fatal("unreadable projection must be left untouched")
	}
}

func TestSweepRecomputesStaleProjection(t *testing.T) {
	// A service left unavailable with a booked-until in the past and no active
	// bookings gets its projection corrected.
	stale := testService()
	stale.IsAvailable = false
	until := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	stale.BookedUntil = &until

	e, _, catalog, _ := newTestEngine(stale)
	ctx := context.Background()

	n, err := e.RunSweep(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one reconciled record, got %d", n)
	}
	svc, _ := catalog.GetByID(ctx, "svc-x")
	if !svc.IsAvailable || svc.BookedUntil != nil {
		t.Fatalf("stale projection not corrected: available=%v bookedUntil=%v", svc.IsAvailable, svc.BookedUntil)
	}
}
