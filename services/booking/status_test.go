package booking

import (
	"testing"

	"localbooker/models"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.BookingStatusPending, models.BookingStatusApproved, true},
		{models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{models.BookingStatusPending, models.BookingStatusCompleted, true},
		{models.BookingStatusPending, models.BookingStatusCancelled, true},
		{models.BookingStatusApproved, models.BookingStatusCompleted, true},
		{models.BookingStatusApproved, models.BookingStatusCancelled, true},
		{models.BookingStatusConfirmed, models.BookingStatusApproved, true}, // same stage, both spellings
		{models.BookingStatusApproved, models.BookingStatusPending, false},
		{models.BookingStatusCompleted, models.BookingStatusCancelled, false},
		{models.BookingStatusCompleted, models.BookingStatusApproved, false},
		{models.BookingStatusCancelled, models.BookingStatusPending, false},
		{models.BookingStatusCancelled, models.BookingStatusCompleted, false},
		{models.BookingStatusPending, "archived", false},
		{"archived", models.BookingStatusPending, false},
	}
	for _, c := range cases {
		if got := ValidTransition(c.from, c.to); got != c.want {
			t.Fatalf("ValidTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	if !IsTerminal(models.BookingStatusCompleted) || !IsTerminal(models.BookingStatusCancelled) {
		t.Fatal("completed and cancelled are terminal")
	}
	if IsTerminal(models.BookingStatusPending) || IsTerminal(models.BookingStatusApproved) {
		t.Fatal("pending and approved are not terminal")
	}
}

func TestIsActive(t *testing.T) {
	// Completed bookings still block the calendar until the sweep frees them;
	// only cancellation releases the interval immediately.
	if !IsActive(models.BookingStatusCompleted) {
		t.Fatal("completed bookings still block")
	}
	if IsActive(models.BookingStatusCancelled) {
		t.Fatal("cancelled bookings do not block")
	}
}
