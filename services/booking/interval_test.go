package booking

import (
	"errors"
	"testing"
	"time"

	"localbooker/models"
)

func TestNormalizeIntervalExplicitRange(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	iv, err := NormalizeInterval(models.BookingInput{ServiceID: "s", CheckIn: &start, CheckOut: &end})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if !iv.Start.Equal(start) || !iv.End.Equal(end) {
		t.Fatalf("interval mangled: %+v", iv)
	}
}

func TestNormalizeIntervalRejectsDegenerateRange(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var vErr *ValidationError
	if _, err := NormalizeInterval(models.BookingInput{ServiceID: "s", CheckIn: &at, CheckOut: &at}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for checkIn == checkOut, got %v", err)
	}
	before := at.Add(-time.Hour)
	if _, err := NormalizeInterval(models.BookingInput{ServiceID: "s", CheckIn: &at, CheckOut: &before}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for checkIn > checkOut, got %v", err)
	}
}

func TestNormalizeIntervalSingleDate(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	iv, err := NormalizeInterval(models.BookingInput{ServiceID: "s", Date: &date})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if !iv.Start.Equal(date) {
		t.Fatalf("start should be the date itself, got %v", iv.Start)
	}
	wantEnd := time.Date(2024, 5, 1, 23, 59, 59, 999000000, time.UTC)
	if !iv.End.Equal(wantEnd) {
		t.Fatalf("end should be end of day, got %v", iv.End)
	}
}

func TestNormalizeIntervalSingleDateIgnoresTimeOfDay(t *testing.T) {
	// Clients sometimes send a full datetime where a date is expected. The
	// booking still covers the whole day.
	date := time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)
	iv, err := NormalizeInterval(models.BookingInput{ServiceID: "s", Date: &date})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	wantStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if !iv.Start.Equal(wantStart) {
		t.Fatalf("start should be midnight of the date, got %v", iv.Start)
	}
	wantEnd := time.Date(2024, 5, 1, 23, 59, 59, 999000000, time.UTC)
	if !iv.End.Equal(wantEnd) {
		t.Fatalf("end should be end of day, got %v", iv.End)
	}

	slot, err := NormalizeInterval(models.BookingInput{ServiceID: "s", Date: &date, TimeSlot: "24hrs"})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if !slot.Start.Equal(wantStart) || !slot.End.Equal(wantStart.Add(24*time.Hour)) {
		t.Fatalf("24hrs slot should span midnight to midnight, got %v..%v", slot.Start, slot.End)
	}
}

func TestNormalizeInterval24HourSlot(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	iv, err := NormalizeInterval(models.BookingInput{ServiceID: "s", Date: &date, TimeSlot: "24hrs"})
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if !iv.End.Equal(date.Add(24 * time.Hour)) {
		t.Fatalf("24hrs slot should end exactly a day later, got %v", iv.End)
	}

	// A same-day range falls inside the 24hrs slot.
	mid := models.Interval{
		Start: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC),
	}
	if !iv.Overlaps(mid) {
		t.Fatal("same-day range must overlap the 24hrs slot")
	}
}

func TestNormalizeIntervalRequiresSomeInput(t *testing.T) {
	var vErr *ValidationError
	if _, err := NormalizeInterval(models.BookingInput{ServiceID: "s"}); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for empty input, got %v", err)
	}
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	a := models.Interval{Start: day(1), End: day(3)}
	b := models.Interval{Start: day(3), End: day(5)}
	if a.Overlaps(b) || b.Overlaps(a) {
		t.Fatal("boundary-touching intervals must not overlap")
	}
	c := models.Interval{Start: day(2), End: day(4)}
	if !a.Overlaps(c) || !c.Overlaps(a) {
		t.Fatal("overlap must be symmetric")
	}
}

func TestDurationDaysRoundsUp(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	cases := []struct {
		iv   models.Interval
		want int
	}{
		{models.Interval{Start: day(1), End: day(3)}, 2},
		{models.Interval{Start: day(1), End: day(1).Add(6 * time.Hour)}, 1},
		{models.Interval{Start: day(1), End: day(2).Add(time.Hour)}, 2},
	}
	for _, c := range cases {
		if got := c.iv.DurationDays(); got != c.want {
			t.Fatalf("DurationDays(%v..%v) = %d, want %d", c.iv.Start, c.iv.End, got, c.want)
		}
	}
}

func TestPriceForMinimumOneDay(t *testing.T) {
	svc := &models.Service{ID: "s", Price: 100}
	short := models.Interval{
		Start: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
	}
	if got := PriceFor(svc, short); got != 100 {
		t.Fatalf("sub-day booking should cost one day, got %v", got)
	}
}
