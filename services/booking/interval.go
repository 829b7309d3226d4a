package booking

import (
	"strings"
	"time"

	"localbooker/models"
)

// TimeSlot24Hrs marks a single-date booking that spans a full day rather than
// ending at the close of that day.
const TimeSlot24Hrs = "24hrs"

// NormalizeInterval turns raw booking input into the half-open interval the
// ledger stores. Two input shapes are accepted: an explicit check-in/check-out
// pair, or a single date with an optional time slot.
func NormalizeInterval(in models.BookingInput) (models.Interval, error) {
	if in.CheckIn != nil && in.CheckOut != nil {
		if !in.CheckIn.Before(*in.CheckOut) {
			return models.Interval{}, NewValidationError("check-in must be before check-out")
		}
		return models.Interval{Start: *in.CheckIn, End: *in.CheckOut}, nil
	}

	if in.Date != nil {
		// The booking covers the whole day regardless of the timestamp's
		// time-of-day component.
		start := startOfDay(*in.Date)
		if strings.EqualFold(in.TimeSlot, TimeSlot24Hrs) {
			return models.Interval{Start: start, End: start.Add(24 * time.Hour)}, nil
		}
		return models.Interval{Start: start, End: endOfDay(start)}, nil
	}

	return models.Interval{}, NewValidationError("either checkIn/checkOut or date is required")
}

// startOfDay returns midnight of the given day in the same location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last representable millisecond of the given day in the
// same location.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999*int(time.Millisecond), t.Location())
}

// PriceFor computes the booking price: the service's daily rate times the
// number of days the interval covers, never less than one day.
func PriceFor(svc *models.Service, iv models.Interval) float64 {
	return svc.Price * float64(iv.DurationDays())
}
