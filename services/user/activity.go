package user

import (
	"context"
	"fmt"
	"sort"
	"time"

	"localbooker/models"
)

// Activity derives the user's recent activity feed from their bookings,
// newest first. There is no separate activity collection; the ledger already
// records everything worth showing.
func (s *DefaultUserService) Activity(ctx context.Context, userID string, limit int64) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	bookings, err := s.Bookings.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].UpdatedAt.After(bookings[j].UpdatedAt)
	})
	if int64(len(bookings)) > limit {
		bookings = bookings[:limit]
	}

	entries := make([]ActivityEntry, 0, len(bookings))
	for _, b := range bookings {
		entries = append(entries, ActivityEntry{
			BookingID:   b.ID,
			ServiceID:   b.ServiceID,
			Status:      b.Status,
			Description: activityDescription(&b),
			At:          b.UpdatedAt.Format(time.RFC3339),
		})
	}
	return entries, nil
}

func activityDescription(b *models.Booking) string {
	switch b.Status {
	case models.BookingStatusPending:
		return "Booking placed, awaiting approval"
	case models.BookingStatusApproved, models.BookingStatusConfirmed:
		return "Booking approved"
	case models.BookingStatusCompleted:
		return "Booking completed"
	case models.BookingStatusCancelled:
		return "Booking cancelled"
	default:
		return "Booking updated"
	}
}
