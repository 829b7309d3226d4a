package admin

import (
	"context"
	"fmt"
	"strings"

	bookingRepo "localbooker/database/repository/booking"
	"localbooker/models"
)

// ListBookings returns a page of bookings for the admin console. A search
// term matches against user names; no match at all short-circuits to an empty
// page rather than an unfiltered one.
func (a *DefaultAdminService) ListBookings(ctx context.Context, status, search string, page, limit int64, sort string) ([]models.Booking, int64, error) {
	q := bookingRepo.ListQuery{
		Status: status,
		Page:   page,
		Limit:  limit,
		Sort:   sort,
	}
	if search = strings.TrimSpace(search); search != "" {
		ids, err := a.Users.SearchIDsByName(ctx, search)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to search users: %w", err)
		}
		if len(ids) == 0 {
			return []models.Booking{}, 0, nil
		}
		q.UserIDs = ids
	}
	return a.Bookings.List(ctx, q)
}

// DeleteBooking is the unrestricted administrative removal of a ledger record.
func (a *DefaultAdminService) DeleteBooking(ctx context.Context, id string) error {
	if err := a.Bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (a *DefaultAdminService) DeleteBookings(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("no booking ids given")
	}
	n, err := a.Bookings.DeleteMany(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings: %w", err)
	}
	return n, nil
}
