// File: localbooker/database/repository/booking/booking.go
package bookingRepo

import (
	"context"
	"time"

	"localbooker/models"
)

// ListQuery filters and paginates the admin booking list.
type ListQuery struct {
	Status  string
	UserIDs []string
	Page    int64
	Limit   int64
	Sort    string // "newest", "oldest", "date-asc", "date-desc"
}

// Repository is the authoritative store of booking records (the ledger).
type Repository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// FindConflict returns a non-cancelled booking for the service whose
	// interval overlaps iv, excluding excludeID when non-empty. Completed
	// bookings still block; only the sweep releases their slots.
	FindConflict(ctx context.Context, serviceID string, iv models.Interval, excludeID string) (*models.Booking, error)

	// ListActiveForService returns non-cancelled bookings for the service
	// whose interval ends at or after asOf.
	ListActiveForService(ctx context.Context, serviceID string, asOf time.Time) ([]models.Booking, error)

	// ListElapsed returns non-cancelled, non-pending bookings whose interval
	// has fully elapsed before now. Used by the availability sweep.
	ListElapsed(ctx context.Context, now time.Time) ([]models.Booking, error)

	UpdateStatus(ctx context.Context, id, status string) error
	UpdateInterval(ctx context.Context, id string, iv models.Interval) error
	GetByPaymentIntent(ctx context.Context, intentID string) (*models.Booking, error)

	ListForUser(ctx context.Context, userID string, limit int64) ([]models.Booking, error)
	List(ctx context.Context, q ListQuery) ([]models.Booking, int64, error)

	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)

	// Dashboard aggregations.
	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	MonthlyBookings(ctx context.Context) ([]models.MonthlyCount, error)
	MonthlyRevenue(ctx context.Context) ([]models.MonthlyAmount, error)
	RevenueByService(ctx context.Context) ([]models.RevenueSlice, error)
	Recent(ctx context.Context, limit int64) ([]models.Booking, error)
}
