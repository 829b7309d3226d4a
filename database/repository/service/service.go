package serviceRepo

import (
	"context"
	"time"

	"localbooker/models"
)

// Repository stores the service catalog. The availability fields are a
// projection of the booking ledger; SetAvailability is their only writer.
type Repository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	Update(ctx context.Context, id string, name, description string, price float64) (*models.Service, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)

	// SetAvailability writes the availability projection and reports whether
	// the stored document actually changed.
	SetAvailability(ctx context.Context, id string, available bool, bookedUntil *time.Time) (bool, error)

	// ListExpiredUnavailable returns services still flagged unavailable whose
	// booked-until marker has fallen behind now.
	ListExpiredUnavailable(ctx context.Context, now time.Time) ([]models.Service, error)
}
