package catalog

import (
	"context"

	bookingRepo "localbooker/database/repository/booking"
	serviceRepo "localbooker/database/repository/service"
	"localbooker/models"
)

// CatalogService manages the bookable service catalog. Availability fields on
// a service are owned by the booking engine; this service never writes them.
type CatalogService interface {
	CreateService(ctx context.Context, name, description string, price float64) (*models.Service, error)
	UpdateService(ctx context.Context, id, name, description string, price float64) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)

	// ListWithBookingState enriches each service with the status of the
	// booking currently occupying it, if any.
	ListWithBookingState(ctx context.Context) ([]models.ServiceListing, error)
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo     serviceRepo.Repository
	Bookings bookingRepo.Repository
}
