package admin

import (
	"context"

	bookingRepo "localbooker/database/repository/booking"
	serviceRepo "localbooker/database/repository/service"
	settingsRepo "localbooker/database/repository/settings"
	userRepo "localbooker/database/repository/user"
	"localbooker/models"
)

// AdminService backs the admin console: the dashboard, the booking list with
// search, and the platform settings document.
type AdminService interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)

	// ListBookings filters by status and free-text user name search.
	ListBookings(ctx context.Context, status, search string, page, limit int64, sort string) ([]models.Booking, int64, error)
	DeleteBooking(ctx context.Context, id string) error
	DeleteBookings(ctx context.Context, ids []string) (int64, error)

	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, settings *models.Settings) (*models.Settings, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Bookings bookingRepo.Repository
	Services serviceRepo.Repository
	Users    userRepo.Repository
	Settings settingsRepo.Repository
}
