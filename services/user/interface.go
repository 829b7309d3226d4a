package user

import (
	"context"

	bookingRepo "localbooker/database/repository/booking"
	userRepo "localbooker/database/repository/user"
	"localbooker/models"
)

// UserService handles accounts: registration, sign-in, profile management,
// and the per-user activity feed.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)

	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, name, profilePic string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	DeleteUser(ctx context.Context, userID string) error

	GetAllUsers(ctx context.Context) ([]models.User, error)
	SetStatus(ctx context.Context, userID, status string) (*models.User, error)
	SetRole(ctx context.Context, userID, role string) (*models.User, error)

	// Activity returns the user's recent booking events, newest first.
	Activity(ctx context.Context, userID string, limit int64) ([]ActivityEntry, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.Repository
	Bookings bookingRepo.Repository
}

// AuthResponse contains the user's ID, token, and profile basics.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// ActivityEntry is one event in a user's activity feed.
type ActivityEntry struct {
	BookingID   string `json:"bookingId"`
	ServiceID   string `json:"serviceId"`
	Status      string `json:"status"`
	Description string `json:"description"`
	At          string `json:"at"`
}
