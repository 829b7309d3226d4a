package userRepo

import (
	"context"

	"localbooker/models"
)

// Repository stores user accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)

	// SearchIDsByName returns ids of users whose name matches the query,
	// case-insensitively. Used by the admin booking search.
	SearchIDsByName(ctx context.Context, name string) ([]string, error)

	// MonthlyGrowth groups account signups per month.
	MonthlyGrowth(ctx context.Context) ([]models.MonthlyCount, error)
}
