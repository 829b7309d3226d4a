// File: localbooker/services/user/crud.go
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"localbooker/models"

	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	return u, nil
}

func (s *DefaultUserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the mutable profile fields. Empty arguments leave the
// current value in place.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, name, profilePic string) (*models.User, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if profilePic != "" {
		u.ProfilePic = profilePic
	}
	u.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// UpdatePassword verifies the current password before setting a new one.
func (s *DefaultUserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.Password = string(hash)
	u.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *DefaultUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetStatus activates or suspends an account.
func (s *DefaultUserService) SetStatus(ctx context.Context, userID, status string) (*models.User, error) {
	if status != models.UserStatusActive && status != models.UserStatusSuspended {
		return nil, fmt.Errorf("unknown user status %q", status)
	}
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	return u, nil
}

// SetRole promotes or demotes an account.
func (s *DefaultUserService) SetRole(ctx context.Context, userID, role string) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("unknown user role %q", role)
	}
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}
	return u, nil
}
