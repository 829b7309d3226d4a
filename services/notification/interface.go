package notification

import (
	"context"
	"fmt"

	serviceRepo "localbooker/database/repository/service"
	userRepo "localbooker/database/repository/user"
	"localbooker/models"
	"localbooker/utils"

	"go.uber.org/zap"
)

// Mailer delivers a single HTML email. The production implementation speaks
// SMTP; tests substitute a recorder.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// NotificationService sends booking lifecycle emails. All methods are best
// effort from the caller's point of view: the booking engine logs returned
// errors and moves on.
type NotificationService interface {
	BookingCreated(ctx context.Context, b *models.Booking) error
	BookingStatusChanged(ctx context.Context, b *models.Booking) error
	FeedbackReplied(ctx context.Context, f *models.Feedback) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	users      userRepo.Repository
	services   serviceRepo.Repository
	mailer     Mailer
	adminEmail string
}

func NewDefaultNotificationService(
	users userRepo.Repository,
	services serviceRepo.Repository,
	mailer Mailer,
	adminEmail string,
) (*DefaultNotificationService, error) {
	if users == nil || services == nil || mailer == nil {
		return nil, fmt.Errorf("notification service initialization error: missing collaborator")
	}
	return &DefaultNotificationService{
		users:      users,
		services:   services,
		mailer:     mailer,
		adminEmail: adminEmail,
	}, nil
}

// BookingCreated emails the requester a summary of their new booking and, for
// bookings that arrive already confirmed (paid), alerts the operator channel.
func (s *DefaultNotificationService) BookingCreated(ctx context.Context, b *models.Booking) error {
	email, serviceName, err := s.resolve(ctx, b)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Booking received: %s", serviceName)
	body := BookingEmail(b, serviceName, createdIntro(b.Status))
	if err := s.mailer.Send(email, subject, body); err != nil {
		return fmt.Errorf("BookingCreated: failed to send to %s: %w", email, err)
	}
	if s.adminEmail != "" && b.PaymentStatus == models.PaymentStatusSucceeded {
		adminBody := BookingEmail(b, serviceName, "A paid booking just came in.")
		if err := s.mailer.Send(s.adminEmail, fmt.Sprintf("New paid booking: %s", serviceName), adminBody); err != nil {
			utils.GetLogger().Warn("operator booking alert failed", zap.Error(err))
		}
	}
	return nil
}

// BookingStatusChanged emails the requester with a template branded for the
// booking's new status.
func (s *DefaultNotificationService) BookingStatusChanged(ctx context.Context, b *models.Booking) error {
	email, serviceName, err := s.resolve(ctx, b)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Booking %s: %s", b.Status, serviceName)
	body := BookingEmail(b, serviceName, statusIntro(b.Status))
	if err := s.mailer.Send(email, subject, body); err != nil {
		return fmt.Errorf("BookingStatusChanged: failed to send to %s: %w", email, err)
	}
	return nil
}

// FeedbackReplied emails a user when an admin answers their feedback.
func (s *DefaultNotificationService) FeedbackReplied(ctx context.Context, f *models.Feedback) error {
	u, err := s.users.GetByID(ctx, f.UserID)
	if err != nil {
		return fmt.Errorf("FeedbackReplied: could not find user %s: %w", f.UserID, err)
	}
	if u == nil || u.Email == "" {
		return fmt.Errorf("FeedbackReplied: user %s has no email", f.UserID)
	}
	body := FeedbackReplyEmail(f)
	if err := s.mailer.Send(u.Email, "We replied to your feedback", body); err != nil {
		return fmt.Errorf("FeedbackReplied: failed to send to %s: %w", u.Email, err)
	}
	return nil
}

func (s *DefaultNotificationService) resolve(ctx context.Context, b *models.Booking) (email, serviceName string, err error) {
	u, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		return "", "", fmt.Errorf("could not find user %s: %w", b.UserID, err)
	}
	if u == nil || u.Email == "" {
		return "", "", fmt.Errorf("user %s has no email", b.UserID)
	}
	serviceName = b.ServiceID
	if svc, err := s.services.GetByID(ctx, b.ServiceID); err == nil && svc != nil {
		serviceName = svc.Name
	}
	return u.Email, serviceName, nil
}

func createdIntro(status string) string {
	if status == models.BookingStatusConfirmed || status == models.BookingStatusApproved {
		return "Your payment went through and your booking is confirmed."
	}
	return "We received your booking request. We'll let you know once it's approved."
}

func statusIntro(status string) string {
	switch status {
	case models.BookingStatusApproved, models.BookingStatusConfirmed:
		return "Good news! Your booking has been approved."
	case models.BookingStatusCompleted:
		return "Your booking is complete. Thanks for choosing us!"
	case models.BookingStatusCancelled:
		return "Your booking has been cancelled."
	default:
		return "Your booking status has been updated."
	}
}
