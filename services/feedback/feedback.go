package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	feedbackRepo "localbooker/database/repository/feedback"
	"localbooker/models"
	"localbooker/services/notification"
	"localbooker/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedbackService collects user feedback and delivers admin replies.
type FeedbackService interface {
	Submit(ctx context.Context, userID, message string) (*models.Feedback, error)
	ListAll(ctx context.Context) ([]models.Feedback, error)
	ListForUser(ctx context.Context, userID string) ([]models.Feedback, error)
	Reply(ctx context.Context, feedbackID, adminID, message string) (*models.Feedback, error)
}

// DefaultFeedbackService is the production implementation.
type DefaultFeedbackService struct {
	Repo     feedbackRepo.Repository
	Notifier notification.NotificationService
}

func (s *DefaultFeedbackService) Submit(ctx context.Context, userID, message string) (*models.Feedback, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("feedback message is required")
	}
	f := &models.Feedback{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	return f, nil
}

func (s *DefaultFeedbackService) ListAll(ctx context.Context) ([]models.Feedback, error) {
	out, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return out, nil
}

func (s *DefaultFeedbackService) ListForUser(ctx context.Context, userID string) ([]models.Feedback, error) {
	out, err := s.Repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return out, nil
}

// Reply attaches an admin reply and emails the author. The email is best
// effort; a delivery failure does not undo the reply.
func (s *DefaultFeedbackService) Reply(ctx context.Context, feedbackID, adminID, message string) (*models.Feedback, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("reply message is required")
	}
	f, err := s.Repo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}
	if f == nil {
		return nil, fmt.Errorf("feedback %s not found", feedbackID)
	}
	reply := models.FeedbackReply{
		Message:   message,
		RepliedBy: adminID,
		RepliedAt: time.Now(),
	}
	if err := s.Repo.SetReply(ctx, feedbackID, reply); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}
	f.Reply = &reply
	if s.Notifier != nil {
		if err := s.Notifier.FeedbackReplied(ctx, f); err != nil {
			utils.GetLogger().Warn("feedback reply email failed",
				zap.String("feedbackID", f.ID), zap.Error(err))
		}
	}
	return f, nil
}
