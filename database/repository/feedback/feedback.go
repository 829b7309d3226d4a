package feedbackRepo

import (
	"context"

	"localbooker/models"
)

// Repository stores user feedback and admin replies.
type Repository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	ListAll(ctx context.Context) ([]models.Feedback, error)
	ListForUser(ctx context.Context, userID string) ([]models.Feedback, error)
	SetReply(ctx context.Context, id string, reply models.FeedbackReply) error
}
