package feedbackRepo

import (
	"context"
	"fmt"
	"time"

	"localbooker/database"
	"localbooker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFeedbackRepo implements Repository using MongoDB.
type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo constructs a new instance of MongoFeedbackRepo.
func NewMongoFeedbackRepo() Repository {
	return &MongoFeedbackRepo{
		coll: database.DB().Collection("feedback"),
	}
}

func (repo *MongoFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, feedback); err != nil {
		return fmt.Errorf("error creating feedback: %w", err)
	}
	return nil
}

func (repo *MongoFeedbackRepo) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var feedback models.Feedback
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&feedback); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching feedback %s: %w", id, err)
	}
	return &feedback, nil
}

func (repo *MongoFeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, fmt.Errorf("error decoding feedback: %w", err)
	}
	return feedbacks, nil
}

func (repo *MongoFeedbackRepo) ListForUser(ctx context.Context, userID string) ([]models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := repo.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, fmt.Errorf("error decoding user feedback: %w", err)
	}
	return feedbacks, nil
}

func (repo *MongoFeedbackRepo) SetReply(ctx context.Context, id string, reply models.FeedbackReply) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"reply": reply}})
	if err != nil {
		return fmt.Errorf("error replying to feedback %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("feedback %s not found", id)
	}
	return nil
}
