package settingsRepo

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

// MongoSettingsRepo implements Repository using MongoDB.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo constructs a new instance of MongoSettingsRepo.
func NewMongoSettingsRepo() Repository {
	return &MongoSettingsRepo{
		coll: database.DB().Collection("settings"),
	}
}

func (repo *MongoSettingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var settings models.Settings
	err := repo.coll.FindOne(ctx, bson.M{"id": models.SettingsID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.DefaultSettings()
		settings.UpdatedAt = time.Now()
		if _, insErr := repo.coll.InsertOne(ctx, settings); insErr != nil {
			return nil, fmt.Errorf("error seeding default settings: %w", insErr)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching settings: %w", err)
	}
	return &settings, nil
}

func (repo *MongoSettingsRepo) Update(ctx context.Context, settings *models.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	settings.ID = models.SettingsID
	settings.UpdatedAt = time.Now()
	update := bson.M{"$set": settings}
	// Upsert so the first write works even before Get has seeded the document.
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"id": models.SettingsID}, update, opts); err != nil {
		return fmt.Errorf("error updating settings: %w", err)
	}
	return nil
}
