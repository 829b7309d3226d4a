package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"localbooker/database"
	"localbooker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoServiceRepo implements Repository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a new instance of MongoServiceRepo.
func NewMongoServiceRepo() Repository {
	return &MongoServiceRepo{
		coll: database.DB().Collection("services"),
	}
}

func (repo *MongoServiceRepo) Create(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("error creating service: %w", err)
	}
	return nil
}

func (repo *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching service %s: %w", id, err)
	}
	return &service, nil
}

func (repo *MongoServiceRepo) List(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

func (repo *MongoServiceRepo) Update(ctx context.Context, id string, name, description string, price float64) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        name,
		"description": description,
		"price":       price,
		"updated_at":  time.Now(),
	}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("error updating service %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return repo.GetByID(ctx, id)
}

func (repo *MongoServiceRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting service %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("service %s not found", id)
	}
	return nil
}

func (repo *MongoServiceRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error counting services: %w", err)
	}
	return count, nil
}

func (repo *MongoServiceRepo) SetAvailability(ctx context.Context, id string, available bool, bookedUntil *time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// updated_at is deliberately left alone so ModifiedCount reflects a real
	// projection change, which the sweep uses for its reconciled count.
	set := bson.M{"is_available": available}
	update := bson.M{"$set": set}
	if bookedUntil != nil {
		set["booked_until"] = *bookedUntil
	} else {
		update["$unset"] = bson.M{"booked_until": ""}
	}

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return false, fmt.Errorf("error updating availability for service %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return false, fmt.Errorf("service %s not found", id)
	}
	return res.ModifiedCount > 0, nil
}

func (repo *MongoServiceRepo) ListExpiredUnavailable(ctx context.Context, now time.Time) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"is_available": false,
		"booked_until": bson.M{"$lt": now},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing expired unavailable services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding expired services: %w", err)
	}
	return services, nil
}
