package bookingRepo

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

// MongoBookingRepo implements Repository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() Repository {
	return &MongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}

// activeStatuses are the statuses that block a slot and keep a service
// projected as unavailable. Completed bookings remain blocking until the
// sweep releases their elapsed intervals.
var activeStatuses = []string{
	models.BookingStatusPending,
	models.BookingStatusApproved,
	models.BookingStatusConfirmed,
	models.BookingStatusCompleted,
}

func (repo *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) FindConflict(ctx context.Context, serviceID string, iv models.Interval, excludeID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Half-open overlap: existing.check_in < iv.End AND existing.check_out > iv.Start.
	filter := bson.M{
		"service_id": serviceID,
		"status":     bson.M{"$ne": models.BookingStatusCancelled},
		"check_in":   bson.M{"$lt": iv.End},
		"check_out":  bson.M{"$gt": iv.Start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	var conflict models.Booking
	if err := repo.coll.FindOne(ctx, filter).Decode(&conflict); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding conflicting booking: %w", err)
	}
	return &conflict, nil
}

func (repo *MongoBookingRepo) ListActiveForService(ctx context.Context, serviceID string, asOf time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"service_id": serviceID,
		"status":     bson.M{"$in": activeStatuses},
		"check_out":  bson.M{"$gte": asOf},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing active bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding active bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) ListElapsed(ctx context.Context, now time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status": bson.M{"$in": []string{
			models.BookingStatusApproved,
			models.BookingStatusConfirmed,
			models.BookingStatusCompleted,
		}},
		"check_out": bson.M{"$lt": now},
	}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing elapsed bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding elapsed bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

func (repo *MongoBookingRepo) UpdateInterval(ctx context.Context, id string, iv models.Interval) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"check_in":   iv.Start,
		"check_out":  iv.End,
		"updated_at": time.Now(),
	}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s interval: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByPaymentIntent(ctx context.Context, intentID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"payment_intent_id": intentID}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching booking by payment intent %s: %w", intentID, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) ListForUser(ctx context.Context, userID string, limit int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := repo.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding user bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) List(ctx context.Context, q ListQuery) ([]models.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if q.Status != "" && q.Status != "all" {
		filter["status"] = q.Status
	}
	if len(q.UserIDs) > 0 {
		filter["user_id"] = bson.M{"$in": q.UserIDs}
	}

	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}

	sortOptions := map[string]bson.D{
		"newest":    {{Key: "created_at", Value: -1}},
		"oldest":    {{Key: "created_at", Value: 1}},
		"date-asc":  {{Key: "check_in", Value: 1}},
		"date-desc": {{Key: "check_in", Value: -1}},
	}
	sort, ok := sortOptions[q.Sort]
	if !ok {
		sort = sortOptions["newest"]
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 5
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, total, nil
}

func (repo *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

func (repo *MongoBookingRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("error deleting bookings: %w", err)
	}
	return res.DeletedCount, nil
}

func (repo *MongoBookingRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error counting bookings: %w", err)
	}
	return count, nil
}

func (repo *MongoBookingRepo) TotalRevenue(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.BookingStatusCompleted}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$price"}}}},
	}
	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("error decoding revenue: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (repo *MongoBookingRepo) MonthlyBookings(ctx context.Context) ([]models.MonthlyCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$month": "$check_in"},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating monthly bookings: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeMonthlyCounts(ctx, cursor)
}

func (repo *MongoBookingRepo) MonthlyRevenue(ctx context.Context) ([]models.MonthlyAmount, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.BookingStatusCompleted}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"$month": "$check_in"},
			"amount": bson.M{"$sum": "$price"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating monthly revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Month  int     `bson:"_id"`
		Amount float64 `bson:"amount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding monthly revenue: %w", err)
	}
	amounts := make([]models.MonthlyAmount, 0, len(rows))
	for _, r := range rows {
		amounts = append(amounts, models.MonthlyAmount{Month: monthName(r.Month), Amount: r.Amount})
	}
	return amounts, nil
}

func (repo *MongoBookingRepo) RevenueByService(ctx context.Context) ([]models.RevenueSlice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.BookingStatusCompleted}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "services",
			"localField":   "service_id",
			"foreignField": "id",
			"as":           "service",
		}}},
		bson.D{{Key: "$unwind", Value: "$service"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$service.name",
			"value": bson.M{"$sum": "$price"},
		}}},
	}
	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating revenue by service: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name  string  `bson:"_id"`
		Value float64 `bson:"value"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding revenue by service: %w", err)
	}
	slices := make([]models.RevenueSlice, 0, len(rows))
	for _, r := range rows {
		slices = append(slices, models.RevenueSlice{Name: r.Name, Value: r.Value})
	}
	return slices, nil
}

func (repo *MongoBookingRepo) Recent(ctx context.Context, limit int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing recent bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding recent bookings: %w", err)
	}
	return bookings, nil
}

func decodeMonthlyCounts(ctx context.Context, cursor *mongo.Cursor) ([]models.MonthlyCount, error) {
	var rows []struct {
		Month int   `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding monthly counts: %w", err)
	}
	counts := make([]models.MonthlyCount, 0, len(rows))
	for _, r := range rows {
		counts = append(counts, models.MonthlyCount{Month: monthName(r.Month), Count: r.Count})
	}
	return counts, nil
}

func monthName(month int) string {
	months := []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
	if month < 1 || month > 12 {
		return ""
	}
	return months[month-1]
}
