package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"cleanslate/database/repository"
	"cleanslate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository on the "bookings" collection.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("booking %s: %w", booking.ID, repository.ErrDuplicate)
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// Update writes only when the stored version still matches expectedVersion.
func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking, expectedVersion int) error {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	next := booking.Clone()
	next.Version = expectedVersion + 1
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID, "version": expectedVersion}, next)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"id": booking.ID})
		if err != nil {
			return fmt.Errorf("error checking booking %s: %w", booking.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("booking %s: %w", booking.ID, repository.ErrNotFound)
		}
		return fmt.Errorf("booking %s: %w", booking.ID, repository.ErrVersionConflict)
	}
	booking.Version = next.Version
	return nil
}

func (r *MongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "createdAt", Value: -1}})
}

func (r *MongoBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"customerId": customerID}, bson.D{{Key: "bookingDate", Value: -1}})
}

func (r *MongoBookingRepo) ListByWorker(ctx context.Context, workerID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"workerId": workerID}, bson.D{{Key: "bookingDate", Value: -1}})
}

func (r *MongoBookingRepo) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"status": status}, bson.D{{Key: "createdAt", Value: -1}})
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// EnsureIndexes creates the indexes backing the list queries.
func (r *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*repository.QueryTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "bookingDate", Value: -1}},
			Options: options.Index().SetName("customer_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "workerId", Value: 1}, {Key: "bookingDate", Value: -1}},
			Options: options.Index().SetName("worker_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_created_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
