package customerRepo

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

type MongoCustomerRepo struct {
	coll *mongo.Collection
}

func NewMongoCustomerRepo(db *mongo.Database) *MongoCustomerRepo {
	return &MongoCustomerRepo{coll: db.Collection("customers")}
}

func (r *MongoCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, customer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("customer %s: %w", customer.Email, repository.ErrDuplicate)
		}
		return fmt.Errorf("error creating customer: %w", err)
	}
	return nil
}

func (r *MongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return r.findOne(ctx, bson.M{"id": id}, "customer "+id)
}

func (r *MongoCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email}, "customer email "+email)
}

func (r *MongoCustomerRepo) findOne(ctx context.Context, filter bson.M, label string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	var customer models.Customer
	if err := r.coll.FindOne(ctx, filter).Decode(&customer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", label, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching %s: %w", label, err)
	}
	return &customer, nil
}

func (r *MongoCustomerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*repository.QueryTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}
	return nil
}
