package trainingRepo

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

type MongoTrainingRepo struct {
	coll *mongo.Collection
}

func NewMongoTrainingRepo(db *mongo.Database) *MongoTrainingRepo {
	return &MongoTrainingRepo{coll: db.Collection("training_modules")}
}

func (r *MongoTrainingRepo) Create(ctx context.Context, module *models.TrainingModule) error {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, module); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("training module %s: %w", module.ID, repository.ErrDuplicate)
		}
		return fmt.Errorf("error creating training module: %w", err)
	}
	return nil
}

func (r *MongoTrainingRepo) GetByID(ctx context.Context, id string) (*models.TrainingModule, error) {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	var module models.TrainingModule
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&module); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("training module %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching training module %s: %w", id, err)
	}
	return &module, nil
}

func (r *MongoTrainingRepo) List(ctx context.Context) ([]models.TrainingModule, error) {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	// _id is an ObjectID generated on insert, so it sorts in insertion order.
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error finding training modules: %w", err)
	}
	defer cursor.Close(ctx)

	modules := []models.TrainingModule{}
	if err := cursor.All(ctx, &modules); err != nil {
		return nil, fmt.Errorf("error decoding training modules: %w", err)
	}
	return modules, nil
}

func (r *MongoTrainingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create training module index: %w", err)
	}
	return nil
}
