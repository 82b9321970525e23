package workerRepo

import (
	"context"
	"errors"
	"fmt"

	"cleanslate/database/repository"
	"cleanslate/models"
	"cleanslate/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoWorkerRepo struct {
	coll   *mongo.Collection
	cipher *utils.FieldCipher
}

func NewMongoWorkerRepo(db *mongo.Database) *MongoWorkerRepo {
	return &MongoWorkerRepo{coll: db.Collection("workers")}
}

// WithFieldCipher encrypts the ID number and bank account number at rest.
func (r *MongoWorkerRepo) WithFieldCipher(c *utils.FieldCipher) *MongoWorkerRepo {
	r.cipher = c
	return r
}

func (r *MongoWorkerRepo) seal(w *models.Worker) (*models.Worker, error) {
	out := w.Clone()
	var err error
	if out.IDNumber, err = r.cipher.Encrypt(w.IDNumber); err != nil {
		return nil, err
	}
	if out.BankAccountNumber, err = r.cipher.Encrypt(w.BankAccountNumber); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoWorkerRepo) open(w *models.Worker) error {
	var err error
	if w.IDNumber, err = r.cipher.Decrypt(w.IDNumber); err != nil {
		return fmt.Errorf("worker %s: %w", w.ID, err)
	}
	if w.BankAccountNumber, err = r.cipher.Decrypt(w.BankAccountNumber); err != nil {
		return fmt.Errorf("worker %s: %w", w.ID, err)
	}
	return nil
}

func (r *MongoWorkerRepo) Create(ctx context.Context, worker *models.Worker) error {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	doc, err := r.seal(worker)
	if err != nil {
		return fmt.Errorf("error creating worker: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("worker %s: %w", worker.Email, repository.ErrDuplicate)
		}
		return fmt.Errorf("error creating worker: %w", err)
	}
	return nil
}

func (r *MongoWorkerRepo) GetByID(ctx context.Context, id string) (*models.Worker, error) {
	return r.findOne(ctx, bson.M{"id": id}, "worker "+id)
}

func (r *MongoWorkerRepo) GetByEmail(ctx context.Context, email string) (*models.Worker, error) {
	return r.findOne(ctx, bson.M{"email": email}, "worker email "+email)
}

func (r *MongoWorkerRepo) findOne(ctx context.Context, filter bson.M, label string) (*models.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	var worker models.Worker
	if err := r.coll.FindOne(ctx, filter).Decode(&worker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", label, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching %s: %w", label, err)
	}
	if err := r.open(&worker); err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *MongoWorkerRepo) Update(ctx context.Context, worker *models.Worker, expectedVersion int) error {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	next, err := r.seal(worker)
	if err != nil {
		return fmt.Errorf("error updating worker %s: %w", worker.ID, err)
	}
	next.Version = expectedVersion + 1
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": worker.ID, "version": expectedVersion}, next)
	if err != nil {
		return fmt.Errorf("error updating worker %s: %w", worker.ID, err)
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"id": worker.ID})
		if err != nil {
			return fmt.Errorf("error checking worker %s: %w", worker.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("worker %s: %w", worker.ID, repository.ErrNotFound)
		}
		return fmt.Errorf("worker %s: %w", worker.ID, repository.ErrVersionConflict)
	}
	worker.Version = next.Version
	return nil
}

func (r *MongoWorkerRepo) List(ctx context.Context, statuses ...models.WorkerStatus) ([]models.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, repository.QueryTimeout)
	defer cancel()

	filter := bson.M{}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding workers: %w", err)
	}
	defer cursor.Close(ctx)

	workers := []models.Worker{}
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("error decoding workers: %w", err)
	}
	for i := range workers {
		if err := r.open(&workers[i]); err != nil {
			return nil, err
		}
	}
	return workers, nil
}

func (r *MongoWorkerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*repository.QueryTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create worker indexes: %w", err)
	}
	return nil
}
